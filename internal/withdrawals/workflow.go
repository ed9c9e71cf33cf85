package withdrawals

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrBelowMinimum        = errors.New("amount is below the minimum withdrawal")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoWallet            = errors.New("no wallet address on file")
	ErrNoteRequired        = errors.New("a note is required to reject a withdrawal")
	ErrNotPending          = errors.New("withdrawal is not pending")
)

// ValidateCreate checks a withdrawal request before any row is written.
// The wallet address comes from the request when supplied, otherwise from
// the user's profile.
func ValidateCreate(amount, balance decimal.Decimal, wallet string) error {
	if wallet == "" {
		return ErrNoWallet
	}
	if amount.LessThan(MinimumAmount) {
		return ErrBelowMinimum
	}
	if amount.GreaterThan(balance) {
		return ErrInsufficientBalance
	}
	return nil
}

// ValidateApprove guards the pending -> completed transition
func ValidateApprove(status string) error {
	if status != StatusPending {
		return ErrNotPending
	}
	return nil
}

// ValidateReject guards the pending -> rejected transition. Rejection always
// carries a non-empty note; no balance mutation accompanies it.
func ValidateReject(status, note string) error {
	if strings.TrimSpace(note) == "" {
		return ErrNoteRequired
	}
	if status != StatusPending {
		return ErrNotPending
	}
	return nil
}

// ApprovalNote fills in the default acceptance message when the admin left
// the note empty
func ApprovalNote(note string) string {
	if strings.TrimSpace(note) == "" {
		return DefaultApprovalNote
	}
	return note
}
