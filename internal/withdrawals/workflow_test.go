package withdrawals

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidateCreate(t *testing.T) {
	assert.NoError(t, ValidateCreate(dec("10"), dec("10"), "0xabc"))
	assert.NoError(t, ValidateCreate(dec("50"), dec("120"), "0xabc"))
}

func TestValidateCreateBelowMinimum(t *testing.T) {
	err := ValidateCreate(dec("9.99"), dec("500"), "0xabc")
	assert.ErrorIs(t, err, ErrBelowMinimum)
}

func TestValidateCreateInsufficientBalance(t *testing.T) {
	err := ValidateCreate(dec("100"), dec("99.99"), "0xabc")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestValidateCreateRequiresWallet(t *testing.T) {
	err := ValidateCreate(dec("50"), dec("120"), "")
	assert.ErrorIs(t, err, ErrNoWallet)
}

func TestValidateApprove(t *testing.T) {
	assert.NoError(t, ValidateApprove(StatusPending))

	for _, status := range []string{StatusApproved, StatusCompleted, StatusRejected} {
		assert.ErrorIs(t, ValidateApprove(status), ErrNotPending, status)
	}
}

func TestValidateReject(t *testing.T) {
	assert.NoError(t, ValidateReject(StatusPending, "proof does not match"))

	// The note is mandatory regardless of the current status.
	assert.ErrorIs(t, ValidateReject(StatusPending, ""), ErrNoteRequired)
	assert.ErrorIs(t, ValidateReject(StatusPending, "   "), ErrNoteRequired)

	assert.ErrorIs(t, ValidateReject(StatusCompleted, "too late"), ErrNotPending)
}

func TestApprovalNote(t *testing.T) {
	assert.Equal(t, DefaultApprovalNote, ApprovalNote(""))
	assert.Equal(t, DefaultApprovalNote, ApprovalNote("  "))
	assert.Equal(t, "sent via tron", ApprovalNote("sent via tron"))
}
