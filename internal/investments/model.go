package investments

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

// MinimumAmount is the smallest investment claim accepted.
var MinimumAmount = decimal.NewFromInt(100)

var (
	ErrBelowMinimum = errors.New("amount is below the minimum investment")
	ErrNoProof      = errors.New("payment proof is required")
)

type Investment struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	DailyReturn     decimal.Decimal `json:"daily_return"`
	TotalDays       int             `json:"total_days"`
	DaysCompleted   int             `json:"days_completed"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"payment_method"`
	PaymentProofURL string          `json:"payment_proof_url"`
	Verified        bool            `json:"verified"`
	NextPayoutDate  *time.Time      `json:"next_payout_date"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ValidateCreate checks a new claim before any row is written.
func ValidateCreate(amount decimal.Decimal, proofURL string) error {
	if amount.LessThan(MinimumAmount) {
		return ErrBelowMinimum
	}
	if proofURL == "" {
		return ErrNoProof
	}
	return nil
}
