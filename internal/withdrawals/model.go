package withdrawals

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal statuses. 'approved' exists for compatibility with older rows
// and UI styling; no transition produces it — approval settles straight to
// completed.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

// DefaultApprovalNote is recorded when the admin approves without a note
const DefaultApprovalNote = "Approved and processed"

// MinimumAmount is the smallest withdrawal a user may request
var MinimumAmount = decimal.NewFromInt(10)

type Withdrawal struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	WalletAddress string          `json:"wallet_address"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Status        string          `json:"status"`
	AdminNote     *string         `json:"admin_note,omitempty"`
	RequestedAt   time.Time       `json:"requested_at"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
}
