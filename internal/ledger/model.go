package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types. Amount is always positive; the sign is implied by type.
const (
	TypeDeposit     = "deposit"
	TypeWithdrawal  = "withdrawal"
	TypeDailyReturn = "daily_return"
	TypeAdminCredit = "admin_credit"
	TypeAdminDebit  = "admin_debit"
)

// Transaction is one append-only ledger entry
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	ReferenceID *string         `json:"reference_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Balances is the ledger view of one user record
type Balances struct {
	Balance        decimal.Decimal `json:"balance"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	TotalWithdrawn decimal.Decimal `json:"total_withdrawn"`
}
