package ledger

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// ComputeReturn calculates the daily return credited against a principal.
// The rate is a percentage and must satisfy 0 < rate <= 100.
func ComputeReturn(principal, rate decimal.Decimal) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) || rate.GreaterThan(oneHundred) {
		return decimal.Zero, ErrInvalidRate
	}
	if principal.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return principal.Mul(rate).Div(oneHundred), nil
}

// InvestedChange describes the balance update and the single ledger entry
// produced by an admin setting a user's invested principal to an absolute value.
type InvestedChange struct {
	NewInvested decimal.Decimal
	NewBalance  decimal.Decimal
	TxType      string
	TxAmount    decimal.Decimal
}

// PlanInvestedChange computes the effect of setting total_invested to
// newAmount: the balance moves by the difference, and one transaction of type
// deposit (non-negative difference) or withdrawal (negative) is logged for
// the absolute difference.
func PlanInvestedChange(oldInvested, oldBalance, newAmount decimal.Decimal) (InvestedChange, error) {
	if newAmount.IsNegative() {
		return InvestedChange{}, ErrInvalidAmount
	}
	difference := newAmount.Sub(oldInvested)
	change := InvestedChange{
		NewInvested: newAmount,
		NewBalance:  oldBalance.Add(difference),
		TxAmount:    difference.Abs(),
	}
	if difference.IsNegative() {
		change.TxType = TypeWithdrawal
	} else {
		change.TxType = TypeDeposit
	}
	return change, nil
}

// Clearance describes an admin reset of a user's ledger fields.
type Clearance struct {
	LogTransaction bool
	// TxAmount is the prior balance; principal loss is not separately logged.
	TxAmount decimal.Decimal
}

// PlanClearance zeroes both balance and total_invested. A single withdrawal
// transaction for the old balance is logged only when either field was nonzero.
func PlanClearance(oldBalance, oldInvested decimal.Decimal) Clearance {
	return Clearance{
		LogTransaction: oldBalance.IsPositive() || oldInvested.IsPositive(),
		TxAmount:       oldBalance,
	}
}
