package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dayo-adewuyi/growvest/internal/db"
)

// lockBalances reads a user's ledger fields under FOR UPDATE so the
// read-plan-write sequence cannot interleave with a concurrent mutation.
func lockBalances(ctx context.Context, tx pgx.Tx, userID string) (Balances, error) {
	var b Balances
	err := tx.QueryRow(ctx,
		`SELECT balance, total_invested, total_withdrawn FROM users WHERE id = $1 FOR UPDATE`,
		userID).Scan(&b.Balance, &b.TotalInvested, &b.TotalWithdrawn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Balances{}, ErrUserNotFound
		}
		return Balances{}, err
	}
	return b, nil
}

// insertTransaction appends one ledger entry inside the caller's transaction
func insertTransaction(ctx context.Context, tx pgx.Tx, userID, txType string, amount decimal.Decimal, description string, referenceID *string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO transactions (user_id, type, amount, description, reference_id)
         VALUES ($1, $2, $3, $4, $5)`,
		userID, txType, amount, description, referenceID,
	)
	return err
}

// ApplyReturn credits one daily return against the user's invested principal
// and logs a daily_return transaction, as a single database transaction.
// Returns the credited amount.
func ApplyReturn(ctx context.Context, userID string, rate decimal.Decimal, description string) (decimal.Decimal, error) {
	if rate.LessThanOrEqual(decimal.Zero) || rate.GreaterThan(oneHundred) {
		return decimal.Zero, ErrInvalidRate
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBalances(ctx, tx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if !b.TotalInvested.IsPositive() {
		return decimal.Zero, ErrNoInvestment
	}

	returnAmount, err := ComputeReturn(b.TotalInvested, rate)
	if err != nil {
		return decimal.Zero, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET balance = balance + $1 WHERE id = $2`,
		returnAmount, userID,
	)
	if err != nil {
		return decimal.Zero, err
	}

	if description == "" {
		description = fmt.Sprintf("Daily return %s%% on invested amount", rate.String())
	}
	if err := insertTransaction(ctx, tx, userID, TypeDailyReturn, returnAmount, description, nil); err != nil {
		return decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, err
	}
	return returnAmount, nil
}

// SetInvestedAmount sets a user's invested principal to an absolute value,
// moves the balance by the difference and logs the matching transaction.
func SetInvestedAmount(ctx context.Context, userID string, newAmount decimal.Decimal) (InvestedChange, error) {
	if newAmount.IsNegative() {
		return InvestedChange{}, ErrInvalidAmount
	}

	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return InvestedChange{}, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBalances(ctx, tx, userID)
	if err != nil {
		return InvestedChange{}, err
	}

	change, err := PlanInvestedChange(b.TotalInvested, b.Balance, newAmount)
	if err != nil {
		return InvestedChange{}, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET total_invested = $1, balance = $2 WHERE id = $3`,
		change.NewInvested, change.NewBalance, userID,
	)
	if err != nil {
		return InvestedChange{}, err
	}

	description := fmt.Sprintf("Admin set invested amount to $%s", newAmount.StringFixed(2))
	if err := insertTransaction(ctx, tx, userID, change.TxType, change.TxAmount, description, nil); err != nil {
		return InvestedChange{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return InvestedChange{}, err
	}
	return change, nil
}

// ClearBalance zeroes a user's balance and invested principal. If either was
// nonzero a single withdrawal transaction for the old balance is logged.
func ClearBalance(ctx context.Context, userID string) (Clearance, error) {
	tx, err := db.Conn.Begin(ctx)
	if err != nil {
		return Clearance{}, err
	}
	defer tx.Rollback(ctx)

	b, err := lockBalances(ctx, tx, userID)
	if err != nil {
		return Clearance{}, err
	}

	clearance := PlanClearance(b.Balance, b.TotalInvested)

	_, err = tx.Exec(ctx,
		`UPDATE users SET total_invested = 0, balance = 0 WHERE id = $1`,
		userID,
	)
	if err != nil {
		return Clearance{}, err
	}

	if clearance.LogTransaction {
		description := fmt.Sprintf("Admin cleared all balances (Invested: $%s, Balance: $%s)",
			b.TotalInvested.StringFixed(2), b.Balance.StringFixed(2))
		if err := insertTransaction(ctx, tx, userID, TypeWithdrawal, clearance.TxAmount, description, nil); err != nil {
			return Clearance{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Clearance{}, err
	}
	return clearance, nil
}

// Settle debits the balance and credits total_withdrawn for an approved
// withdrawal, logging the withdrawal transaction with the request id as
// reference. It runs inside the caller's transaction so the status update
// and the ledger mutation commit or abort together.
func Settle(ctx context.Context, tx pgx.Tx, userID string, amount decimal.Decimal, withdrawalID, note string) error {
	b, err := lockBalances(ctx, tx, userID)
	if err != nil {
		return err
	}
	if b.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	_, err = tx.Exec(ctx,
		`UPDATE users SET balance = balance - $1, total_withdrawn = total_withdrawn + $1 WHERE id = $2`,
		amount, userID,
	)
	if err != nil {
		return err
	}

	description := "Withdrawal completed - " + note
	return insertTransaction(ctx, tx, userID, TypeWithdrawal, amount, description, &withdrawalID)
}
