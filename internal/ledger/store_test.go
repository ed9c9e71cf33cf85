package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayo-adewuyi/growvest/internal/db"
)

// setupDB connects and bootstraps the schema, or skips when no database is
// available.
func setupDB(t *testing.T) context.Context {
	t.Helper()

	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL is not set")
	}
	if db.Conn == nil {
		db.Init()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func createTestUser(t *testing.T, ctx context.Context, balance, invested string) string {
	t.Helper()

	id := uuid.New().String()
	_, err := db.Conn.Exec(ctx, `
        INSERT INTO users (id, email, password_hash, full_name, balance, total_invested)
        VALUES ($1, $2, 'x', 'Test User', $3, $4)`,
		id, id+"@test.local", balance, invested)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = db.Conn.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	})
	return id
}

func fetchBalances(t *testing.T, ctx context.Context, userID string) Balances {
	t.Helper()

	var b Balances
	err := db.Conn.QueryRow(ctx,
		`SELECT balance, total_invested, total_withdrawn FROM users WHERE id = $1`, userID).
		Scan(&b.Balance, &b.TotalInvested, &b.TotalWithdrawn)
	require.NoError(t, err)
	return b
}

func countTransactions(t *testing.T, ctx context.Context, userID, txType string) int {
	t.Helper()

	var n int
	err := db.Conn.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND type = $2`, userID, txType).
		Scan(&n)
	require.NoError(t, err)
	return n
}

func TestApplyReturnCreditsBalance(t *testing.T) {
	ctx := setupDB(t)
	userID := createTestUser(t, ctx, "50", "1000")

	credited, err := ApplyReturn(ctx, userID, decimal.NewFromFloat(1.5), "")
	require.NoError(t, err)
	assert.True(t, credited.Equal(decimal.NewFromInt(15)))

	b := fetchBalances(t, ctx, userID)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(65)), "balance %s", b.Balance)
	assert.True(t, b.TotalInvested.Equal(decimal.NewFromInt(1000)), "invested must not move")
	assert.Equal(t, 1, countTransactions(t, ctx, userID, TypeDailyReturn))
}

func TestApplyReturnWithoutInvestment(t *testing.T) {
	ctx := setupDB(t)
	userID := createTestUser(t, ctx, "50", "0")

	_, err := ApplyReturn(ctx, userID, decimal.NewFromInt(2), "")
	assert.ErrorIs(t, err, ErrNoInvestment)

	// Nothing moved, nothing logged.
	b := fetchBalances(t, ctx, userID)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 0, countTransactions(t, ctx, userID, TypeDailyReturn))
}

func TestApplyReturnInvalidRateLeavesNoTrace(t *testing.T) {
	ctx := setupDB(t)
	userID := createTestUser(t, ctx, "50", "1000")

	_, err := ApplyReturn(ctx, userID, decimal.NewFromInt(0), "")
	assert.ErrorIs(t, err, ErrInvalidRate)
	_, err = ApplyReturn(ctx, userID, decimal.NewFromInt(101), "")
	assert.ErrorIs(t, err, ErrInvalidRate)

	b := fetchBalances(t, ctx, userID)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 0, countTransactions(t, ctx, userID, TypeDailyReturn))
}

func TestSetInvestedAmountMovesBalanceByDifference(t *testing.T) {
	ctx := setupDB(t)
	userID := createTestUser(t, ctx, "120", "500")

	change, err := SetInvestedAmount(ctx, userID, decimal.NewFromInt(800))
	require.NoError(t, err)
	assert.Equal(t, TypeDeposit, change.TxType)

	b := fetchBalances(t, ctx, userID)
	assert.True(t, b.TotalInvested.Equal(decimal.NewFromInt(800)))
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(420)))
	assert.Equal(t, 1, countTransactions(t, ctx, userID, TypeDeposit))

	// Lowering it logs a withdrawal for the difference.
	change, err = SetInvestedAmount(ctx, userID, decimal.NewFromInt(500))
	require.NoError(t, err)
	assert.Equal(t, TypeWithdrawal, change.TxType)

	b = fetchBalances(t, ctx, userID)
	assert.True(t, b.TotalInvested.Equal(decimal.NewFromInt(500)))
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(120)))
	assert.Equal(t, 1, countTransactions(t, ctx, userID, TypeWithdrawal))
}

func TestClearBalanceZeroesAndLogsOnce(t *testing.T) {
	ctx := setupDB(t)
	userID := createTestUser(t, ctx, "150", "500")

	cl, err := ClearBalance(ctx, userID)
	require.NoError(t, err)
	assert.True(t, cl.LogTransaction)
	assert.True(t, cl.TxAmount.Equal(decimal.NewFromInt(150)))

	b := fetchBalances(t, ctx, userID)
	assert.True(t, b.Balance.IsZero())
	assert.True(t, b.TotalInvested.IsZero())
	assert.Equal(t, 1, countTransactions(t, ctx, userID, TypeWithdrawal))

	// Clearing an already empty ledger logs nothing further.
	cl, err = ClearBalance(ctx, userID)
	require.NoError(t, err)
	assert.False(t, cl.LogTransaction)
	assert.Equal(t, 1, countTransactions(t, ctx, userID, TypeWithdrawal))
}

func TestSettleRollsBackOnInsufficientBalance(t *testing.T) {
	ctx := setupDB(t)
	userID := createTestUser(t, ctx, "30", "0")

	tx, err := db.Conn.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = Settle(ctx, tx, userID, decimal.NewFromInt(50), uuid.New().String(), "note")
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	require.NoError(t, tx.Rollback(ctx))

	b := fetchBalances(t, ctx, userID)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(30)))
	assert.True(t, b.TotalWithdrawn.IsZero())
	assert.Equal(t, 0, countTransactions(t, ctx, userID, TypeWithdrawal))
}

func TestSettleDebitsAndLogs(t *testing.T) {
	ctx := setupDB(t)
	userID := createTestUser(t, ctx, "100", "0")
	withdrawalID := uuid.New().String()

	tx, err := db.Conn.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	require.NoError(t, Settle(ctx, tx, userID, decimal.NewFromInt(40), withdrawalID, "sent"))
	require.NoError(t, tx.Commit(ctx))

	b := fetchBalances(t, ctx, userID)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(60)))
	assert.True(t, b.TotalWithdrawn.Equal(decimal.NewFromInt(40)))

	var ref string
	err = db.Conn.QueryRow(ctx,
		`SELECT reference_id FROM transactions WHERE user_id = $1 AND type = $2`,
		userID, TypeWithdrawal).Scan(&ref)
	require.NoError(t, err)
	assert.Equal(t, withdrawalID, ref)
}
