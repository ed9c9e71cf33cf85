package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyGlobalReturnRejectsBadRate(t *testing.T) {
	ctx := setupDB(t)

	_, err := ApplyGlobalReturn(ctx, decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidRate)
	_, err = ApplyGlobalReturn(ctx, decimal.NewFromInt(150))
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestApplyGlobalReturnCreditsEveryInvestor(t *testing.T) {
	ctx := setupDB(t)

	alice := createTestUser(t, ctx, "0", "1000")
	bob := createTestUser(t, ctx, "20", "200")
	idle := createTestUser(t, ctx, "500", "0")

	result, err := ApplyGlobalReturn(ctx, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Applied, 2)

	a := fetchBalances(t, ctx, alice)
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(20)), "alice balance %s", a.Balance)

	b := fetchBalances(t, ctx, bob)
	assert.True(t, b.Balance.Equal(decimal.NewFromInt(24)), "bob balance %s", b.Balance)

	// Users without invested principal are untouched.
	i := fetchBalances(t, ctx, idle)
	assert.True(t, i.Balance.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 0, countTransactions(t, ctx, idle, TypeDailyReturn))
}
