package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeReturn(t *testing.T) {
	got, err := ComputeReturn(dec("1000"), dec("1.5"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("15")), "1.5%% of 1000 should be 15, got %s", got)

	got, err = ComputeReturn(dec("250.50"), dec("2"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("5.01")))

	got, err = ComputeReturn(dec("1000"), dec("100"))
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("1000")))
}

func TestComputeReturnRejectsBadRates(t *testing.T) {
	for _, rate := range []string{"0", "-1", "100.01", "500"} {
		_, err := ComputeReturn(dec("1000"), dec(rate))
		assert.ErrorIs(t, err, ErrInvalidRate, "rate %s", rate)
	}
}

func TestPlanInvestedChangeIncrease(t *testing.T) {
	change, err := PlanInvestedChange(dec("500"), dec("120"), dec("800"))
	require.NoError(t, err)

	assert.True(t, change.NewInvested.Equal(dec("800")))
	assert.True(t, change.NewBalance.Equal(dec("420")))
	assert.Equal(t, TypeDeposit, change.TxType)
	assert.True(t, change.TxAmount.Equal(dec("300")))
}

func TestPlanInvestedChangeDecrease(t *testing.T) {
	change, err := PlanInvestedChange(dec("800"), dec("420"), dec("500"))
	require.NoError(t, err)

	assert.True(t, change.NewInvested.Equal(dec("500")))
	assert.True(t, change.NewBalance.Equal(dec("120")))
	assert.Equal(t, TypeWithdrawal, change.TxType)
	assert.True(t, change.TxAmount.Equal(dec("300")))
}

func TestPlanInvestedChangeUnchanged(t *testing.T) {
	// Setting the same amount logs a zero-amount deposit and leaves the
	// balance alone.
	change, err := PlanInvestedChange(dec("500"), dec("75"), dec("500"))
	require.NoError(t, err)

	assert.True(t, change.NewBalance.Equal(dec("75")))
	assert.Equal(t, TypeDeposit, change.TxType)
	assert.True(t, change.TxAmount.IsZero())
}

func TestPlanInvestedChangeRejectsNegative(t *testing.T) {
	_, err := PlanInvestedChange(dec("500"), dec("75"), dec("-10"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPlanClearance(t *testing.T) {
	cl := PlanClearance(dec("150"), dec("500"))
	assert.True(t, cl.LogTransaction)
	assert.True(t, cl.TxAmount.Equal(dec("150")))

	// Invested but zero balance still logs, for the audit trail.
	cl = PlanClearance(dec("0"), dec("500"))
	assert.True(t, cl.LogTransaction)
	assert.True(t, cl.TxAmount.IsZero())

	// Nothing to clear, nothing to log.
	cl = PlanClearance(dec("0"), dec("0"))
	assert.False(t, cl.LogTransaction)
}
