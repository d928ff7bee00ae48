package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSAHCost_WithinBounds(t *testing.T) {
	c := DefaultSAHConstants()
	cost, err := sahCost(2.0, 10.0, 4, 4, 8, c)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, 0.0)
	assert.LessOrEqual(t, cost, 3.0)
}

func TestSAHCost_PerfectBalanceNoImbalancePenalty(t *testing.T) {
	c := DefaultSAHConstants()
	cost, err := sahCost(5.0, 10.0, 8, 8, 8, c)
	require.NoError(t, err)
	// nThis==numPrimitives so underfill=0; nThis==nOther so imbalance=0.
	assert.InDelta(t, c.CTrav*0.5, cost, 1e-9)
}

func TestSAHCost_UnderfillPenalized(t *testing.T) {
	c := DefaultSAHConstants()
	full, err := sahCost(5.0, 10.0, 8, 8, 8, c)
	require.NoError(t, err)
	under, err := sahCost(5.0, 10.0, 1, 8, 8, c)
	require.NoError(t, err)
	assert.Greater(t, under, full)
}

func TestSAHCost_ImbalancePenalized(t *testing.T) {
	c := DefaultSAHConstants()
	balanced, err := sahCost(5.0, 10.0, 8, 8, 8, c)
	require.NoError(t, err)
	lopsided, err := sahCost(5.0, 10.0, 15, 1, 16, c)
	require.NoError(t, err)
	assert.Greater(t, lopsided, balanced)
}
