package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateChainLeftAssociative(t *testing.T) {
	// c0 AND c1 OR c2 == (c0 AND c1) OR c2
	conds := []Condition{
		NewMarginCondition(10, true, true),
		NewMarginCondition(20, true, false),
		NewMarginCondition(30, true, true),
	}
	tests := []struct {
		truth []bool
		want  bool
	}{
		{[]bool{false, true, true}, true},
		{[]bool{false, false, false}, false},
		{[]bool{true, true, false}, true},
		{[]bool{true, false, false}, false},
		{[]bool{false, true, false}, false},
	}
	for _, tt := range tests {
		got, err := EvaluateChain(conds, tt.truth)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%v", tt.truth)
	}
}

func TestEvaluateChainLastFlagIgnored(t *testing.T) {
	a := []Condition{NewMarginCondition(10, true, false), NewMarginCondition(20, true, true)}
	b := []Condition{NewMarginCondition(10, true, false), NewMarginCondition(20, true, false)}
	for _, truth := range [][]bool{{true, false}, {false, true}, {false, false}} {
		ga, err := EvaluateChain(a, truth)
		require.NoError(t, err)
		gb, err := EvaluateChain(b, truth)
		require.NoError(t, err)
		assert.Equal(t, ga, gb)
	}
}

func TestEvaluateChainEdges(t *testing.T) {
	ok, err := EvaluateChain(nil, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = EvaluateChain([]Condition{NewMarginCondition(1, true, false)}, []bool{false})
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = EvaluateChain([]Condition{NewMarginCondition(1, true, false)}, []bool{true, true})
	assert.ErrorIs(t, err, ErrChainLength)
}

func TestChainString(t *testing.T) {
	conds := []Condition{
		NewTimeCondition("20240101 10:00:00", true, true),
		NewMarginCondition(30, false, false),
		NewExecutionCondition("AAPL", "STK", "SMART", true),
	}
	assert.Equal(t,
		"time(after 20240101 10:00:00) AND margin(below 30.0%) OR execution(symbol=AAPL, sec_type=STK, exchange=SMART)",
		ChainString(conds))
	assert.Equal(t, "", ChainString(nil))
}
