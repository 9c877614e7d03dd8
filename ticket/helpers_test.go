package ticket

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func params(t *testing.T, in map[string]string) map[string]decimal.Decimal {
	t.Helper()
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = dec(t, v)
	}
	return out
}
