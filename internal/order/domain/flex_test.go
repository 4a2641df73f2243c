package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFlexQuantityCoercion(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{`5`, 5},
		{`"5"`, 5},
		{`5.9`, 5},
		{`"12 pcs"`, 12},
		{`-3`, 0},
		{`"abc"`, 0},
		{`""`, 0},
		{`null`, 0},
	}
	for _, tc := range cases {
		var q FlexQuantity
		require.NoError(t, json.Unmarshal([]byte(tc.in), &q), tc.in)
		require.Equal(t, tc.want, q.Int(), tc.in)
	}
}

func TestFlexDecimalCoercion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`12.5`, "12.5"},
		{`"12.5"`, "12.5"},
		{`"$12,000"`, "12000"},
		{`"Rp 1.500"`, "1.500"},
		{`-4`, "0"},
		{`"free"`, "0"},
		{`null`, "0"},
	}
	for _, tc := range cases {
		var d FlexDecimal
		require.NoError(t, json.Unmarshal([]byte(tc.in), &d), tc.in)
		require.True(t, d.Decimal().Equal(decimal.RequireFromString(tc.want)),
			"%s: got %s want %s", tc.in, d.Decimal(), tc.want)
	}
}

func TestCoerceAmount(t *testing.T) {
	require.True(t, CoerceAmount("$12,000").Equal(decimal.RequireFromString("12000")))
	require.True(t, CoerceAmount("around 45 dollars").Equal(decimal.RequireFromString("45")))
	require.True(t, CoerceAmount("").IsZero())
	require.True(t, CoerceAmount("n/a").IsZero())
	require.True(t, CoerceAmount("1.2.3").IsZero())
}
