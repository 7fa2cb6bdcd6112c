package decimal_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/cte-checker/internal/decimal"
)

func TestFromString(t *testing.T) {
	d, err := decimal.FromString("123456.78")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.RequireFromString("123456.78")))

	d, err = decimal.FromString("  1500.00\n")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec.NewFromInt(1500)))

	_, err = decimal.FromString("1.500,00")
	require.Error(t, err, "comma decimal separator is not a fiscal format")

	_, err = decimal.FromString("not-a-number")
	require.Error(t, err)
}

func TestRoundCents(t *testing.T) {
	assert.True(t, decimal.RoundCents(dec.RequireFromString("10.005")).Equal(dec.RequireFromString("10.01")))
	assert.True(t, decimal.RoundCents(dec.RequireFromString("10.004")).Equal(dec.RequireFromString("10.00")))
}

func TestSum(t *testing.T) {
	values := []dec.Decimal{
		dec.RequireFromString("1000.10"),
		dec.RequireFromString("499.90"),
		dec.RequireFromString("0.01"),
	}
	assert.True(t, decimal.Sum(values).Equal(dec.RequireFromString("1500.01")))
	assert.True(t, decimal.Sum(nil).IsZero())
}

func TestEqualCents(t *testing.T) {
	assert.True(t, decimal.EqualCents(dec.RequireFromString("1500"), dec.RequireFromString("1500.00")))
	assert.True(t, decimal.EqualCents(dec.RequireFromString("0.104"), dec.RequireFromString("0.10")))
	assert.False(t, decimal.EqualCents(dec.RequireFromString("1500.00"), dec.RequireFromString("1500.01")))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "1500.00", decimal.FormatCents(dec.NewFromInt(1500)))
	assert.Equal(t, "0.10", decimal.FormatCents(dec.RequireFromString("0.1")))
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, decimal.IsNonNegative(dec.NewFromInt(0)))
	assert.True(t, decimal.IsNonNegative(dec.NewFromInt(1)))
	assert.False(t, decimal.IsNonNegative(dec.NewFromInt(-1)))
}
