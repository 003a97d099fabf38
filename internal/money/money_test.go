package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/granahq/grana/internal/money"
)

func TestParseDecimalToCents(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "DotSeparator", input: "12.34", want: 1234},
		{name: "CommaSeparator", input: "12,34", want: 1234},
		{name: "WholeNumber", input: "2000", want: 200000},
		{name: "SingleFractionDigit", input: "12.3", want: 1230},
		{name: "RoundsDown", input: "12.344", want: 1234},
		{name: "RoundsHalfUp", input: "12.345", want: 1235},
		{name: "LeadingDot", input: ".50", want: 50},
		{name: "Whitespace", input: "  7,25 ", want: 725},
		{name: "Empty", input: "", wantErr: true},
		{name: "Negative", input: "-5.00", wantErr: true},
		{name: "ExplicitPlus", input: "+5.00", wantErr: true},
		{name: "Zero", input: "0", wantErr: true},
		{name: "ZeroDecimal", input: "0.00", wantErr: true},
		{name: "Letters", input: "12a.50", wantErr: true},
		{name: "TwoSeparators", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.ParseDecimalToCents(tt.input)

			if tt.wantErr {
				require.ErrorIs(t, err, money.ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDigitsToCents(t *testing.T) {
	assert.Equal(t, int64(1234), money.ParseDigitsToCents("1234"))
	assert.Equal(t, int64(1234), money.ParseDigitsToCents("R$ 12,34"))
	assert.Equal(t, int64(123450), money.ParseDigitsToCents("1.234,50"))
	assert.Equal(t, int64(0), money.ParseDigitsToCents("abc"))
	assert.Equal(t, int64(0), money.ParseDigitsToCents(""))
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234,50", money.FormatBRL(123450))
	assert.Equal(t, "R$ 0,05", money.FormatBRL(5))
	assert.Equal(t, "-R$ 12,00", money.FormatBRL(-1200))
}

// Formatting then stripping formatting must reproduce the original cents.
func TestFormatAmountRoundTrip(t *testing.T) {
	for _, cents := range []int64{5, 99, 100, 123450, 100000000} {
		formatted := money.FormatAmount(cents)
		assert.Equal(t, cents, money.ParseDigitsToCents(formatted))
	}

	assert.Equal(t, "1234.50", money.FormatAmount(123450))
}
