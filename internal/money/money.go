// Package money handles monetary amounts as int64 cents and converts them
// to and from user-facing representations. Arithmetic on cents is exact;
// floats appear only at the formatting boundary.
package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var ErrInvalidAmount = errors.New("invalid amount")

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// ParseDecimalToCents converts a decimal string to cents.
//
// Both dot and comma decimal separators are accepted. Anything beyond two
// fractional digits is rounded half-up at the cents boundary. Amounts must be
// strictly positive.
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}

	if intPart == "" {
		intPart = "0"
	}

	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	whole, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	const maxWhole = (1<<63 - 1) / 100
	if whole > maxWhole {
		return 0, ErrInvalidAmount
	}

	var frac int64

	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
	}

	if len(fracPart) > 1 {
		frac += int64(fracPart[1] - '0')
	}

	// Half-up on the third fractional digit.
	if len(fracPart) > 2 && fracPart[2] >= '5' {
		frac++
	}

	cents := whole*100 + frac
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}

	return cents, nil
}

// ParseDigitsToCents interprets free-text numeric input the way a currency
// field does: every non-digit is stripped and the trailing two digits are
// cents, so "R$ 12,34" and "1234" both yield 1234.
func ParseDigitsToCents(s string) int64 {
	var sb strings.Builder

	for _, r := range s {
		if unicode.IsDigit(r) {
			sb.WriteRune(r)
		}
	}

	if sb.Len() == 0 {
		return 0
	}

	cents, err := strconv.ParseInt(sb.String(), 10, 64)
	if err != nil {
		return 0
	}

	return cents
}

// FormatBRL renders cents as a Brazilian currency string, e.g. "R$ 1.234,50".
func FormatBRL(cents int64) string {
	sign := ""

	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return sign + brPrinter.Sprintf("R$ %v", number.Decimal(float64(cents)/100.0,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatAmount renders cents as a plain dot-decimal string with two places.
func FormatAmount(cents int64) string {
	sign := ""

	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
