package utils

import (
	"fmt"
	"strings"

	"github.com/hance08/carteira/internal/constants"
	"github.com/shopspring/decimal"
)

// FormatFromCents renders cents as a plain decimal string, e.g. 1234.5 -> "1234.50".
func FormatFromCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// FormatBRL renders cents in Brazilian notation: R$ 1.234,56
func FormatBRL(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	units := cents / constants.CentsPerUnit
	frac := cents % constants.CentsPerUnit

	digits := fmt.Sprintf("%d", units)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	return fmt.Sprintf("%sR$ %s,%02d", sign, b.String(), frac)
}

// SanitizeAmountInput filters raw keystrokes into a pt-BR amount:
// dots become the decimal comma, only digits and the first comma survive,
// and the fraction is cut to two digits.
func SanitizeAmountInput(raw string) string {
	raw = strings.ReplaceAll(raw, ".", ",")

	var b strings.Builder
	seenComma := false
	fracDigits := 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			if seenComma {
				if fracDigits == 2 {
					continue
				}
				fracDigits++
			}
			b.WriteRune(r)
		case r == ',' && !seenComma:
			seenComma = true
			b.WriteRune(r)
		}
	}

	out := b.String()
	if strings.HasPrefix(out, ",") {
		out = "0" + out
	}
	return out
}

// ParseToCents parses an amount typed by the user into cents.
// Accepted forms: "150", "150.5", "150,50", "1.234,56", "1,234.56".
// Values with more than two fractional digits round half away from zero.
func ParseToCents(amountStr string) (int64, error) {
	s := strings.TrimSpace(amountStr)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("amount is required")
	}

	s = normalizeSeparators(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %s", amountStr)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount can't be negative: %s", amountStr)
	}

	cents := d.Round(2).Shift(2)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("invalid amount: %s", amountStr)
	}
	if cents.GreaterThan(decimal.NewFromInt(constants.MaxAmountCents)) {
		return 0, fmt.Errorf("amount too large: %s (max %s)", amountStr, FormatBRL(constants.MaxAmountCents))
	}

	return cents.IntPart(), nil
}

// ParsePositiveCents is ParseToCents that also rejects zero.
func ParsePositiveCents(amountStr string) (int64, error) {
	cents, err := ParseToCents(amountStr)
	if err != nil {
		return 0, err
	}
	if cents == 0 {
		return 0, fmt.Errorf("amount must be greater than zero")
	}
	return cents, nil
}

func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		// whichever comes last is the decimal mark
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return s
		}
		return strings.Replace(s, ",", ".", 1)
	default:
		return s
	}
}
