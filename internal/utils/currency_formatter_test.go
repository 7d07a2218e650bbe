package utils

import (
	"testing"

	"github.com/hance08/carteira/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeAmountInput(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.34", "12,34"},
		{"12,345", "12,34"},
		{",5", "0,5"},
		{"1a2b3", "123"},
		{"1,2,3", "1,23"},
		{"R$ 10,00", "10,00"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeAmountInput(tt.in), "input %q", tt.in)
	}
}

func TestParseToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"150", 15000},
		{"150.5", 15050},
		{"150,50", 15050},
		{"1.234,56", 123456},
		{"1,234.56", 123456},
		{"R$ 0,99", 99},
		{"0", 0},
	}

	for _, tt := range tests {
		got, err := ParseToCents(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseToCents_Rejects(t *testing.T) {
	for _, in := range []string{
		"", "abc", "-5", "1,2,3",
		"92233720368547758,08",
		"100000000000000000000",
		"100.000.000.000,01",
	} {
		_, err := ParseToCents(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseToCents_UpperBound(t *testing.T) {
	got, err := ParseToCents("100.000.000.000,00")
	require.NoError(t, err)
	assert.Equal(t, int64(constants.MaxAmountCents), got)

	_, err = ParsePositiveCents("92233720368547758,08")
	assert.ErrorContains(t, err, "amount too large")
}

// Half-cent values round up instead of to the nearest even cent, so the
// stored amount differs from what banker's rounding would produce.
func TestParseToCents_HalfUpNotBankers(t *testing.T) {
	got, err := ParseToCents("0,125")
	require.NoError(t, err)
	assert.Equal(t, int64(13), got)

	got, err = ParseToCents("10.125")
	require.NoError(t, err)
	assert.Equal(t, int64(1013), got)

	got, err = ParseToCents("2,345")
	require.NoError(t, err)
	assert.Equal(t, int64(235), got)
}

// The keystroke filter truncates, so sanitizing first yields one cent less
// than parsing the raw text.
func TestSanitizeThenParse_Truncates(t *testing.T) {
	got, err := ParseToCents(SanitizeAmountInput("0.129"))
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)

	raw, err := ParseToCents("0.129")
	require.NoError(t, err)
	assert.Equal(t, int64(13), raw)
}

func TestParsePositiveCents(t *testing.T) {
	_, err := ParsePositiveCents("0,00")
	assert.Error(t, err)

	got, err := ParsePositiveCents("0,01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,05", FormatBRL(5))
	assert.Equal(t, "R$ 1.234,56", FormatBRL(123456))
	assert.Equal(t, "R$ 1.000.000,00", FormatBRL(100000000))
	assert.Equal(t, "-R$ 10,00", FormatBRL(-1000))
	assert.Equal(t, "12.50", FormatFromCents(1250))
}
