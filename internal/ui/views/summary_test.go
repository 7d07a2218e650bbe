package views

import (
	"strings"
	"testing"

	"github.com/hance08/carteira/internal/chart"
	"github.com/stretchr/testify/assert"
)

func TestBarFillsWidth(t *testing.T) {
	slices := []chart.Slice{
		{Value: 710000, Color: "#16a34a"},
		{Value: 290000, Color: "#dc2626"},
	}

	out := bar(slices, 1000000)

	assert.Equal(t, barWidth, strings.Count(out, "█"))
}

func TestBarEmptyTotal(t *testing.T) {
	assert.Empty(t, bar(nil, 0))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "3f2b9c1e", ShortID("3f2b9c1e-8a4d-4c2e-9f00-1a2b3c4d5e6f"))
	assert.Equal(t, "abc", ShortID("abc"))
}
