package chart_test

import (
	"math"
	"testing"

	"github.com/hance08/carteira/internal/chart"
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds() model.KindLookup {
	return model.NewKindLookup([]model.Kind{
		{Code: "salary", Label: "Salário", Direction: model.Inflow},
		{Code: "freelance", Label: "Freelance", Direction: model.Inflow},
		{Code: "refund", Label: "Reembolso", Direction: model.Inflow},
		{Code: "investment", Label: "Investimentos", Direction: model.Inflow},
		{Code: "bonus", Label: "Bônus", Direction: model.Inflow},
		{Code: "rent", Label: "Aluguel", Direction: model.Outflow},
		{Code: "groceries", Label: "Mercado", Direction: model.Outflow},
	})
}

func tx(amount int64, kind string) model.Transaction {
	return model.Transaction{Amount: amount, Kind: kind}
}

func TestCompute_ByDirection(t *testing.T) {
	res := chart.Compute([]model.Transaction{tx(100, "salary"), tx(40, "rent")}, kinds(), chart.ByDirection)

	assert.Equal(t, []chart.Slice{
		{Value: 100, Color: constants.InflowPalette[0]},
		{Value: 40, Color: constants.OutflowPalette[0]},
	}, res.Slices)
	assert.Equal(t, []chart.LegendEntry{
		{Label: "Entradas", Color: constants.InflowPalette[0], Value: 100, Percent: 71},
		{Label: "Saídas", Color: constants.OutflowPalette[0], Value: 40, Percent: 29},
	}, res.Legend)
}

func TestCompute_SkipsZeroBucket(t *testing.T) {
	res := chart.Compute([]model.Transaction{tx(500, "rent"), tx(250, "groceries")}, kinds(), chart.ByDirection)

	require.Len(t, res.Legend, 1)
	assert.Equal(t, "Saídas", res.Legend[0].Label)
	assert.Equal(t, int64(750), res.Legend[0].Value)
	assert.Equal(t, 100, res.Legend[0].Percent)
}

func TestCompute_NoData(t *testing.T) {
	tests := []struct {
		name string
		txs  []model.Transaction
		mode chart.GroupMode
	}{
		{name: "empty input", txs: nil, mode: chart.ByDirection},
		{name: "all unclassified", txs: []model.Transaction{tx(10, "ghost")}, mode: chart.ByKind},
		{name: "zero amounts", txs: []model.Transaction{tx(0, "salary"), tx(0, "rent")}, mode: chart.ByDirection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := chart.Compute(tt.txs, kinds(), tt.mode)

			assert.True(t, res.Empty())
			assert.Equal(t, []chart.Slice{{Value: 1, Color: constants.ColorNeutral}}, res.Slices)
			require.Len(t, res.Legend, 1)
			assert.Equal(t, "Sem dados", res.Legend[0].Label)
			assert.Equal(t, 0, res.Legend[0].Percent)
			assert.Equal(t, int64(0), res.Legend[0].Value)
		})
	}
}

func TestCompute_ByKindSortsAndColors(t *testing.T) {
	txs := []model.Transaction{
		tx(100, "salary"),
		tx(30, "rent"),
		tx(50, "freelance"),
		tx(70, "groceries"),
		tx(20, "salary"),
		tx(5, "ghost"),
	}

	res := chart.Compute(txs, kinds(), chart.ByKind)

	var labels []string
	for _, l := range res.Legend {
		labels = append(labels, l.Label)
	}
	assert.Equal(t, []string{"Salário", "Mercado", "Freelance", "Aluguel"}, labels)

	colors := map[string]string{}
	for _, l := range res.Legend {
		colors[l.Label] = l.Color
	}
	assert.Equal(t, constants.InflowPalette[0], colors["Salário"])
	assert.Equal(t, constants.InflowPalette[1], colors["Freelance"])
	assert.Equal(t, constants.OutflowPalette[0], colors["Aluguel"])
	assert.Equal(t, constants.OutflowPalette[1], colors["Mercado"])

	assert.Equal(t, int64(120), res.Legend[0].Value)
	assert.Equal(t, 44, res.Legend[0].Percent) // 120/270
}

func TestCompute_ByKindStableTies(t *testing.T) {
	txs := []model.Transaction{tx(10, "rent"), tx(10, "salary"), tx(10, "groceries")}

	res := chart.Compute(txs, kinds(), chart.ByKind)

	require.Len(t, res.Legend, 3)
	assert.Equal(t, "Aluguel", res.Legend[0].Label)
	assert.Equal(t, "Salário", res.Legend[1].Label)
	assert.Equal(t, "Mercado", res.Legend[2].Label)
}

func TestCompute_PaletteRotation(t *testing.T) {
	txs := []model.Transaction{
		tx(50, "salary"),
		tx(40, "freelance"),
		tx(30, "refund"),
		tx(20, "investment"),
		tx(10, "bonus"),
	}

	res := chart.Compute(txs, kinds(), chart.ByKind)

	require.Len(t, res.Legend, 5)
	seen := map[string]bool{}
	for _, l := range res.Legend[:4] {
		assert.False(t, seen[l.Color], "color %s reused among first four kinds", l.Color)
		seen[l.Color] = true
	}
	assert.Equal(t, constants.InflowPalette[0], res.Legend[4].Color)
}

func TestCompute_Totals(t *testing.T) {
	txs := []model.Transaction{
		tx(333, "salary"), tx(333, "freelance"), tx(334, "rent"),
		tx(1, "groceries"), tx(99, "ghost"),
	}

	for _, mode := range []chart.GroupMode{chart.ByDirection, chart.ByKind} {
		res := chart.Compute(txs, kinds(), mode)

		var sum int64
		var pct int
		for _, l := range res.Legend {
			sum += l.Value
			pct += l.Percent
		}
		assert.Equal(t, int64(1001), sum, "mode %s", mode)
		assert.InDelta(t, 100, pct, float64(len(res.Legend)), "mode %s", mode)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	txs := []model.Transaction{tx(5, "groceries"), tx(5, "rent"), tx(9, "salary"), tx(9, "refund")}

	first := chart.Compute(txs, kinds(), chart.ByKind)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, chart.Compute(txs, kinds(), chart.ByKind))
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 13, chart.Percent(1, 8)) // 12.5
	assert.Equal(t, 0, chart.Percent(1, 0))
	assert.Equal(t, 100, chart.Percent(7, 7))
	assert.Equal(t, 100, chart.Percent(math.MaxInt64, math.MaxInt64))
	assert.Equal(t, 50, chart.Percent(math.MaxInt64/2, math.MaxInt64-1))
}
