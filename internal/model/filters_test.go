package model_test

import (
	"testing"
	"time"

	"github.com/hance08/carteira/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKinds() model.KindLookup {
	return model.NewKindLookup([]model.Kind{
		{Code: "salary", Label: "Salário", Direction: model.Inflow},
		{Code: "rent", Label: "Aluguel", Direction: model.Outflow},
		{Code: "groceries", Label: "Mercado", Direction: model.Outflow},
	})
}

func TestFilters_WithDirection(t *testing.T) {
	kinds := testKinds()

	tests := []struct {
		name     string
		start    model.Filters
		to       model.DirectionFilter
		wantKind string
	}{
		{
			name:     "incompatible kind resets to all",
			start:    model.Filters{Direction: model.DirectionAll, Kind: "salary", Period: model.PeriodAll},
			to:       model.DirectionOutflow,
			wantKind: model.AllKinds,
		},
		{
			name:     "compatible kind is kept",
			start:    model.Filters{Direction: model.DirectionAll, Kind: "rent", Period: model.PeriodAll},
			to:       model.DirectionOutflow,
			wantKind: "rent",
		},
		{
			name:     "unknown kind resets to all",
			start:    model.Filters{Direction: model.DirectionAll, Kind: "gone", Period: model.PeriodAll},
			to:       model.DirectionInflow,
			wantKind: model.AllKinds,
		},
		{
			name:     "switching to all clears the kind",
			start:    model.Filters{Direction: model.DirectionOutflow, Kind: "rent", Period: model.PeriodAll},
			to:       model.DirectionAll,
			wantKind: model.AllKinds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.WithDirection(tt.to, kinds)
			assert.Equal(t, tt.to, got.Direction)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.start.Period, got.Period)
		})
	}
}

func TestPeriod_From(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2025, 3, 10, 15, 30, 45, 0, loc)

	_, ok := model.PeriodAll.From(now)
	assert.False(t, ok)

	today, ok := model.PeriodToday.From(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), today)

	week, ok := model.Period7Days.From(now)
	require.True(t, ok)
	assert.Equal(t, 7*24*time.Hour, now.Sub(week))

	month, ok := model.Period30Days.From(now)
	require.True(t, ok)
	assert.Equal(t, 30*24*time.Hour, now.Sub(month))
}

func TestKindLookup_CodesFor(t *testing.T) {
	kinds := testKinds()

	assert.Equal(t, []string{"salary"}, kinds.CodesFor(model.Inflow))
	assert.Equal(t, []string{"rent", "groceries"}, kinds.CodesFor(model.Outflow))

	empty := model.NewKindLookup(nil)
	assert.Empty(t, empty.CodesFor(model.Inflow))
}

func TestKindLookup_KindsReturnsCopy(t *testing.T) {
	kinds := testKinds()

	list := kinds.Kinds()
	list[0].Label = "changed"

	k, ok := kinds.Get("salary")
	require.True(t, ok)
	assert.Equal(t, "Salário", k.Label)
}

func TestParseFilters(t *testing.T) {
	d, err := model.ParseDirectionFilter("")
	require.NoError(t, err)
	assert.Equal(t, model.DirectionAll, d)

	_, err = model.ParseDirectionFilter("sideways")
	assert.Error(t, err)

	p, err := model.ParsePeriod("7d")
	require.NoError(t, err)
	assert.Equal(t, model.Period7Days, p)

	_, err = model.ParsePeriod("1y")
	assert.Error(t, err)
}
