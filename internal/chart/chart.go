// Package chart turns a window of transactions into pie slices and legend rows.
package chart

import (
	"fmt"
	"sort"

	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/shopspring/decimal"
)

type GroupMode string

const (
	ByDirection GroupMode = "direction"
	ByKind      GroupMode = "kind"
)

func ParseGroupMode(s string) (GroupMode, error) {
	switch GroupMode(s) {
	case ByDirection, "":
		return ByDirection, nil
	case ByKind:
		return ByKind, nil
	default:
		return "", fmt.Errorf("invalid group mode '%s' (use direction or kind)", s)
	}
}

type Slice struct {
	Value int64
	Color string
}

type LegendEntry struct {
	Label   string
	Color   string
	Value   int64
	Percent int
}

type Result struct {
	Slices []Slice
	Legend []LegendEntry
}

// Empty reports whether r is the "no data" placeholder.
func (r Result) Empty() bool {
	return len(r.Legend) == 1 && r.Legend[0].Label == constants.LabelNoData && r.Legend[0].Value == 0
}

type bucket struct {
	label string
	color string
	value int64
}

// Compute groups txs by direction or by kind. Transactions whose kind is not
// in kinds are ignored. Output depends only on the input order.
func Compute(txs []model.Transaction, kinds model.KindLookup, mode GroupMode) Result {
	var buckets []bucket
	if mode == ByKind {
		buckets = groupByKind(txs, kinds)
	} else {
		buckets = groupByDirection(txs, kinds)
	}

	var total int64
	for _, b := range buckets {
		total += b.value
	}
	if total == 0 {
		return noData()
	}

	res := Result{
		Slices: make([]Slice, 0, len(buckets)),
		Legend: make([]LegendEntry, 0, len(buckets)),
	}
	for _, b := range buckets {
		if b.value == 0 {
			continue
		}
		res.Slices = append(res.Slices, Slice{Value: b.value, Color: b.color})
		res.Legend = append(res.Legend, LegendEntry{
			Label:   b.label,
			Color:   b.color,
			Value:   b.value,
			Percent: Percent(b.value, total),
		})
	}
	return res
}

// Percent is value/total*100 rounded half up.
func Percent(value, total int64) int {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(value).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(0)
	return int(pct.IntPart())
}

func noData() Result {
	return Result{
		Slices: []Slice{{Value: 1, Color: constants.ColorNeutral}},
		Legend: []LegendEntry{{Label: constants.LabelNoData, Color: constants.ColorNeutral, Value: 0, Percent: 0}},
	}
}

func groupByDirection(txs []model.Transaction, kinds model.KindLookup) []bucket {
	var in, out int64
	for _, tx := range txs {
		k, ok := kinds.Get(tx.Kind)
		if !ok {
			continue
		}
		if k.Direction == model.Inflow {
			in += tx.Amount
		} else {
			out += tx.Amount
		}
	}

	return []bucket{
		{label: constants.LabelInflow, color: constants.InflowPalette[0], value: in},
		{label: constants.LabelOutflow, color: constants.OutflowPalette[0], value: out},
	}
}

func groupByKind(txs []model.Transaction, kinds model.KindLookup) []bucket {
	var buckets []bucket
	index := make(map[string]int)
	var inSeen, outSeen int

	for _, tx := range txs {
		k, ok := kinds.Get(tx.Kind)
		if !ok {
			continue
		}
		if i, seen := index[k.Code]; seen {
			buckets[i].value += tx.Amount
			continue
		}

		var color string
		if k.Direction == model.Inflow {
			color = constants.InflowPalette[inSeen%len(constants.InflowPalette)]
			inSeen++
		} else {
			color = constants.OutflowPalette[outSeen%len(constants.OutflowPalette)]
			outSeen++
		}

		index[k.Code] = len(buckets)
		buckets = append(buckets, bucket{label: k.Label, color: color, value: tx.Amount})
	}

	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].value > buckets[j].value
	})
	return buckets
}
