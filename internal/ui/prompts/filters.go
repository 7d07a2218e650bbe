package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hance08/carteira/internal/model"
)

// PromptFilters walks direction, kind and period. The kind list only offers
// kinds of the chosen direction.
func PromptFilters(current model.Filters, kinds model.KindLookup) (model.Filters, error) {
	dir, err := PromptChoice("Direction:", []huh.Option[string]{
		huh.NewOption("All", string(model.DirectionAll)),
		huh.NewOption("Entradas", string(model.DirectionInflow)),
		huh.NewOption("Saídas", string(model.DirectionOutflow)),
	}, string(current.Direction))
	if err != nil {
		return current, err
	}
	next := current.WithDirection(model.DirectionFilter(dir), kinds)

	kindOpts := []huh.Option[string]{huh.NewOption("All kinds", model.AllKinds)}
	want, restricted := next.Direction.Direction()
	for _, k := range kinds.Kinds() {
		if restricted && k.Direction != want {
			continue
		}
		kindOpts = append(kindOpts, huh.NewOption(fmt.Sprintf("%s (%s)", k.Label, k.Code), k.Code))
	}
	kind, err := PromptChoice("Kind:", kindOpts, next.Kind)
	if err != nil {
		return current, err
	}
	next = next.WithKind(kind)

	period, err := PromptChoice("Period:", []huh.Option[string]{
		huh.NewOption("All time", string(model.PeriodAll)),
		huh.NewOption("Today", string(model.PeriodToday)),
		huh.NewOption("Last 7 days", string(model.Period7Days)),
		huh.NewOption("Last 30 days", string(model.Period30Days)),
	}, string(next.Period))
	if err != nil {
		return current, err
	}

	return next.WithPeriod(model.Period(period)), nil
}
