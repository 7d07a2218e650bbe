package views

import (
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/utils"
	"github.com/pterm/pterm"
)

// KindLabel falls back to the raw code for kinds missing from the snapshot.
func KindLabel(code string, kinds model.KindLookup) string {
	if k, ok := kinds.Get(code); ok {
		return k.Label
	}
	return code
}

// ColoredAmount renders inflows green with a plus and outflows red with a minus.
func ColoredAmount(tx model.Transaction, kinds model.KindLookup) string {
	k, ok := kinds.Get(tx.Kind)
	if !ok {
		return utils.FormatBRL(tx.Amount)
	}
	if k.Direction == model.Outflow {
		return pterm.Red("- " + utils.FormatBRL(tx.Amount))
	}
	return pterm.Green("+ " + utils.FormatBRL(tx.Amount))
}

func ColoredBalance(cents int64) string {
	if cents < 0 {
		return pterm.Red(utils.FormatBRL(cents))
	}
	return pterm.Green(utils.FormatBRL(cents))
}

// ShortID keeps the first block of a UUID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func FormatDateTime(tx model.Transaction) string {
	return tx.CreatedAt.Local().Format(constants.DateTimeFormat)
}

func DirectionLabel(d model.Direction) string {
	if d == model.Inflow {
		return constants.LabelInflow
	}
	return constants.LabelOutflow
}
