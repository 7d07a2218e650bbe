package views

import (
	"fmt"
	"strings"

	"github.com/hance08/carteira/internal/chart"
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/service"
	"github.com/hance08/carteira/internal/ui"
	"github.com/hance08/carteira/internal/utils"
	"github.com/pterm/pterm"
)

const barWidth = 40

type HomeView struct {
	Name string
}

func (v HomeView) Render(sum *service.Summary) error {
	ui.PrintL1Title("Olá, %s", v.Name)
	pterm.Printf("Saldo: %s\n", ColoredBalance(sum.Balance))
	pterm.Println()

	ui.PrintL2Title("Últimos %d dias", constants.SummaryDays)
	RenderChart(sum.Chart)
	pterm.Println()

	ui.PrintL2Title("Recentes")
	return NewTransactionListView().Render(sum.Recent, sum.Kinds)
}

// RenderChart prints the legend and a proportional bar made of the slice
// colors.
func RenderChart(res chart.Result) {
	var total int64
	for _, s := range res.Slices {
		total += s.Value
	}

	pterm.Println(bar(res.Slices, total))

	if res.Empty() {
		pterm.Printf("%s %s\n", ui.Swatch(constants.ColorNeutral), constants.LabelNoData)
		return
	}

	tableData := pterm.TableData{}
	for _, e := range res.Legend {
		tableData = append(tableData, []string{
			ui.Swatch(e.Color),
			e.Label,
			utils.FormatBRL(e.Value),
			fmt.Sprintf("%d%%", e.Percent),
		})
	}
	pterm.DefaultTable.WithData(tableData).Render()
}

func bar(slices []chart.Slice, total int64) string {
	if total <= 0 {
		return ""
	}

	var sb strings.Builder
	used := 0
	for i, s := range slices {
		n := int(s.Value * barWidth / total)
		if i == len(slices)-1 {
			n = barWidth - used
		}
		if n <= 0 {
			continue
		}
		used += n
		sb.WriteString(ui.RGB(s.Color).Sprint(strings.Repeat("█", n)))
	}
	return sb.String()
}

func RenderKinds(kinds model.KindLookup) error {
	for _, d := range []model.Direction{model.Inflow, model.Outflow} {
		ui.PrintL2Title(DirectionLabel(d))

		tableData := pterm.TableData{{"Code", "Label"}}
		for _, k := range kinds.Kinds() {
			if k.Direction != d {
				continue
			}
			tableData = append(tableData, []string{k.Code, k.Label})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
			return err
		}
		pterm.Println()
	}
	return nil
}
