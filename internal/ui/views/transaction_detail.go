package views

import (
	"fmt"

	"github.com/hance08/carteira/internal/attachment"
	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/service"
	"github.com/hance08/carteira/internal/ui"
	"github.com/hance08/carteira/internal/utils"
	"github.com/pterm/pterm"
)

func RenderTransactionDetail(detail *service.TransactionDetail) error {
	direction := "-"
	label := detail.Kind
	if detail.KnownKind {
		direction = DirectionLabel(detail.KindInfo.Direction)
		label = fmt.Sprintf("%s (%s)", detail.KindInfo.Label, detail.Kind)
	}

	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	infoData := pterm.TableData{
		{"Field", "Value"},
		{"ID", detail.ID},
		{"Date", detail.CreatedAt.Local().Format(constants.DateTimeFormat)},
		{"Kind", label},
		{"Direction", direction},
		{"Amount", utils.FormatBRL(detail.Signed())},
	}
	if err := pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(infoData).
		Render(); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL2Title("Files")
	if len(detail.Attachments) == 0 {
		pterm.Println(pterm.Gray("  no files attached"))
		return nil
	}

	filesData := pterm.TableData{
		{"Name", "Type", "Uploaded"},
	}
	for _, a := range detail.Attachments {
		filesData = append(filesData, []string{
			attachment.FilenameFromPath(a.Path),
			a.ContentType,
			a.CreatedAt.Local().Format(constants.DateTimeFormat),
		})
	}

	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(filesData).
		Render()
}
