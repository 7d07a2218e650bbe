package views

import (
	"fmt"

	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/service"
	"github.com/hance08/carteira/internal/ui"
	"github.com/hance08/carteira/internal/utils"
	"github.com/pterm/pterm"
)

func RenderTransactionDeletePreview(detail *service.TransactionDetail) {
	pterm.Warning.Printf("About to delete transaction %s:\n", ShortID(detail.ID))

	deletionInfo := pterm.TableData{
		{"Date", detail.CreatedAt.Local().Format(constants.DateTimeFormat)},
		{"Kind", detail.Kind},
		{"Amount", utils.FormatBRL(detail.Signed())},
		{"Files", fmt.Sprint(len(detail.Attachments))},
	}

	pterm.DefaultTable.WithData(deletionInfo).Render()
	pterm.Warning.Println("This action cannot be undone!")
}

func RenderTransactionDeleteSuccess(id string) {
	pterm.Success.Printf("Transaction %s deleted successfully\n", ShortID(id))
	ui.Separator()
}
