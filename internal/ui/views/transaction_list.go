package views

import (
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/ui"
	"github.com/pterm/pterm"
)

type TransactionListView struct{}

func NewTransactionListView() *TransactionListView {
	return &TransactionListView{}
}

func (v *TransactionListView) Render(items []model.Transaction, kinds model.KindLookup) error {
	if len(items) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	tableData := pterm.TableData{
		{"ID", "Date", "Kind", "Amount"},
	}

	for _, tx := range items {
		tableData = append(tableData, []string{
			tx.ID,
			FormatDateTime(tx),
			KindLabel(tx.Kind, kinds),
			ColoredAmount(tx, kinds),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

// LedgerHeader describes the state of a ledger window.
type LedgerHeader struct {
	Direction  string
	Kind       string
	Period     string
	Loaded     int
	HasMore    bool
	Refreshing bool
}

func RenderLedgerHeader(h LedgerHeader) {
	ui.PrintL2Title("Extrato")
	pterm.Printf("%s %s   %s %s   %s %s\n",
		pterm.Gray("direction:"), h.Direction,
		pterm.Gray("kind:"), h.Kind,
		pterm.Gray("period:"), h.Period,
	)
}

func RenderLedgerFooter(h LedgerHeader) {
	switch {
	case h.Refreshing:
		pterm.Info.Println("Refreshing...")
	case h.HasMore:
		pterm.Info.Printf("Total: %d transactions loaded, more available\n", h.Loaded)
	default:
		pterm.Info.Printf("Total: %d transactions\n", h.Loaded)
	}
}
