package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/utils"
)

// PromptKind asks for a transaction kind, inflows first.
func PromptKind(kinds model.KindLookup, defaultCode string) (string, error) {
	var opts []huh.Option[string]
	for _, d := range []model.Direction{model.Inflow, model.Outflow} {
		sign := "+"
		if d == model.Outflow {
			sign = "-"
		}
		for _, k := range kinds.Kinds() {
			if k.Direction != d {
				continue
			}
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s %s (%s)", sign, k.Label, k.Code), k.Code))
		}
	}
	if len(opts) == 0 {
		return "", fmt.Errorf("no transaction kinds available")
	}
	if defaultCode == "" {
		defaultCode = opts[0].Value
	}

	return PromptChoice("Kind:", opts, defaultCode)
}

// PromptTransactionAmount reads an amount the way the amount field accepts
// it: anything but digits and separators is dropped and extra decimals are
// cut before parsing.
func PromptTransactionAmount(current string) (string, error) {
	help := "e.g. 1234,56"
	if current != "" {
		help = fmt.Sprintf("current: %s (press Enter to keep)", current)
	}

	raw, err := PromptAmount("Amount (R$):", help, func(s string) error {
		if s == "" && current != "" {
			return nil
		}
		_, err := utils.ParsePositiveCents(utils.SanitizeAmountInput(s))
		return err
	})
	if err != nil {
		return "", err
	}
	if raw == "" {
		return current, nil
	}
	return utils.SanitizeAmountInput(raw), nil
}

// PromptAttachmentPath asks for an optional file to attach.
func PromptAttachmentPath() (string, error) {
	return PromptInput("File path (PDF or PNG, empty to skip):", "", nil)
}

// LedgerAction is a step in the interactive ledger.
type LedgerAction string

const (
	ActionMore    LedgerAction = "more"
	ActionRefresh LedgerAction = "refresh"
	ActionFilters LedgerAction = "filters"
	ActionQuit    LedgerAction = "quit"
)

func PromptLedgerAction(hasMore bool) (LedgerAction, error) {
	var opts []huh.Option[string]
	if hasMore {
		opts = append(opts, huh.NewOption("Load more", string(ActionMore)))
	}
	opts = append(opts,
		huh.NewOption("Refresh", string(ActionRefresh)),
		huh.NewOption("Change filters", string(ActionFilters)),
		huh.NewOption("Quit", string(ActionQuit)),
	)

	selected, err := PromptChoice("What next?", opts, opts[0].Value)
	return LedgerAction(selected), err
}
