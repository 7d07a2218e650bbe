package service

import (
	"fmt"

	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/utils"
	"github.com/hance08/carteira/internal/validation"
)

// validateInput parses the raw amount and checks the kind against the
// snapshot. Amounts must be strictly positive; the kind carries the sign.
func validateInput(amountRaw, kind string, kinds model.KindLookup) (int64, error) {
	cents, err := utils.ParsePositiveCents(amountRaw)
	if err != nil {
		return 0, fmt.Errorf("invalid amount: %w", err)
	}
	if err := validation.ValidateKind(kind, kinds); err != nil {
		return 0, err
	}
	return cents, nil
}
