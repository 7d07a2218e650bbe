package validation

import (
	"testing"

	"github.com/hance08/carteira/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ana@example.com.br"))
	assert.NoError(t, ValidateEmail(" ana.souza+fin@example.com "))
	assert.Error(t, ValidateEmail("ana@"))
	assert.Error(t, ValidateEmail("example.com"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Secr3t!pw"))
	assert.Error(t, ValidatePassword("S3!a"))
	assert.Error(t, ValidatePassword("alllowercase1!"))
	assert.Error(t, ValidatePassword("NoDigits!!"))
	assert.Error(t, ValidatePassword("NoSymbol123"))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Ana"))
	assert.Error(t, ValidateName("   "))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount("10,50"))
	assert.Error(t, ValidateAmount("0"))
	assert.Error(t, ValidateAmount("dez"))
}

func TestValidateKind(t *testing.T) {
	kinds := model.NewKindLookup([]model.Kind{{Code: "rent", Label: "Aluguel", Direction: model.Outflow}})

	assert.NoError(t, ValidateKind("rent", kinds))
	assert.Error(t, ValidateKind("", kinds))
	assert.Error(t, ValidateKind("salary", kinds))
}
