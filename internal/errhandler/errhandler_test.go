package errhandler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
)

func TestIsCancelled(t *testing.T) {
	assert.True(t, IsCancelled(terminal.InterruptErr))
	assert.True(t, IsCancelled(fmt.Errorf("input cancelled: %w", huh.ErrUserAborted)))
	assert.False(t, IsCancelled(errors.New("disk full")))
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Saída", capitalize("saída"))
	assert.Equal(t, "", capitalize(""))
}
