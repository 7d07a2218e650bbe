package errhandler

import (
	"errors"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/carteira/internal/auth"
	"github.com/hance08/carteira/internal/ledger"
	"github.com/pterm/pterm"
)

// IsCancelled reports whether err comes from the user aborting a prompt.
func IsCancelled(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt")
}

// HandleError prints err for the user. It returns false when err was a
// cancellation, which is not a failure.
func HandleError(err error) bool {
	if IsCancelled(err) {
		pterm.Warning.Println("Operation Cancelled")
		return false
	}

	switch {
	case errors.Is(err, auth.ErrNotSignedIn), errors.Is(err, ledger.ErrUnauthenticated):
		pterm.Error.Println(capitalize(auth.ErrNotSignedIn.Error()))
	default:
		pterm.Error.Println(capitalize(err.Error()))
	}
	return true
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
