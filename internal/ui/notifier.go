package ui

import "github.com/pterm/pterm"

// Toast shows short failure messages on the terminal.
type Toast struct{}

func (Toast) Notify(msg string) {
	pterm.Error.Println(msg)
}
