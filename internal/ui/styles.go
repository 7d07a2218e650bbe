package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

func PrintL1Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf(" %s   ", text)

	style.Println(paddedText)
}

func PrintL2Title(format string, a ...interface{}) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)

	text := fmt.Sprintf(format, a...)

	paddedText := fmt.Sprintf("# %s   ", text)

	style.Println(paddedText)
}

func Separator() {
	pterm.Println(pterm.Gray(strings.Repeat("─", 40)))
}

// RGB parses a "#rrggbb" color. Anything else renders gray.
func RGB(hex string) pterm.RGB {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return pterm.NewRGB(128, 128, 128)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return pterm.NewRGB(128, 128, 128)
	}
	return pterm.NewRGB(uint8(v>>16), uint8(v>>8), uint8(v))
}

// Swatch is a colored block for legends.
func Swatch(hex string) string {
	return RGB(hex).Sprint("██")
}
