package prompts

import (
	"github.com/charmbracelet/huh"
)

// PromptAmount prompts for an amount with custom validation
func PromptAmount(message string, helpText string, validator func(string) error) (string, error) {
	var amount string

	input := huh.NewInput().
		Title(message).
		Description(helpText).
		Value(&amount)

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	return amount, err
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()

	return confirm, err
}

// PromptInput prompts for a generic text input with optional default and validator
func PromptInput(message string, defaultValue string, validator func(string) error) (string, error) {
	var inputVal string

	input := huh.NewInput().
		Title(message).
		Value(&inputVal)

	if defaultValue != "" {
		input.Placeholder(defaultValue)
	}

	if validator != nil {
		input.Validate(func(s string) error {
			if s == "" && defaultValue != "" {
				return nil
			}
			return validator(s)
		})
	}

	err := input.Run()
	if err != nil {
		return "", err
	}

	if inputVal == "" && defaultValue != "" {
		return defaultValue, nil
	}

	return inputVal, nil
}

// PromptPassword reads a secret without echoing it
func PromptPassword(message string, validator func(string) error) (string, error) {
	var secret string

	input := huh.NewInput().
		Title(message).
		EchoMode(huh.EchoModePassword).
		Value(&secret)

	if validator != nil {
		input.Validate(validator)
	}

	err := input.Run()
	return secret, err
}

// PromptChoice prompts for one of the labelled values.
func PromptChoice(message string, options []huh.Option[string], defaultValue string) (string, error) {
	selected := defaultValue

	err := huh.NewSelect[string]().
		Title(message).
		Options(options...).
		Value(&selected).
		Height(12).
		Run()

	return selected, err
}
