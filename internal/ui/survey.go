package ui

import "github.com/AlecAivazis/survey/v2"

// IconOption returns a survey option that sets the question icon to "-"
// This provides a consistent UI style across all interactive prompts.
func IconOption() survey.AskOpt {
	return survey.WithIcons(func(icons *survey.IconSet) {
		icons.Question.Text = "-"
	})
}

// ConfirmDanger asks before something that can't be undone. It defaults to no.
func ConfirmDanger(message string) (bool, error) {
	confirm := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirm, IconOption()); err != nil {
		return false, err
	}
	return confirm, nil
}
