package prompts

import (
	"github.com/hance08/carteira/internal/validation"
)

type Credentials struct {
	Email    string
	Name     string
	Password string
}

func PromptSignUp() (Credentials, error) {
	var c Credentials
	var err error

	if c.Email, err = PromptInput("Email:", "", validation.ValidateEmail); err != nil {
		return c, err
	}
	if c.Name, err = PromptInput("Name:", "", validation.ValidateName); err != nil {
		return c, err
	}
	if c.Password, err = PromptPassword("Password:", validation.ValidatePassword); err != nil {
		return c, err
	}
	return c, nil
}

func PromptLogin(email string) (Credentials, error) {
	c := Credentials{Email: email}
	var err error

	if c.Email == "" {
		if c.Email, err = PromptInput("Email:", "", validation.ValidateEmail); err != nil {
			return c, err
		}
	}
	if c.Password, err = PromptPassword("Password:", nil); err != nil {
		return c, err
	}
	return c, nil
}
