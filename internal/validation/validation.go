package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hance08/carteira/internal/constants"
	"github.com/hance08/carteira/internal/model"
	"github.com/hance08/carteira/internal/utils"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hasLower     = regexp.MustCompile("[a-z]")
	hasUpper     = regexp.MustCompile("[A-Z]")
	hasDigit     = regexp.MustCompile("[0-9]")
	hasSpecial   = regexp.MustCompile(`[^A-Za-z0-9]`)
)

const MinPasswordLen = 8

func ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return fmt.Errorf("invalid email address")
	}
	return nil
}

// ValidatePassword requires upper and lower case letters, a digit and a symbol.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("password must have at least %d characters", MinPasswordLen)
	}
	if !hasLower.MatchString(password) || !hasUpper.MatchString(password) ||
		!hasDigit.MatchString(password) || !hasSpecial.MatchString(password) {
		return fmt.Errorf("password needs upper and lower case letters, a digit and a symbol")
	}
	return nil
}

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name can't be empty")
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// ValidateAmount accepts any input ParsePositiveCents accepts.
func ValidateAmount(input string) error {
	_, err := utils.ParsePositiveCents(input)
	return err
}

// ValidateKind checks that code names a known kind.
func ValidateKind(code string, kinds model.KindLookup) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("kind is required")
	}
	if _, ok := kinds.Get(code); !ok {
		return fmt.Errorf("unknown kind '%s' (see 'carteira kinds')", code)
	}
	return nil
}
