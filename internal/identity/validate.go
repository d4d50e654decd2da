package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/go-playground/validator"
)

// emailPattern is the sign-up form check: something@something.tld, no spaces.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type signUp struct {
	Email    string `validate:"required,mail"`
	Password string `validate:"required,min=6"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("mail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// validationError turns validator output into a common.ErrValidation.
func validationError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	var msgs []string
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s is required", strings.ToLower(e.Field())))
		case "mail":
			msgs = append(msgs, "please enter a valid email address")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", strings.ToLower(e.Field()), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is not valid", strings.ToLower(e.Field())))
		}
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, ", "))
}
