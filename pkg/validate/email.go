// Package validate holds input validators backed by go-playground/validator.
package validate

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// EmailValidator checks email syntax.
type EmailValidator struct {
	v *validator.Validate
}

// NewEmailValidator returns an EmailValidator with its own validator instance.
func NewEmailValidator() EmailValidator {
	return EmailValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// IsValid reports whether email is syntactically valid. An error is returned
// only when the validator itself cannot run.
func (e EmailValidator) IsValid(email string) (bool, error) {
	if e.v == nil {
		return false, errors.New("email validator not initialized")
	}
	err := e.v.Var(email, "required,email")
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return false, nil
	}
	return false, err
}
