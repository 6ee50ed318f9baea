package signup

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/splax/localvercel/accounts/internal/controller"
	"github.com/splax/localvercel/accounts/internal/domain"
)

// EmailValidator checks email syntax.
type EmailValidator interface {
	IsValid(email string) (bool, error)
}

// AddAccount creates an account from validated input.
type AddAccount interface {
	Add(ctx context.Context, input domain.AddAccountInput) (*domain.Account, error)
}

// requiredFields are checked in this order; the first missing one is reported.
var requiredFields = []string{"email", "name", "password", "passwordConfirmation"}

// Controller validates sign-up requests and delegates account creation.
type Controller struct {
	emailValidator EmailValidator
	addAccount     AddAccount
	logger         *slog.Logger
}

var _ controller.Controller = (*Controller)(nil)

// New constructs a Controller.
func New(emailValidator EmailValidator, addAccount AddAccount, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{emailValidator: emailValidator, addAccount: addAccount, logger: logger}
}

// Handle runs the validation chain and maps the outcome to a Response.
func (c *Controller) Handle(ctx context.Context, req controller.Request) (res controller.Response) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("signup handler panicked", "panic", fmt.Sprint(r))
			res = controller.ServerError()
		}
	}()

	fields := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		value, ok := req.Body[field]
		if !ok || isFalsy(value) {
			return controller.BadRequest(controller.MissingParam(field))
		}
		str, ok := value.(string)
		if !ok {
			return controller.BadRequest(controller.InvalidParam(field))
		}
		fields[field] = str
	}

	if fields["password"] != fields["passwordConfirmation"] {
		return controller.BadRequest(controller.InvalidParam("passwordConfirmation"))
	}

	valid, err := c.emailValidator.IsValid(fields["email"])
	if err != nil {
		c.logger.Error("email validation failed", "error", err)
		return controller.ServerError()
	}
	if !valid {
		return controller.BadRequest(controller.InvalidParam("email"))
	}

	account, err := c.addAccount.Add(ctx, domain.AddAccountInput{
		Name:     fields["name"],
		Email:    fields["email"],
		Password: fields["password"],
	})
	if err != nil {
		c.logger.Error("account creation failed", "error", err)
		return controller.ServerError()
	}
	return controller.OK(account)
}

// isFalsy reports whether a request value counts as missing: nil, empty
// string, false, or a zero of any numeric kind.
func isFalsy(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	}
	return false
}
