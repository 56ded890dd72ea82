package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// echoValidator wraps go-playground/validator so handlers can call c.Validate.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns the request validator, with the custom "bit" tag
// (a number equal to 0 or 1) registered.
func NewValidator() echo.Validator {
	v := validator.New()
	if err := v.RegisterValidation("bit", validateBit); err != nil {
		panic(fmt.Sprintf("register bit validation: %v", err))
	}
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func validateBit(fl validator.FieldLevel) bool {
	f := fl.Field()
	if !f.CanFloat() && !f.CanInt() {
		return false
	}
	var n float64
	if f.CanFloat() {
		n = f.Float()
	} else {
		n = float64(f.Int())
	}
	return n == 0 || n == 1
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "bit":
		return field + " must be 0 or 1"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
