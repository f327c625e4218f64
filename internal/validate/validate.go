package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/DjordjeVuckovic/media-catalog/internal/apperr"
	"github.com/go-playground/validator/v10"
)

// Validator checks struct tags and reports failures keyed by json field name.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank rejects values that are only whitespace.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// Struct validates s. Failures become an *apperr.ValidationError with msg and
// per-field messages.
func (v *Validator) Struct(s any, msg string) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.NewValidationWrap(msg, err)
	}
	return apperr.NewValidationFields(msg, fieldMessages(verrs))
}

// Echo adapts Validator to echo.Validator so handlers can call c.Validate.
type Echo struct {
	V       *Validator
	Message string
}

func (e Echo) Validate(i any) error {
	return e.V.Struct(i, e.Message)
}

func fieldMessages(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required", "notblank":
			out[field] = fmt.Sprintf("%s is required", field)
		case "email":
			out[field] = fmt.Sprintf("%s must be a valid email address", field)
		case "url", "http_url":
			out[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters long", field, fe.Param())
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s characters long", field, fe.Param())
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return out
}
