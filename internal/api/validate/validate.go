package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/baharkarakas/blog-backend/internal/validation"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return val
}

// Struct runs the `validate` tags of a request DTO.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	out := make(validation.Errs, 0, len(ves))
	for _, fe := range ves {
		out = append(out, validation.ErrField{Field: fe.Field(), Rule: fe.Tag(), Msg: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid id"
	case "min", "max":
		return "must satisfy " + fe.Tag() + "=" + fe.Param()
	default:
		return "invalid value"
	}
}
