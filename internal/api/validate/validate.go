// Package validate checks request shapes before they reach the catalog services.
package validate

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pcparts/catalog/internal/model"
	"github.com/pcparts/catalog/internal/nullable"
)

var v = newValidator()

type validationValuer interface{ ValidationValue() any }

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so violations match the payload.
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Absent and null values validate as nil, so omitempty skips them.
	val.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if vv, ok := field.Interface().(validationValuer); ok {
			return vv.ValidationValue()
		}
		return nil
	}, nullable.Value[string]{}, nullable.Value[int]{}, nullable.Value[[]string]{})

	return val
}

// Struct validates s and reports the first failing field as an InvalidParameterError.
func Struct(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return model.NewInvalidParameterError(fieldErrs[0].Field())
	}
	return model.NewInvalidParameterError("")
}
