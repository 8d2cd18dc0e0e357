package middleware

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator reports validation errors under form field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// FieldMessages flattens binding errors into field -> message pairs for re-rendering a form.
// Errors that are not validation errors land under "__all__".
func FieldMessages(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["__all__"] = "Invalid form submission."
		return fields
	}
	for _, e := range verrs {
		if _, seen := fields[e.Field()]; !seen {
			fields[e.Field()] = validationMessage(e)
		}
	}
	return fields
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		if e.Kind() == reflect.String {
			return "Ensure this value has at most " + e.Param() + " characters."
		}
		return "Ensure this value is at most " + e.Param() + "."
	case "min":
		if e.Kind() == reflect.String {
			return "Ensure this value has at least " + e.Param() + " characters."
		}
		return "Ensure this value is at least " + e.Param() + "."
	case "uuid":
		return "Select a valid choice."
	case "oneof":
		return "Select one of: " + e.Param() + "."
	default:
		return "Enter a valid value."
	}
}
