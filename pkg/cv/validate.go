package cv

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func sharedValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			tag := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if tag == "-" {
				return ""
			}
			return tag
		})
	})
	return validate
}

// Validate checks the whole record against its declared constraints. It is
// intended as the last gate before rendering or export; field-by-field
// feedback during editing comes from the form-state registry instead.
func (d Document) Validate() error {
	return sharedValidator().Struct(d)
}

// ValidationMessages flattens a Validate error into human-readable messages
// keyed by dotted field paths, the same shape the form-state container and
// renderers use for error display. A nil or unrecognized error yields nil.
func ValidationMessages(err error) map[string][]string {
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	out := make(map[string][]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := dottedPath(fe.Namespace())
		out[path] = append(out[path], messageFor(fe))
	}
	return out
}

// dottedPath strips the root struct segment and lowers the namespace into the
// dotted form used across the module ("Document.personal.firstName" →
// "personal.firstName").
func dottedPath(namespace string) string {
	if idx := strings.Index(namespace, "."); idx != -1 {
		return namespace[idx+1:]
	}
	return namespace
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "invalid value"
	}
}
