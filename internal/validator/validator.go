package validator

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
	pinPattern   = regexp.MustCompile(`^[0-9]{4,6}$`)
)

// New creates a new validator instance with custom validations registered.
// This ensures consistent validation across the application and tests.
func New() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name so errors match the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Register custom "notblank" validator - rejects whitespace-only strings
	// This is used for fields like item and shop names that must have meaningful content
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true // Not a string, let other validators handle it
		}
		return strings.TrimSpace(str) != ""
	})

	// "phone": international digits with optional leading +, as wa.me expects
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return phonePattern.MatchString(str)
	})

	// "pin": 4 to 6 digit vendor PIN
	_ = v.RegisterValidation("pin", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		return pinPattern.MatchString(str)
	})

	return v
}
