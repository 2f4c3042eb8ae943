package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("koanf")
	})
	// Discord ids are unsigned 64-bit integers serialized as strings
	_ = v.RegisterValidation("snowflake", validateSnowflake)
	return v
}

func validateSnowflake(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" || len(s) > 20 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate checks cfg against its struct tags and reports every failing field.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// formatFieldError names the environment variable rather than the Go field.
func formatFieldError(e validator.FieldError) string {
	name := strings.ToUpper(e.Field())
	switch e.Tag() {
	case "required":
		return name + " is required"
	case "snowflake":
		return fmt.Sprintf("%s must be a numeric Discord id, got %q", name, e.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, e.Param())
	case "url":
		return name + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %s validation", name, e.Tag())
	}
}
