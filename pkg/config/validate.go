package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their TOML key
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError lists every field that failed validation
type ValidationError struct {
	Errs validator.ValidationErrors
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Errs))
	for i, fieldErr := range e.Errs {
		messages[i] = describe(fieldErr)
	}
	return "invalid config: " + strings.Join(messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.Errs
}

func describe(fieldErr validator.FieldError) string {
	// Drop the root struct name from "Config.render.width"
	field := fieldErr.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fieldErr.Tag() {
	case "required", "required_with":
		return fmt.Sprintf("%s is required", field)
	case "unique":
		return fmt.Sprintf("%s must have unique names", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", field, fieldErr.Param(), fieldErr.Value())
	case "excludesall", "ne":
		return fmt.Sprintf("%s %q is not a valid directory name", field, fieldErr.Value())
	default:
		if fieldErr.Param() != "" {
			return fmt.Sprintf("%s failed %s=%s, got %v", field, fieldErr.Tag(), fieldErr.Param(), fieldErr.Value())
		}
		return fmt.Sprintf("%s failed %s, got %v", field, fieldErr.Tag(), fieldErr.Value())
	}
}

// Validate checks field ranges and the camera policy
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return &ValidationError{Errs: fieldErrs}
		}
		return fmt.Errorf("validate config: %w", err)
	}
	if err := c.Policy().Validate(); err != nil {
		return err
	}
	return nil
}
