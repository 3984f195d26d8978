package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag"`
	Value   string `json:"value,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// New creates a new validator instance
func New() *Validator {
	v := validator.New()

	// Register custom tag name function to use JSON tags
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validators
	v.RegisterValidation("dateformat", validateDateFormat)
	v.RegisterValidation("timeofday", validateTimeOfDay)
	v.RegisterValidation("shortid", validateShortID)
	v.RegisterValidation("theme", validateTheme)

	return &Validator{validate: v}
}

// Validate validates a struct and returns validation errors
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Convert validation errors to our custom format
	var validationErrs ValidationErrors
	for _, err := range fieldErrs {
		validationErrs = append(validationErrs, ValidationError{
			Field:   err.Field(),
			Message: msgForTag(err),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
		})
	}

	return validationErrs
}

// msgForTag returns a human-readable error message for a validation tag
func msgForTag(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "dateformat":
		return fmt.Sprintf("%s must be in YYYY-MM-DD format", field)
	case "timeofday":
		return fmt.Sprintf("%s must be in HH:MM format", field)
	case "shortid":
		return fmt.Sprintf("%s may only contain letters, numbers, and . _ -", field)
	case "theme":
		return fmt.Sprintf("%s must be one of: light, dark, system", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// Custom validators

var (
	datePattern    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	shortIDPattern = regexp.MustCompile(`^[\p{L}\p{N}._-]+$`)
)

// validateDateFormat validates YYYY-MM-DD format
func validateDateFormat(fl validator.FieldLevel) bool {
	return datePattern.MatchString(fl.Field().String())
}

// validateTimeOfDay validates 24h HH:MM
func validateTimeOfDay(fl validator.FieldLevel) bool {
	return timePattern.MatchString(fl.Field().String())
}

// validateShortID validates login ids, surrounding whitespace allowed
func validateShortID(fl validator.FieldLevel) bool {
	return shortIDPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateTheme validates theme selection
func validateTheme(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "light", "dark", "system":
		return true
	}
	return false
}

// IsDate reports whether s is a YYYY-MM-DD date string
func IsDate(s string) bool {
	return len(s) == 10 && datePattern.MatchString(s)
}
