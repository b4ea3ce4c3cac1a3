package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ironquest/IronQuest_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// Register custom validations for exercise and equipment slot
	_ = v.RegisterValidation("exercise", validateExercise)
	_ = v.RegisterValidation("equipslot", validateEquipSlot)

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	// Check if it's a validator.ValidationErrors
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "exercise":
			errs[field] = "Unknown exercise"
		case "equipslot":
			errs[field] = "Unknown equipment slot"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "excludesall":
			errs[field] = "Contains invalid characters"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

// Custom validation function for exercise names
func validateExercise(fl validator.FieldLevel) bool {
	exercise := fl.Field().String()
	// Allow empty if not required (handled by 'required' tag if needed)
	if exercise == "" {
		return true
	}
	return domain.IsValidExercise(domain.Exercise(strings.ToLower(exercise)))
}

// Custom validation function for equipment slots
func validateEquipSlot(fl validator.FieldLevel) bool {
	slot := fl.Field().String()
	if slot == "" {
		return true
	}
	return domain.IsValidEquipmentSlot(domain.EquipmentSlot(strings.ToLower(slot)))
}
