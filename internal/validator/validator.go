package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/NH-Portal/portal-service/internal/models"
)

// ValidationError describes a single failed field rule.
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidationErrors aggregates field errors; it is returned before any
// store write is attempted.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve))
	for i, e := range ve {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

// Validator wraps go-playground validation with portal-specific rules.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerPortalRules()

	return v
}

// Validate validates struct tags and converts failures to ValidationErrors.
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err != nil {
		return toValidationErrors(err)
	}
	return nil
}

func (v *Validator) registerPortalRules() {
	_ = v.validate.RegisterValidation("grade_tier", func(fl validator.FieldLevel) bool {
		switch models.GradeTier(fl.Field().String()) {
		case models.TierSMP, models.TierSMA, models.TierSMK:
			return true
		}
		return false
	})

	_ = v.validate.RegisterValidation("account_role", func(fl validator.FieldLevel) bool {
		return models.AccountRole(fl.Field().String()).Valid()
	})

	_ = v.validate.RegisterValidation("assessment_kind", func(fl validator.FieldLevel) bool {
		return models.AssessmentKind(fl.Field().String()).Valid()
	})
}

func toValidationErrors(err error) ValidationErrors {
	var result ValidationErrors

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Tag: "", Message: err.Error()}}
	}

	for _, fieldErr := range validationErrs {
		result = append(result, ValidationError{
			Field:   fieldErr.Field(),
			Tag:     fieldErr.Tag(),
			Message: messageFor(fieldErr),
		})
	}

	return result
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "grade_tier":
		return fmt.Sprintf("%s must be one of SMP, SMA, SMK", fe.Field())
	case "account_role":
		return fmt.Sprintf("%s must be admin or student", fe.Field())
	case "assessment_kind":
		return fmt.Sprintf("%s must be practicum or exam", fe.Field())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
