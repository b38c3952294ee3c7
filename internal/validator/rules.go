package validator

import (
	"fmt"

	"vacancy_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные теги; пустые значения пропускаются, для них есть 'required'
func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"is-role":               validateRole,
		"is-application-action": validateApplicationAction,
		"is-experience":         validateExperience,
		"is-salary-type":        validateSalaryType,
		"is-gender":             validateGender,
	}

	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register custom validation tag '%s': %w", tag, err)
		}
	}
	return nil
}

func validateRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.Role(value).Valid()
}

// Рекрутер может только принять или отклонить заявку
func validateApplicationAction(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ApplicationStatus(value).Terminal()
}

func validateExperience(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.IsExperienceLevel(value)
}

func validateSalaryType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.SalaryType(value).Valid()
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || models.Gender(value).Valid()
}
