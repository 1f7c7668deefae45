package utils

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	_ = validate.RegisterValidation("user_role", validateUserRole)
	_ = validate.RegisterValidation("storage_type", validateStorageType)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateUserRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	validRoles := []string{"admin", "member", "scanner", "read_only"}

	for _, validRole := range validRoles {
		if role == validRole {
			return true
		}
	}
	return false
}

func validateStorageType(fl validator.FieldLevel) bool {
	st := fl.Field().String()
	validTypes := []string{"pantry", "refrigerator", "freezer", "counter", "other"}

	for _, validType := range validTypes {
		if st == validType {
			return true
		}
	}
	return false
}
