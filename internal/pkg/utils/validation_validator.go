package utils

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	validate   *validator.Validate
	loginRegex = regexp.MustCompile(`^[\p{L}\p{N}._@-]+$`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("login", validateLogin)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateLogin(fl validator.FieldLevel) bool {
	return loginRegex.MatchString(fl.Field().String())
}
