// internal/utils/validator.go
package utils

import (
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/musichub/musichub-backend/internal/domain"
)

var (
	validate        *validator.Validate
	usernamePattern = regexp.MustCompile("^[a-zA-Z0-9_]+$")
)

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("username", validateUsername)
	validate.RegisterValidation("role", validateRole)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// jsonFieldName reports fields by their json name so errors match request bodies.
func jsonFieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return strings.ToLower(fld.Name)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

func validateUsername(fl validator.FieldLevel) bool {
	username := fl.Field().String()

	// Username should be alphanumeric and underscores, 3-50 characters
	if len(username) < 3 || len(username) > 50 {
		return false
	}

	return usernamePattern.MatchString(username)
}

// validateRole accepts the roles a user may pick at sign-up.
func validateRole(fl validator.FieldLevel) bool {
	return domain.Role(fl.Field().String()).SelfRegistrable()
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   e.Field(),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

// FromFieldErrors converts domain field errors into the response shape.
func FromFieldErrors(fields []domain.FieldError) []ValidationError {
	out := make([]ValidationError, 0, len(fields))
	for _, f := range fields {
		out = append(out, ValidationError{Field: f.Field, Tag: "invalid", Message: f.Message})
	}
	return out
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "gte":
		return e.Field() + " must be " + e.Param() + " or more"
	case "lte":
		return e.Field() + " must be " + e.Param() + " or less"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "uuid":
		return e.Field() + " must be a valid id"
	case "datetime":
		return e.Field() + " must be a date in " + e.Param() + " format"
	case "strong_password":
		return "Password must contain at least 8 characters with uppercase, lowercase, number, and special character"
	case "username":
		return "Username must be 3-50 characters and contain only letters, numbers, and underscores"
	case "role":
		return "Role must be one of: artist, producer, listener, label_manager"
	default:
		return e.Field() + " is invalid"
	}
}
