package utils

import (
	"errors"
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phoneRegex = regexp.MustCompile(`^\+?1?\d{9,15}$`)

// RegisterCustomValidations registers custom validation rules
func RegisterCustomValidations(v *validator.Validate) {
	v.RegisterValidation("phone", validatePhone)
	v.RegisterValidation("confirm_phrase", validateConfirmPhrase)
}

// validatePhone checks the '+999999999' international format, up to 15 digits
func validatePhone(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if phone == "" {
		return true
	}
	return phoneRegex.MatchString(phone)
}

// validateConfirmPhrase only checks the field is non-blank after trimming;
// the exact phrase comparison happens in the account service.
func validateConfirmPhrase(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func TranslateValidationError(err error) string {
	lang := strings.ToUpper(strings.TrimSpace(os.Getenv("APP_API_RETURN_LANG")))
	if lang == "" {
		lang = "EN"
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		var messages []string
		for _, fe := range ve {
			field := fe.Field()
			switch lang {
			case "ES":
				switch fe.Tag() {
				case "required":
					messages = append(messages, field+" es obligatorio")
				case "email":
					messages = append(messages, "formato de email no válido")
				case "min":
					messages = append(messages, field+" debe tener al menos "+fe.Param()+" caracteres")
				case "max":
					messages = append(messages, field+" debe tener como máximo "+fe.Param()+" caracteres")
				case "gte":
					messages = append(messages, field+" debe ser mayor o igual a "+fe.Param())
				case "lte":
					messages = append(messages, field+" debe ser menor o igual a "+fe.Param())
				case "phone":
					messages = append(messages, field+" debe estar en formato '+999999999', hasta 15 dígitos")
				case "oneof":
					messages = append(messages, field+" debe ser uno de: "+fe.Param())
				default:
					messages = append(messages, field+" no es válido")
				}

			default: // English
				switch fe.Tag() {
				case "required":
					messages = append(messages, field+" is required")
				case "email":
					messages = append(messages, "invalid email format")
				case "min":
					messages = append(messages, field+" must be at least "+fe.Param()+" characters")
				case "max":
					messages = append(messages, field+" must be at most "+fe.Param()+" characters")
				case "gte":
					messages = append(messages, field+" must be greater than or equal to "+fe.Param())
				case "lte":
					messages = append(messages, field+" must be less than or equal to "+fe.Param())
				case "phone":
					messages = append(messages, field+" must be in '+999999999' format, up to 15 digits")
				case "oneof":
					messages = append(messages, field+" must be one of: "+fe.Param())
				default:
					messages = append(messages, field+" is invalid")
				}
			}
		}
		return strings.Join(messages, ", ")
	}
	return err.Error()
}
