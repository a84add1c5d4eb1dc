package utils

import (
	"errors"
	"os"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// TranslateDBError turns database errors into user-facing messages.
func TranslateDBError(err error) string {
	if err == nil {
		return ""
	}

	lang := strings.ToUpper(strings.TrimSpace(os.Getenv("APP_API_RETURN_LANG")))
	if lang == "" {
		lang = "EN"
	}

	// PostgreSQL-specific errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique violation
			msg := "Duplicate value, please use another"
			if strings.Contains(pgErr.Message, "users_email_key") {
				msg = "Email already exists"
			} else if strings.Contains(pgErr.Message, "users_username_key") {
				msg = "Username already exists"
			} else if strings.Contains(pgErr.Message, "idx_review_product_user") {
				msg = "You have already reviewed this product"
			}
			if lang == "ES" {
				msg = strings.ReplaceAll(msg, "already exists", "ya está en uso")
				msg = strings.ReplaceAll(msg, "Duplicate value, please use another", "Valor duplicado, usa otro")
				msg = strings.ReplaceAll(msg, "You have already reviewed this product", "Ya has reseñado este producto")
			}
			return msg

		case "23503": // foreign key violation
			if lang == "ES" {
				return "Este registro está siendo usado por otra tabla"
			}
			return "This record is referenced by another table"

		case "23502": // not-null violation
			if lang == "ES" {
				return "Hay campos obligatorios sin completar"
			}
			return "Some required fields are missing"

		case "23514": // check violation (price, stock, rating bounds)
			if lang == "ES" {
				return "Alguno de los valores está fuera de rango"
			}
			return "One of the values is out of range"

		case "22P02": // invalid text representation
			if lang == "ES" {
				return "Formato de datos no válido"
			}
			return "Invalid data format"
		}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if lang == "ES" {
			return "Registro no encontrado"
		}
		return "Record not found"
	}

	if lang == "ES" {
		return "Error interno de base de datos"
	}
	return "Internal database error"
}
