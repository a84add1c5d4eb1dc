package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/andres-gutierrezri/kitty-project/utils"
)

type PasswordViolation string

const (
	ViolationTooShort             PasswordViolation = "password_too_short"
	ViolationTooLong              PasswordViolation = "password_too_long"
	ViolationMissingUpper         PasswordViolation = "password_no_upper"
	ViolationMissingLower         PasswordViolation = "password_no_lower"
	ViolationMissingSpecial       PasswordViolation = "password_no_special"
	ViolationContainsSpace        PasswordViolation = "password_has_spaces"
	ViolationInvalidChars         PasswordViolation = "password_invalid_chars"
	ViolationConsecutiveIdentical PasswordViolation = "password_consecutive_chars"
	ViolationConsecutiveLetters   PasswordViolation = "password_consecutive_letters"
	ViolationConsecutiveDigits    PasswordViolation = "password_consecutive_numbers"
	ViolationTooSimilar           PasswordViolation = "password_too_similar"
)

const passwordSpecialSet = "!@#$%^&*.-_+(){}[]:;<>?,/\\|~`"

// Message returns the user-facing description of the violation. lang is
// "ES" or "EN"; anything else falls back to English.
func (v PasswordViolation) Message(lang string) string {
	es := strings.EqualFold(lang, "ES")
	switch v {
	case ViolationTooShort:
		if es {
			return "La contraseña debe tener al menos 8 caracteres"
		}
		return "Password must be at least 8 characters long"
	case ViolationTooLong:
		if es {
			return "La contraseña no puede tener más de 20 caracteres"
		}
		return "Password cannot be longer than 20 characters"
	case ViolationMissingUpper:
		if es {
			return "La contraseña debe contener al menos una letra mayúscula"
		}
		return "Password must contain at least one uppercase letter"
	case ViolationMissingLower:
		if es {
			return "La contraseña debe contener al menos una letra minúscula"
		}
		return "Password must contain at least one lowercase letter"
	case ViolationMissingSpecial:
		if es {
			return "La contraseña debe contener al menos un carácter especial (!@#$%^&*.-_+...)"
		}
		return "Password must contain at least one special character (!@#$%^&*.-_+...)"
	case ViolationContainsSpace:
		if es {
			return "La contraseña no puede contener espacios"
		}
		return "Password cannot contain spaces"
	case ViolationInvalidChars:
		if es {
			return "La contraseña contiene caracteres no permitidos (como emojis)"
		}
		return "Password contains characters that are not allowed (such as emojis)"
	case ViolationConsecutiveIdentical:
		if es {
			return "La contraseña no puede contener tres o más caracteres idénticos consecutivos (ejemplo: aaa, 111)"
		}
		return "Password cannot contain three or more identical consecutive characters (e.g. aaa, 111)"
	case ViolationConsecutiveLetters:
		if es {
			return "La contraseña no puede contener secuencias alfabéticas consecutivas (ejemplo: abc, xyz)"
		}
		return "Password cannot contain consecutive alphabetic sequences (e.g. abc, xyz)"
	case ViolationConsecutiveDigits:
		if es {
			return "La contraseña no puede contener secuencias numéricas consecutivas (ejemplo: 123, 789)"
		}
		return "Password cannot contain consecutive numeric sequences (e.g. 123, 789)"
	case ViolationTooSimilar:
		if es {
			return "La contraseña es demasiado similar a tu información personal"
		}
		return "Password is too similar to your personal information"
	}
	return string(v)
}

// ViolationMessages maps every violation to its user-facing message, so the
// user sees the whole list at once instead of fixing one rule per attempt.
func ViolationMessages(violations []PasswordViolation, lang string) []string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message(lang))
	}
	return msgs
}

// ValidatePassword evaluates every policy rule against the candidate and
// returns one entry per violated rule, in a fixed order. It never
// short-circuits, so a caller can show everything that is wrong in one pass.
// identity may be nil, in which case the personal-data similarity rule is
// skipped.
func ValidatePassword(candidate string, identity *User) []PasswordViolation {
	var violations []PasswordViolation
	runes := []rune(candidate)

	// 1. length, counted in code points
	if len(runes) < 8 {
		violations = append(violations, ViolationTooShort)
	} else if len(runes) > 20 {
		violations = append(violations, ViolationTooLong)
	}

	// 2-4. required character classes
	if !strings.ContainsFunc(candidate, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		violations = append(violations, ViolationMissingUpper)
	}
	if !strings.ContainsFunc(candidate, func(r rune) bool { return r >= 'a' && r <= 'z' }) {
		violations = append(violations, ViolationMissingLower)
	}
	if !strings.ContainsAny(candidate, passwordSpecialSet) {
		violations = append(violations, ViolationMissingSpecial)
	}

	// 5. no spaces
	if strings.ContainsRune(candidate, ' ') {
		violations = append(violations, ViolationContainsSpace)
	}

	// 6. printable ASCII only (rejects emojis and control characters)
	for _, r := range runes {
		if r < 32 || r > 126 {
			violations = append(violations, ViolationInvalidChars)
			break
		}
	}

	// 7. runs of 3+ identical characters (aaa, 111)
	if hasIdenticalRun(runes) {
		violations = append(violations, ViolationConsecutiveIdentical)
	}

	// 8. ascending alphabetic sequences, case-insensitive (abc, XYZ)
	if hasAscendingLetterRun(runes) {
		violations = append(violations, ViolationConsecutiveLetters)
	}

	// 9. ascending digit sequences (123, 789)
	if hasAscendingDigitRun(runes) {
		violations = append(violations, ViolationConsecutiveDigits)
	}

	// 10. similarity against the owner's personal data. Reported at most
	// once, no matter how many attributes match.
	if identity != nil && tooSimilar(candidate, identity) {
		violations = append(violations, ViolationTooSimilar)
	}

	return violations
}

func hasIdenticalRun(runes []rune) bool {
	for i := 0; i+2 < len(runes); i++ {
		if runes[i] == runes[i+1] && runes[i+1] == runes[i+2] {
			return true
		}
	}
	return false
}

func hasAscendingLetterRun(runes []rune) bool {
	for i := 0; i+2 < len(runes); i++ {
		a := unicode.ToLower(runes[i])
		b := unicode.ToLower(runes[i+1])
		c := unicode.ToLower(runes[i+2])
		if unicode.IsLetter(a) && unicode.IsLetter(b) && unicode.IsLetter(c) &&
			b == a+1 && c == b+1 {
			return true
		}
	}
	return false
}

func hasAscendingDigitRun(runes []rune) bool {
	for i := 0; i+2 < len(runes); i++ {
		a, b, c := runes[i], runes[i+1], runes[i+2]
		if a >= '0' && a <= '9' && b == a+1 && c == b+1 && c <= '9' {
			return true
		}
	}
	return false
}

// tooSimilar checks the normalized candidate against the normalized personal
// attributes, in both containment directions. Attributes shorter than 3
// characters after normalization are skipped.
func tooSimilar(candidate string, identity *User) bool {
	normalized := utils.NormalizeText(candidate)

	attributes := []string{
		identity.Username,
		identity.Email,
		utils.EmailLocalPart(identity.Email),
		identity.FirstName,
		identity.LastName,
	}

	for _, attr := range attributes {
		norm := utils.NormalizeText(attr)
		if utf8.RuneCountInString(norm) < 3 {
			continue
		}
		if strings.Contains(normalized, norm) || strings.Contains(norm, normalized) {
			return true
		}
	}
	return false
}
