package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accented name", "Andrés", "andres"},
		{"uppercase accents", "GARCÍA", "garcia"},
		{"mixed", "JoSé Ñoño", "jose nono"},
		{"plain ascii", "johndoe", "johndoe"},
		{"empty", "", ""},
		{"already normalized", "maria", "maria"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestEmailLocalPart(t *testing.T) {
	assert.Equal(t, "john.doe", EmailLocalPart("john.doe@example.com"))
	assert.Equal(t, "no-at-sign", EmailLocalPart("no-at-sign"))
	assert.Equal(t, "", EmailLocalPart("@example.com"))
}
