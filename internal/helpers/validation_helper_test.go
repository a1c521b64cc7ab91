package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"a@a.com", "first.last@sub.example.org", "user+tag@example.pe"}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{"", "plain", "@example.com", "user@", "missing@domain", "two words@example.com"}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}
