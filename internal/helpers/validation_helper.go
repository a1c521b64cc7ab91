package helpers

import (
	"regexp"
)

// local part, an "@", and a domain containing a dot
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
