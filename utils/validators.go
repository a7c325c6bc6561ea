package utils

import (
	"regexp"
)

// Deliberately permissive: anything@anything.anything. Deliverability
// is the mail server's problem.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}
