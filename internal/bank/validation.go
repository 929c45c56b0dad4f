package bank

import (
	"regexp"
)

var EmailRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// ValidPassword checks length and character classes with a scan; Go's regexp
// has no lookahead, so the policy cannot be a single pattern.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	var hasLower, hasUpper, hasDigit bool

	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}

	return hasLower && hasUpper && hasDigit
}

func ValidContact(contact string) bool {
	if len(contact) != 10 {
		return false
	}

	for _, r := range contact {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

func ValidEmail(email string) bool {
	return EmailRegex.MatchString(email)
}
