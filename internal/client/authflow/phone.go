package authflow

import (
	"errors"
	"strings"
)

var ErrEmptyPhone = errors.New("phone number is empty")

// NormalizePhone brings a user-entered phone number to the wire format:
// separators removed, always a leading "+". Numbers entered without "+"
// are assumed to be national and get defaultCountryCode prepended, so
// "555 123-4567" with default "1" becomes "+15551234567".
func NormalizePhone(phone, defaultCountryCode string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		switch r {
		case ' ', '-', '(', ')', '.':
			continue
		default:
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	if cleaned == "" || cleaned == "+" {
		return "", ErrEmptyPhone
	}
	if strings.HasPrefix(cleaned, "+") {
		return cleaned, nil
	}
	return "+" + defaultCountryCode + cleaned, nil
}

// ValidOTP reports whether code is exactly six digits.
func ValidOTP(code string) bool {
	if len(code) != otpLength {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
