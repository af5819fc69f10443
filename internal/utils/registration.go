package utils

import (
	"errors"
	"fmt"
	"strings"
)

// MaxRegistrationLength matches the vehicles.registration_number column.
const MaxRegistrationLength = 32

var ErrInvalidRegistration = errors.New("invalid registration number")

// ParseRegistration returns the stored form of a registration number:
// separators (spaces, dashes, dots) removed and letters upper-cased. What is
// left must be 1 to MaxRegistrationLength ASCII letters or digits.
func ParseRegistration(raw string) (string, error) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r == ' ' || r == '-' || r == '.':
			continue
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			return "", fmt.Errorf("%w: unexpected character %q", ErrInvalidRegistration, r)
		}
	}

	reg := b.String()
	switch {
	case reg == "":
		return "", fmt.Errorf("%w: empty", ErrInvalidRegistration)
	case len(reg) > MaxRegistrationLength:
		return "", fmt.Errorf("%w: longer than %d characters", ErrInvalidRegistration, MaxRegistrationLength)
	}
	return reg, nil
}
