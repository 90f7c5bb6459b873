package auth

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// PasswordSymbols is the set of characters accepted as the special character
// of a password.
const PasswordSymbols = `!@#$%^&*(),.?":{}|<>`

const (
	minPasswordLen = 8
	maxPasswordLen = 32
)

var (
	ErrPasswordTooShort  = errors.New("Password must be at least 8 characters")
	ErrPasswordTooLong   = errors.New("Password must be at most 32 characters")
	ErrPasswordNoUpper   = errors.New("Password must contain at least one uppercase letter")
	ErrPasswordNoLower   = errors.New("Password must contain at least one lowercase letter")
	ErrPasswordNoDigit   = errors.New("Password must contain at least one digit")
	ErrPasswordNoSpecial = errors.New("Password must contain at least one special character")
)

// CheckPasswordPolicy returns the first rule p breaks, or nil. Length is
// counted in characters.
func CheckPasswordPolicy(p string) error {
	switch n := utf8.RuneCountInString(p); {
	case n < minPasswordLen:
		return ErrPasswordTooShort
	case n > maxPasswordLen:
		return ErrPasswordTooLong
	}

	var upper, lower, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			special = true
		}
	}

	switch {
	case !upper:
		return ErrPasswordNoUpper
	case !lower:
		return ErrPasswordNoLower
	case !digit:
		return ErrPasswordNoDigit
	case !special:
		return ErrPasswordNoSpecial
	}
	return nil
}
