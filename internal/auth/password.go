package auth

import (
	"regexp"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

const (
	lockThreshold = 5
	lockDuration  = 30 * time.Minute
)

// HashPassword salts and hashes a plaintext password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext candidate against a stored hash. A
// wrong password is false, never an error.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// PasswordCheck reports every violated password rule at once so the caller
// can render a complete checklist rather than one error at a time.
type PasswordCheck struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// ValidatePassword enforces the account password rules.
func ValidatePassword(plaintext string) PasswordCheck {
	errs := []string{}
	if len(plaintext) < MinPasswordLength {
		errs = append(errs, "password must be at least 8 characters long")
	}
	var upper, lower, digit bool
	for _, r := range plaintext {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		errs = append(errs, "password must contain an uppercase letter")
	}
	if !lower {
		errs = append(errs, "password must contain a lowercase letter")
	}
	if !digit {
		errs = append(errs, "password must contain a number")
	}
	return PasswordCheck{Valid: len(errs) == 0, Errors: errs}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateEmail checks the local@domain.tld shape. It does not verify
// deliverability.
func ValidateEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsAccountLocked reports whether an account with the given failure counter
// and lock deadline is currently locked out.
func IsAccountLocked(failedAttempts int, lockedUntil *time.Time) bool {
	if failedAttempts < lockThreshold || lockedUntil == nil {
		return false
	}
	return lockedUntil.After(time.Now())
}

// CalculateLockExpiry returns the lock deadline for the given failure count,
// or nil when the account should not be locked yet.
func CalculateLockExpiry(failedAttempts int) *time.Time {
	return lockExpiryFrom(failedAttempts, time.Now())
}

func lockExpiryFrom(failedAttempts int, now time.Time) *time.Time {
	if failedAttempts < lockThreshold {
		return nil
	}
	until := now.Add(lockDuration)
	return &until
}
