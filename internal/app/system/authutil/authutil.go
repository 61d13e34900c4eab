// internal/app/system/authutil/authutil.go
package authutil

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

var (
	ErrPasswordTooShort = errors.New("password is too short")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordCommon   = errors.New("password is too common")
)

// commonPasswords is a short deny list of passwords seen constantly in
// credential dumps. Checked case-insensitively.
var commonPasswords = map[string]bool{
	"password":  true,
	"123456":    true,
	"12345678":  true,
	"qwerty":    true,
	"letmein":   true,
	"welcome":   true,
	"iloveyou":  true,
	"admin":     true,
	"passw0rd":  true,
	"password1": true,
}

// ValidatePassword enforces the password rules for account creation
// and password changes.
func ValidatePassword(pw string) error {
	if len(pw) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(pw) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	if commonPasswords[strings.ToLower(pw)] {
		return ErrPasswordCommon
	}
	return nil
}

// PasswordRules returns a human-readable summary of the password
// requirements, for error messages.
func PasswordRules() string {
	return fmt.Sprintf("Passwords must be %d-%d characters and not a commonly used password.",
		MinPasswordLength, MaxPasswordLength)
}

// HashPassword hashes a plain-text password with bcrypt.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether pw matches the stored bcrypt hash.
func CheckPassword(pw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// IsValidEmail does a light sanity check on an email address. Real
// validation happens when mail is actually sent; this only rejects
// obvious garbage.
func IsValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	if dot <= 0 || strings.HasSuffix(domain, ".") {
		return false
	}
	return true
}
