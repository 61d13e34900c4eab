// Package normalize canonicalizes user-supplied identity fields before
// they are stored or compared.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are compared
// case-insensitively everywhere, so they are stored folded.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// AuthMethod lowercases and trims an auth method label
// ("password", "google").
func AuthMethod(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
