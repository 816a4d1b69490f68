package common

import "strings"

// Normalize trims surrounding whitespace and lower-cases s. Emails, names and
// todo titles are all stored in this canonical form so that lookups and
// uniqueness checks are case-insensitive.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
