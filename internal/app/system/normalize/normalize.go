// Package normalize centralizes canonical forms for user-supplied
// identity fields so equality checks behave the same everywhere.
package normalize

import "strings"

// Email trims surrounding whitespace and lowercases. Email comparisons
// throughout the app are done on this canonical form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// CollegeID trims whitespace and uppercases; college IDs are issued in
// uppercase but users type them loosely.
func CollegeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Department trims whitespace and uppercases the department code.
func Department(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
