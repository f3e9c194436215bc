// Package htmlsanitize strips markup from user-supplied free text.
//
// Posting descriptions and registration notes are stored and served as
// plain text; any HTML a client submits is removed before persistence.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML elements and attributes, leaving text content.
func Strip(s string) string {
	return strict.Sanitize(s)
}
