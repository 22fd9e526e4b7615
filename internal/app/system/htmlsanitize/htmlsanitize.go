// Package htmlsanitize strips untrusted markup from user-supplied text.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML elements and attributes, leaving plain text.
// Profile fields pass through here before validation and storage so that
// markup never counts toward length limits or reaches templates.
func Strip(s string) string {
	return strict.Sanitize(s)
}
