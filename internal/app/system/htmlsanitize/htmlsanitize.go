// Package htmlsanitize strips dangerous markup from user-supplied free text
// (bios, descriptions, post and comment bodies) before it is stored. The
// API serves this text back to browsers verbatim, so sanitization happens on
// the way in.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var ugc = bluemonday.UGCPolicy()

// Sanitize returns s with scripts, event handlers, and javascript: URLs
// removed. Formatting markup that is safe for user-generated content is
// preserved.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return ugc.Sanitize(s)
}
