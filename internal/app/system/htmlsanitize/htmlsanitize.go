// Package htmlsanitize strips dangerous markup from user-supplied
// text before it is stored. Post bodies, community descriptions, and
// bios come straight from the browser and are re-rendered for other
// users, so everything passes through here on the way in.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.UGCPolicy()

// Sanitize returns s with scripts, event handlers, and other unsafe
// constructs removed. Common user-generated formatting (paragraphs,
// emphasis, links) is preserved.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
