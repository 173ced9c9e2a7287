package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

// policy allows the formatting users legitimately put in posts and
// comments while stripping scripts, event handlers, and javascript:
// URLs.
var policy = bluemonday.UGCPolicy()

// Sanitize cleans user-supplied HTML. Plain text passes through
// unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
