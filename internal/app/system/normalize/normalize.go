package normalize

import "strings"

// Email lowercases and trims an email address so lookups and unique
// indexes are case-insensitive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims and collapses internal whitespace runs to single spaces.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Contact trims a phone contact string. Formatting inside the number is
// kept as entered; only surrounding whitespace is removed.
func Contact(s string) string {
	return strings.TrimSpace(s)
}
