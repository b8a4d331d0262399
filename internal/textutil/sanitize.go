package textutil

import "strings"

// Slug converts a string to a lowercase filesystem-safe token. Letters are
// lowercased, digits and hyphens/underscores are kept, everything else
// becomes an underscore. Runs of underscores collapse. Returns "unknown"
// for input with no usable characters.
func Slug(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	lastUnderscore := false
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastUnderscore = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
			lastUnderscore = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		case r == '-' || r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
			}
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}

// SlugN is Slug clipped to at most n bytes, never splitting mid-run of
// underscores. n <= 0 returns the full slug.
func SlugN(value string, n int) string {
	out := Slug(value)
	if n <= 0 || len(out) <= n {
		return out
	}
	out = out[:n]
	return strings.Trim(out, "_-")
}
