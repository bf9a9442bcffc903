// Package textutil turns user-facing names into strings safe for the
// filesystem. Project titles become export filenames and staging tokens, so
// the rules here decide what a render is called on disk.
package textutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// fileNameReplacer swaps path-breaking characters for dashes and drops the
// ones with no readable substitute.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName makes a display name safe to use as a filename. Input is
// NFC-normalized first so composed and decomposed accents produce the same
// name, then unsafe characters are replaced and the result trimmed.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(norm.NFC.String(name))
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// SanitizeToken reduces a name to a lowercase [a-z0-9_-] token for staging
// paths and labels. Empty or fully-unsafe input becomes "unknown".
func SanitizeToken(value string) string {
	value = strings.TrimSpace(norm.NFC.String(value))
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r == ' ':
			b.WriteByte('-')
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_-")
	if out == "" {
		return "unknown"
	}
	return out
}
