package model

import (
	"math/rand/v2"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultLauncherPrefix starts every generated launcher name.
const DefaultLauncherPrefix = "Launcher "

// CopySuffix marks the name of a launcher produced by a copy.
const CopySuffix = "-copy"

const (
	defaultSuffixLen = 4
	alphanumerics    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// schemeRE matches "scheme://" prefixes such as https://, ftp://, steam://.
var schemeRE = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*://`)

// DefaultLauncherName returns the prefix followed by a random alphanumeric
// suffix. Used when the user creates a launcher without a name.
func DefaultLauncherName() string {
	var b strings.Builder
	b.WriteString(DefaultLauncherPrefix)
	for range defaultSuffixLen {
		b.WriteByte(alphanumerics[rand.IntN(len(alphanumerics))])
	}
	return b.String()
}

// CopyName returns the name given to a copy of a launcher named name.
func CopyName(name string) string {
	return name + CopySuffix
}

// IsURL reports whether path begins with a URL scheme.
func IsURL(path string) bool {
	if schemeRE.MatchString(path) {
		return true
	}
	lower := strings.ToLower(path)
	return strings.HasPrefix(lower, "http") || strings.HasPrefix(lower, "mailto:")
}

// DeriveResourceName returns the display name for a resource with no
// explicit name. URLs keep their full text; filesystem paths keep their
// final segment after either separator.
func DeriveResourceName(path string) string {
	if IsURL(path) {
		return path
	}
	i := strings.LastIndexAny(path, `\/`)
	if i < 0 || i == len(path)-1 {
		return path
	}
	return path[i+1:]
}

// NormalizeName trims surrounding whitespace and converts name to Unicode
// NFC so visually identical names compare equal.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// ParseBool interprets a boolean-as-string setting value. Only "true"
// (case-insensitive, surrounding whitespace ignored) is true.
func ParseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
