package slug

import (
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
	"unicode"
)

// MaxLength is the maximum number of characters in a valid tenant slug.
const MaxLength = 50

// ErrInvalidSlug is returned by callers that validate a slug before
// persisting it as a tenant identifier.
var ErrInvalidSlug = errors.New("invalid tenant slug")

var validSlug = regexp.MustCompile(`^[a-z0-9-]{1,50}$`)

// IsValid reports whether s is an acceptable tenant slug: lowercase
// letters, digits, and hyphens only, between 1 and 50 characters.
func IsValid(s string) bool {
	return validSlug.MatchString(s)
}

// ToAlias converts a tenant slug to its routing alias by replacing
// hyphens with underscores. The conversion is total and does not
// validate; check IsValid separately before trusting the input.
func ToAlias(s string) string {
	return strings.ReplaceAll(s, "-", "_")
}

// ToSlug converts a routing alias back to its slug form by replacing
// underscores with hyphens. Inverse of ToAlias for all valid slugs.
func ToSlug(alias string) string {
	return strings.ReplaceAll(alias, "_", "-")
}

// Option configures slug generation.
type Option func(*config)

type config struct {
	maxLength    int
	suffixLength int
}

// WithMaxLength caps the generated slug at n characters.
// Default is MaxLength.
func WithMaxLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

// WithSuffix appends a random alphanumeric suffix of the given length to
// reduce collision probability, separated by a hyphen. The suffix counts
// toward the max length.
func WithSuffix(length int) Option {
	return func(c *config) {
		if length > 0 {
			c.suffixLength = length
		}
	}
}

// Make derives a valid tenant slug from a display name. Letters are
// lowercased, diacritics are folded to ASCII, and every other run of
// characters collapses to a single hyphen. The result always satisfies
// IsValid unless the input contains no usable characters at all, in
// which case Make returns the empty string.
func Make(name string, opts ...Option) string {
	cfg := &config{maxLength: MaxLength}
	for _, opt := range opts {
		opt(cfg)
	}

	var b strings.Builder
	b.Grow(len(name))

	lastWasHyphen := true // suppress leading hyphen
	count := 0
	limit := cfg.maxLength
	if cfg.suffixLength > 0 {
		// Reserve room for "-suffix".
		limit -= cfg.suffixLength + 1
	}

	for _, r := range name {
		if count >= limit {
			break
		}

		r = unicode.ToLower(r)
		if folded, ok := foldDiacritic(r); ok {
			r = folded
		}

		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastWasHyphen = false
			count++
			continue
		}

		if !lastWasHyphen {
			if count+1 >= limit {
				break
			}
			b.WriteByte('-')
			lastWasHyphen = true
			count++
		}
	}

	result := strings.TrimSuffix(b.String(), "-")

	if cfg.suffixLength > 0 {
		suffix := randomSuffix(cfg.suffixLength)
		if result == "" {
			return suffix
		}
		return result + "-" + suffix
	}

	return result
}

// foldDiacritic maps common Latin diacritics to their ASCII base letter.
// Covers the major European languages; unmapped runes are reported false
// and treated as separators.
func foldDiacritic(r rune) (rune, bool) {
	folded, ok := diacritics[r]
	return folded, ok
}

var diacritics = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a', 'ā': 'a', 'ă': 'a', 'ą': 'a', 'æ': 'a',
	'ç': 'c', 'ć': 'c', 'č': 'c',
	'đ': 'd', 'ď': 'd',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e', 'ē': 'e', 'ė': 'e', 'ę': 'e', 'ě': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i', 'ī': 'i', 'į': 'i',
	'ł': 'l',
	'ñ': 'n', 'ń': 'n', 'ň': 'n',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o', 'ø': 'o', 'ō': 'o', 'œ': 'o',
	'ř': 'r',
	'ś': 's', 'š': 's', 'ș': 's', 'ß': 's',
	'ť': 't', 'ț': 't',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u', 'ū': 'u', 'ů': 'u', 'ų': 'u',
	'ý': 'y', 'ÿ': 'y',
	'ź': 'z', 'ž': 'z', 'ż': 'z',
}

func randomSuffix(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		// Deterministic fallback; collisions are tolerable here.
		for i := range b {
			b[i] = charset[i%len(charset)]
		}
		return string(b)
	}
	for i := range b {
		b[i] = charset[b[i]%byte(len(charset))]
	}
	return string(b)
}
