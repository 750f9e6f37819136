package content

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugLength = 60

var (
	idRgx     = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)
	nonSlugRx = regexp.MustCompile(`[^a-z0-9]+`)
)

// ValidID reports whether s is safe as a path segment: country codes,
// record ids and languages all go through it
func ValidID(s string) bool {
	return idRgx.MatchString(s)
}

// Slugify turns a title into a lowercase ASCII id: accents are stripped,
// other characters collapse to single dashes
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	slug := nonSlugRx.ReplaceAllString(strings.ToLower(plain), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimRight(slug[:maxSlugLength], "-")
	}
	return slug
}
