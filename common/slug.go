package common

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugs appear in dashboard and client portal URLs, so they are capped
// regardless of how long an agency names itself.
const maxSlugLen = 60

var (
	ErrEmptySlug = errors.New("slug cannot be empty")

	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify turns a display name into a URL slug. Ampersands read as
// "and", accented letters fold to ASCII, and everything else outside
// [a-z0-9] collapses to hyphens. When the name yields nothing usable
// the fallback is slugified instead; ErrEmptySlug means neither did.
func Slugify(input, fallback string) (string, error) {
	slug := slugify(input)
	if slug == "" {
		slug = slugify(fallback)
	}
	if slug == "" {
		return "", ErrEmptySlug
	}
	return slug, nil
}

func slugify(s string) string {
	s = strings.ReplaceAll(s, "&", " and ")

	// NFD splits accented letters from their combining marks so the
	// marks can be dropped: "Müller" folds to "Muller".
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxSlugLen {
		cut := slug[:maxSlugLen]
		if idx := strings.LastIndexByte(cut, '-'); idx > 0 {
			cut = cut[:idx]
		}
		slug = strings.Trim(cut, "-")
	}
	return slug
}
