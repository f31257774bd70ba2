package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const maxSlugBaseLength = 50

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashes  = regexp.MustCompile(`-+`)
)

// slugify lowercases title, strips accents and joins the remaining
// alphanumeric runs with single hyphens.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range norm.NFD.String(title) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}

	s := slugInvalid.ReplaceAllString(b.String(), "-")
	s = slugDashes.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugBaseLength {
		s = strings.TrimRight(s[:maxSlugBaseLength], "-")
	}
	if s == "" {
		s = "question"
	}
	return s
}

// newSlug returns slugify(title) with a random suffix, e.g.
// "how-do-channels-work-3f9a1c".
func newSlug(title string) string {
	return slugify(title) + "-" + randomSuffix()
}

func randomSuffix() string {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%06x", time.Now().UnixNano()&0xFFFFFF)
	}
	return hex.EncodeToString(b)
}
