package content

import (
	"regexp"
	"strings"

	"github.com/blog-content-api/internal/models"
)

var headingRegex = regexp.MustCompile(`(?m)^##\s+(.+)$`)

// Slugify derives the anchor id for a heading: lowercase, drop everything that
// is not an ASCII letter, digit, whitespace or hyphen, collapse whitespace runs
// to a single hyphen, collapse hyphen runs to one. Deterministic by
// construction; two headings that normalize to the same slug collide silently,
// which is a known limitation rather than an error.
func Slugify(text string) string {
	lower := strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		}
	}

	slug := strings.Join(strings.Fields(b.String()), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return slug
}

// ExtractHeadings scans a markdown document for second-level headings and
// returns their anchors in document order. Derived on every render, never
// persisted.
func ExtractHeadings(markdown string) []models.HeadingAnchor {
	matches := headingRegex.FindAllStringSubmatch(markdown, -1)
	anchors := make([]models.HeadingAnchor, 0, len(matches))
	for _, m := range matches {
		text := strings.TrimSpace(m[1])
		anchors = append(anchors, models.HeadingAnchor{
			Text: text,
			Slug: Slugify(text),
		})
	}
	return anchors
}
