package content

import (
	"fmt"
	"strings"

	"github.com/blog-content-api/internal/models"
)

const headingMarker = "## "

// Document is the editor's working model of an article body: an ordered list
// of typed sections plus the id counter for the session. Markdown is the
// canonical storage format; a Document is a transient view over it and
// Deserialize/Serialize are the only sanctioned boundary between the two.
type Document struct {
	Sections []models.ContentSection
	nextID   int
}

// Deserialize parses stored content blocks into a section list. A line
// starting with "## " becomes a heading section, any other non-blank line a
// paragraph section, blank lines are separators. Image markdown is not
// recognized here: a `![...](...)` line comes back as a paragraph section and
// loses its image type tag. That asymmetry matches the shipped editor and is
// kept deliberately; flag it to product before "fixing" it.
//
// An empty result is seeded with one empty heading and one empty paragraph so
// the editor never opens with zero editable sections.
func Deserialize(blocks []string) *Document {
	markdown := strings.Join(blocks, "\n\n")

	doc := &Document{nextID: 1}
	for _, line := range strings.Split(markdown, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, headingMarker) {
			doc.append(models.SectionHeading, strings.TrimPrefix(line, headingMarker))
			continue
		}
		doc.append(models.SectionParagraph, line)
	}

	if len(doc.Sections) == 0 {
		doc.append(models.SectionHeading, "")
		doc.append(models.SectionParagraph, "")
	}

	return doc
}

// Serialize emits the document back to markdown. Sections with blank content
// are skipped, list order is emission order, and the result is returned as a
// single-element slice: the Article content field always holds the whole
// document in one block.
func (d *Document) Serialize() ([]string, error) {
	var b strings.Builder
	for _, s := range d.Sections {
		if strings.TrimSpace(s.Content) == "" {
			continue
		}
		switch s.Type {
		case models.SectionHeading:
			b.WriteString(headingMarker + s.Content + "\n\n")
		case models.SectionParagraph:
			b.WriteString(s.Content + "\n\n")
		case models.SectionImage:
			b.WriteString(fmt.Sprintf("![Image](%s)\n\n", s.Content))
		default:
			return nil, fmt.Errorf("serialize: unknown section type %q", s.Type)
		}
	}
	return []string{strings.TrimSpace(b.String())}, nil
}

// Append adds a section of the given type at the end of the document and
// returns its local id.
func (d *Document) Append(t models.SectionType) int {
	return d.append(t, "")
}

// InsertAfter adds a section of the given type directly after the section with
// localID, or at the end when no section matches. Returns the new local id.
func (d *Document) InsertAfter(localID int, t models.SectionType) int {
	idx := d.index(localID)
	if idx < 0 {
		return d.append(t, "")
	}
	id := d.nextID
	d.nextID++
	section := models.ContentSection{LocalID: id, Type: t}
	d.Sections = append(d.Sections, models.ContentSection{})
	copy(d.Sections[idx+2:], d.Sections[idx+1:])
	d.Sections[idx+1] = section
	return id
}

// Remove deletes the section with localID. Removing an unknown id is a no-op.
func (d *Document) Remove(localID int) {
	idx := d.index(localID)
	if idx < 0 {
		return
	}
	d.Sections = append(d.Sections[:idx], d.Sections[idx+1:]...)
}

// Move shifts the section with localID by delta positions (negative is toward
// the front), clamped to the document bounds.
func (d *Document) Move(localID int, delta int) {
	idx := d.index(localID)
	if idx < 0 || delta == 0 {
		return
	}
	target := idx + delta
	if target < 0 {
		target = 0
	}
	if target >= len(d.Sections) {
		target = len(d.Sections) - 1
	}
	section := d.Sections[idx]
	d.Sections = append(d.Sections[:idx], d.Sections[idx+1:]...)
	d.Sections = append(d.Sections[:target], append([]models.ContentSection{section}, d.Sections[target:]...)...)
}

// SetContent replaces the content of the section with localID. Returns false
// when no section matches.
func (d *Document) SetContent(localID int, content string) bool {
	idx := d.index(localID)
	if idx < 0 {
		return false
	}
	d.Sections[idx].Content = content
	return true
}

// Section returns the section with localID, if present.
func (d *Document) Section(localID int) (models.ContentSection, bool) {
	idx := d.index(localID)
	if idx < 0 {
		return models.ContentSection{}, false
	}
	return d.Sections[idx], true
}

func (d *Document) append(t models.SectionType, content string) int {
	id := d.nextID
	d.nextID++
	d.Sections = append(d.Sections, models.ContentSection{LocalID: id, Type: t, Content: content})
	return id
}

func (d *Document) index(localID int) int {
	for i, s := range d.Sections {
		if s.LocalID == localID {
			return i
		}
	}
	return -1
}
