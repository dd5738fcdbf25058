package models

// SectionType tags the kind of an editor content section.
type SectionType string

const (
	SectionHeading   SectionType = "heading"
	SectionParagraph SectionType = "paragraph"
	SectionImage     SectionType = "image"
)

// ValidSectionTypes defines the allowed section type tags.
var ValidSectionTypes = map[SectionType]bool{
	SectionHeading:   true,
	SectionParagraph: true,
	SectionImage:     true,
}

// ContentSection is one typed fragment of an article body inside an editing
// session. LocalID is unique within a session only and is never persisted;
// position in the containing slice is the emission order.
type ContentSection struct {
	LocalID int         `json:"local_id"`
	Type    SectionType `json:"type"`
	Content string      `json:"content"`
}

// HeadingAnchor is a derived (text, slug) pair for one rendered second-level
// heading, used for deep links and table-of-contents highlighting.
type HeadingAnchor struct {
	Text string `json:"text"`
	Slug string `json:"id"`
}
