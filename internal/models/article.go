package models

import (
	"time"
)

// Article represents a single blog post. Content holds the full serialized
// markdown document as a single-element slice; the persistence layer stores it
// that way and the content codec is the only component that looks inside it.
type Article struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Excerpt   string    `json:"excerpt" db:"excerpt"`
	Category  string    `json:"category" db:"category"`
	Author    string    `json:"author" db:"author"`
	Date      string    `json:"date" db:"date"`
	ReadTime  string    `json:"readTime" db:"read_time"`
	Content   []string  `json:"content" db:"-"` // stored as JSON in DB
	Image     string    `json:"image,omitempty" db:"image"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Body joins the stored content blocks into one markdown document. A legacy
// record may still carry one block per paragraph; blocks are joined with a
// blank line so both layouts normalize to the same line stream.
func (a *Article) Body() string {
	switch len(a.Content) {
	case 0:
		return ""
	case 1:
		return a.Content[0]
	default:
		body := a.Content[0]
		for _, block := range a.Content[1:] {
			body += "\n\n" + block
		}
		return body
	}
}
