package models

// Category is static reference taxonomy an article is tagged with. Articles
// point at categories by id; the reference is not enforced, a dangling id just
// resolves to nothing.
type Category struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	Color       string `json:"color" db:"color"`
}
