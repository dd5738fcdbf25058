package models

// PhaseCTA is the call-to-action attached to a timeline phase.
type PhaseCTA struct {
	Text    string `json:"text"`
	LinkKey string `json:"link"`
}

// TimelinePhase is an ordered stage grouping a ranked subset of articles.
// Membership is a plain id list: an article id may legally appear in several
// phases or in none, and ids without a matching article are tolerated.
type TimelinePhase struct {
	ID          string   `json:"id" db:"id"`
	Step        int      `json:"step" db:"step"`
	Title       string   `json:"title" db:"title"`
	Subtitle    string   `json:"subtitle" db:"subtitle"`
	Description string   `json:"description" db:"description"`
	Color       string   `json:"color" db:"color"`
	Icon        string   `json:"icon" db:"icon"`
	Articles    []string `json:"articles" db:"-"` // stored as JSON in DB
	CTA         PhaseCTA `json:"cta" db:"-"`
}

// Contains reports whether the phase's article list includes the given id.
func (p *TimelinePhase) Contains(articleID string) bool {
	for _, id := range p.Articles {
		if id == articleID {
			return true
		}
	}
	return false
}
