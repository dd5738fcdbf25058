package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/blog-content-api/internal/models"
)

var idRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateArticle validates an article record before it is written. Category
// references are checked against knownCategories when provided; a miss is
// reported because the editor picks from a fixed list, even though readers
// tolerate dangling ids.
func ValidateArticle(article *models.Article, knownCategories map[string]bool) []ValidationError {
	var errors []ValidationError

	if article.ID == "" {
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	} else if !idRegex.MatchString(article.ID) {
		errors = append(errors, ValidationError{Field: "id", Message: "id must be kebab-case (lowercase letters, numbers, hyphens)", Value: article.ID})
	}

	if article.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}
	if article.Excerpt == "" {
		errors = append(errors, ValidationError{Field: "excerpt", Message: "excerpt is required"})
	}

	if article.Category == "" {
		errors = append(errors, ValidationError{Field: "category", Message: "category is required"})
	} else if len(knownCategories) > 0 && !knownCategories[article.Category] {
		errors = append(errors, ValidationError{Field: "category", Message: "unknown category", Value: article.Category})
	}

	if article.Date != "" {
		if _, err := time.Parse("2006-01-02", article.Date); err != nil {
			errors = append(errors, ValidationError{Field: "date", Message: "date must be YYYY-MM-DD", Value: article.Date})
		}
	}

	// Content is always a single-element slice holding the whole serialized
	// document. Extra elements mean something wrote past the codec boundary.
	if len(article.Content) > 1 {
		errors = append(errors, ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content must hold a single serialized document, got %d blocks", len(article.Content)),
		})
	}

	return errors
}

// ValidateCategory validates a category record before it is written.
func ValidateCategory(category *models.Category) []ValidationError {
	var errors []ValidationError

	if category.ID == "" {
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	} else if !idRegex.MatchString(category.ID) {
		errors = append(errors, ValidationError{Field: "id", Message: "id must be kebab-case (lowercase letters, numbers, hyphens)", Value: category.ID})
	}
	if category.Name == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	return errors
}

// ValidatePhase validates a timeline phase record before it is written.
// Article ids in the membership list are only checked for shape, not for
// existence: a phase may reference articles that are gone or not yet written.
func ValidatePhase(phase *models.TimelinePhase) []ValidationError {
	var errors []ValidationError

	if phase.ID == "" {
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	}
	if phase.Step < 1 {
		errors = append(errors, ValidationError{Field: "step", Message: "step must be a positive index", Value: phase.Step})
	}
	if phase.Title == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}
	for _, id := range phase.Articles {
		if strings.TrimSpace(id) == "" {
			errors = append(errors, ValidationError{Field: "articles", Message: "article id must not be blank"})
			break
		}
	}

	return errors
}

// ValidateSections checks an editing session's sections before serialization.
// An unknown type tag is a programmer error and fails the whole save rather
// than corrupting the stored document.
func ValidateSections(sections []models.ContentSection) []ValidationError {
	var errors []ValidationError
	for i, s := range sections {
		if !models.ValidSectionTypes[s.Type] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("sections[%d].type", i),
				Message: "unknown section type",
				Value:   string(s.Type),
			})
		}
	}
	return errors
}
