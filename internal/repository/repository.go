package repository

import (
	"context"

	"github.com/blog-content-api/internal/database"
	"github.com/blog-content-api/internal/models"
)

// ArticleRepository defines the persistence boundary for articles. GetAll is
// what the content store consumes; the mutation methods serve the editor save
// path. A miss is (nil, nil), not an error.
type ArticleRepository interface {
	GetAll(ctx context.Context) ([]*models.Article, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CategoryRepository defines the persistence boundary for categories.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]*models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	Create(ctx context.Context, category *models.Category) error
	Count(ctx context.Context) (int, error)
}

// TimelineRepository defines the persistence boundary for timeline phases.
type TimelineRepository interface {
	GetAll(ctx context.Context) ([]*models.TimelinePhase, error)
	GetByID(ctx context.Context, id string) (*models.TimelinePhase, error)
	Update(ctx context.Context, phase *models.TimelinePhase) error
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article  ArticleRepository
	Category CategoryRepository
	Timeline TimelineRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article:  NewArticleRepo(db),
		Category: NewCategoryRepo(db),
		Timeline: NewTimelineRepo(db),
	}
}
