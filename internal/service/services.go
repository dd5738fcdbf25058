package service

import (
	"context"

	"github.com/blog-content-api/internal/cache"
	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/internal/store"
	"github.com/rs/zerolog"
)

// ContentService defines the read side: reader views over the content store.
type ContentService interface {
	ArticleView(ctx context.Context, id string) (*ArticleView, error)
	Articles(ctx context.Context) []*models.Article
	RelatedArticles(ctx context.Context, id string, count int) []*models.Article
	Categories(ctx context.Context) []*models.Category
	CategoryView(ctx context.Context, id string) (*CategoryView, error)
	Timeline(ctx context.Context) []*models.TimelinePhase
	PhaseArticles(ctx context.Context, phaseID string) []*models.Article
	Refresh(ctx context.Context) error
	Counts(ctx context.Context) (articles, categories, phases int)
}

// EditorService defines the write side: structured editing sessions and the
// save-through to persistence.
type EditorService interface {
	OpenSession(ctx context.Context, articleID string) (*EditorSession, error)
	GetSession(id string) *EditorSession
	CloseSession(id string)
	InsertSection(sessionID string, afterLocalID int, sectionType models.SectionType) (*EditorSession, error)
	RemoveSection(sessionID string, localID int) (*EditorSession, error)
	MoveSection(sessionID string, localID, delta int) (*EditorSession, error)
	EditSection(sessionID string, localID int, content string) (*EditorSession, error)
	Save(ctx context.Context, sessionID string, meta ArticleMeta) (*models.Article, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdatePhase(ctx context.Context, phase *models.TimelinePhase) error
}

// Services holds all service interfaces
type Services struct {
	Content ContentService
	Editor  EditorService
	Store   *store.Store
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, contentStore *store.Store, renderCache *cache.RenderCache, log zerolog.Logger) *Services {
	contentSvc := newContentService(contentStore, renderCache, log)
	editorSvc := newEditorService(repos, contentSvc, renderCache, log)

	return &Services{
		Content: contentSvc,
		Editor:  editorSvc,
		Store:   contentStore,
	}
}
