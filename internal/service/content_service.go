package service

import (
	"context"

	"github.com/blog-content-api/internal/cache"
	"github.com/blog-content-api/internal/content"
	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/store"
	"github.com/rs/zerolog"
)

// ArticleView is the aggregate a reader page needs for one article: the
// record itself, its resolved references, the ranked related list, the
// rendered HTML and the heading anchors driving the table of contents.
// Category and Phase are nil when the reference dangles; consumers show a
// generic label instead of failing the view.
type ArticleView struct {
	Article  *models.Article        `json:"article"`
	Category *models.Category       `json:"category,omitempty"`
	Phase    *models.TimelinePhase  `json:"phase,omitempty"`
	Related  []*models.Article      `json:"related"`
	HTML     string                 `json:"html"`
	Headings []models.HeadingAnchor `json:"headings"`
	Image    string                 `json:"image"`
}

// CategoryView is a category plus its articles in store order.
type CategoryView struct {
	Category *models.Category  `json:"category"`
	Articles []*models.Article `json:"articles"`
}

const defaultRelatedCount = 3

// contentService is the concrete implementation of ContentService
type contentService struct {
	store    *store.Store
	cache    *cache.RenderCache
	renderer *content.Renderer
	log      zerolog.Logger
}

// newContentService creates a new ContentService
func newContentService(contentStore *store.Store, renderCache *cache.RenderCache, log zerolog.Logger) *contentService {
	return &contentService{
		store:    contentStore,
		cache:    renderCache,
		renderer: content.NewRenderer(),
		log:      log.With().Str("service", "content").Logger(),
	}
}

// ArticleView assembles the full reader view for one article. Returns
// (nil, nil) when the article does not exist.
func (s *contentService) ArticleView(ctx context.Context, id string) (*ArticleView, error) {
	article := s.store.FindArticle(id)
	if article == nil {
		return nil, nil
	}

	body := article.Body()

	html := s.cache.Get(ctx, id)
	if html == "" {
		rendered, err := s.renderer.Render(body)
		if err != nil {
			return nil, err
		}
		html = rendered
		s.cache.Set(ctx, id, html)
	}

	return &ArticleView{
		Article:  article,
		Category: s.store.FindCategory(article.Category),
		Phase:    s.store.FindPhaseContaining(id),
		Related:  s.store.RelatedArticles(id, defaultRelatedCount),
		HTML:     html,
		Headings: content.ExtractHeadings(body),
		Image:    content.ArticleImage(article.ID, article.Image),
	}, nil
}

// Articles returns all articles in store order.
func (s *contentService) Articles(ctx context.Context) []*models.Article {
	return s.store.Articles()
}

// RelatedArticles returns the ranked related list for an article.
func (s *contentService) RelatedArticles(ctx context.Context, id string, count int) []*models.Article {
	if count <= 0 {
		count = defaultRelatedCount
	}
	return s.store.RelatedArticles(id, count)
}

// Categories returns all categories.
func (s *contentService) Categories(ctx context.Context) []*models.Category {
	return s.store.Categories()
}

// CategoryView returns a category with its articles, or (nil, nil) when the
// category does not exist.
func (s *contentService) CategoryView(ctx context.Context, id string) (*CategoryView, error) {
	category := s.store.FindCategory(id)
	if category == nil {
		return nil, nil
	}
	return &CategoryView{
		Category: category,
		Articles: s.store.ArticlesInCategory(id),
	}, nil
}

// Timeline returns all phases in step order.
func (s *contentService) Timeline(ctx context.Context) []*models.TimelinePhase {
	return s.store.Phases()
}

// PhaseArticles resolves a phase's article list.
func (s *contentService) PhaseArticles(ctx context.Context, phaseID string) []*models.Article {
	return s.store.ArticlesInPhase(phaseID)
}

// Refresh re-runs the joint load and replaces the snapshot.
func (s *contentService) Refresh(ctx context.Context) error {
	return s.store.Load(ctx)
}

// Counts returns collection sizes for the metrics endpoint.
func (s *contentService) Counts(ctx context.Context) (articles, categories, phases int) {
	return len(s.store.Articles()), len(s.store.Categories()), len(s.store.Phases())
}
