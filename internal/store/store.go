// Package store holds the in-memory relational index over the three blog
// collections. It is read-only: mutations flow through the repositories and
// come back via a full reload. Queries never touch the database and never
// fail; before the first successful load they simply see empty collections,
// and callers gate their UI on Ready.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// snapshot is one immutable view of the three collections. A load builds a
// complete snapshot off to the side and swaps it in atomically; readers never
// see a partially-populated store.
type snapshot struct {
	articles   []*models.Article
	articleIdx map[string]*models.Article
	categories []*models.Category
	phases     []*models.TimelinePhase
}

// Store answers relational queries over the loaded collections.
type Store struct {
	repos *repository.Repositories
	log   zerolog.Logger

	snap atomic.Pointer[snapshot]

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
	wg      sync.WaitGroup
}

// New creates an unloaded store. All queries return empty results until the
// first Load succeeds.
func New(repos *repository.Repositories, log zerolog.Logger) *Store {
	return &Store{
		repos: repos,
		log:   log.With().Str("component", "store").Logger(),
	}
}

// Load fetches the three collections concurrently and replaces the snapshot.
// All three fetches must succeed; if any fails the previous snapshot (or the
// empty initial state) stays in place and the whole load is reported as
// failed. Phases are ordered by step before the snapshot goes live.
func (s *Store) Load(ctx context.Context) error {
	var (
		articles   []*models.Article
		categories []*models.Category
		phases     []*models.TimelinePhase
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		articles, err = s.repos.Article.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.repos.Category.GetAll(gctx)
		return err
	})
	g.Go(func() (err error) {
		phases, err = s.repos.Timeline.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("Blog data load failed")
		return fmt.Errorf("load blog data: %w", err)
	}

	sort.SliceStable(phases, func(i, j int) bool { return phases[i].Step < phases[j].Step })

	next := &snapshot{
		articles:   articles,
		articleIdx: make(map[string]*models.Article, len(articles)),
		categories: categories,
		phases:     phases,
	}
	for _, a := range articles {
		next.articleIdx[a.ID] = a
	}

	s.snap.Store(next)
	s.log.Info().
		Int("articles", len(articles)).
		Int("categories", len(categories)).
		Int("phases", len(phases)).
		Msg("Blog data loaded")
	return nil
}

// Ready reports whether a load has ever completed.
func (s *Store) Ready() bool {
	return s.snap.Load() != nil
}

// StartAutoRefresh reloads the snapshot on a fixed interval until the context
// is cancelled or StopAutoRefresh is called. A failed refresh keeps serving
// the previous snapshot.
func (s *Store) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	ctx, s.cancel = context.WithCancel(ctx)
	s.mu.Unlock()

	s.log.Info().Dur("interval", interval).Msg("Auto refresh started")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.log.Info().Msg("Auto refresh stopping")
				return
			case <-ticker.C:
				if err := s.Load(ctx); err != nil {
					s.log.Warn().Err(err).Msg("Auto refresh failed, keeping previous snapshot")
				}
			}
		}
	}()
}

// StopAutoRefresh stops the refresh loop and waits for it to exit.
func (s *Store) StopAutoRefresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.running = false
	s.log.Info().Msg("Auto refresh stopped")
}

func (s *Store) current() *snapshot {
	if snap := s.snap.Load(); snap != nil {
		return snap
	}
	return &snapshot{articleIdx: map[string]*models.Article{}}
}

// FindArticle returns the article with the given id, or nil.
func (s *Store) FindArticle(id string) *models.Article {
	return s.current().articleIdx[id]
}

// FindCategory returns the category with the given id, or nil. Articles may
// carry dangling category ids; a nil here is expected data, not an error.
func (s *Store) FindCategory(id string) *models.Category {
	for _, c := range s.current().categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// FindPhaseContaining returns the first phase, in step order, whose article
// list contains the given id, or nil. Membership is not exclusive, so the
// fixed phase ordering is what makes the answer deterministic.
func (s *Store) FindPhaseContaining(articleID string) *models.TimelinePhase {
	for _, p := range s.current().phases {
		if p.Contains(articleID) {
			return p
		}
	}
	return nil
}

// Categories returns all categories.
func (s *Store) Categories() []*models.Category {
	return s.current().categories
}

// Phases returns all phases in step order.
func (s *Store) Phases() []*models.TimelinePhase {
	return s.current().phases
}

// Articles returns all articles in store order (publish date descending).
func (s *Store) Articles() []*models.Article {
	return s.current().articles
}

// ArticlesInCategory returns the articles tagged with categoryID, preserving
// store order.
func (s *Store) ArticlesInCategory(categoryID string) []*models.Article {
	var out []*models.Article
	for _, a := range s.current().articles {
		if a.Category == categoryID {
			out = append(out, a)
		}
	}
	return out
}

// ArticlesInPhase resolves a phase's article id list, preserving the phase's
// own order. Ids with no matching article are silently dropped.
func (s *Store) ArticlesInPhase(phaseID string) []*models.Article {
	snap := s.current()
	var phase *models.TimelinePhase
	for _, p := range snap.phases {
		if p.ID == phaseID {
			phase = p
			break
		}
	}
	if phase == nil {
		return nil
	}

	var out []*models.Article
	for _, id := range phase.Articles {
		if a, ok := snap.articleIdx[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// RelatedArticles returns up to count other articles for the target: first
// articles sharing its category in store order, then, if short, any other
// articles in store order. A deterministic two-pass fill, not a similarity
// ranking. Unknown target ids yield nil.
func (s *Store) RelatedArticles(articleID string, count int) []*models.Article {
	snap := s.current()
	target, ok := snap.articleIdx[articleID]
	if !ok || count <= 0 {
		return nil
	}

	var related []*models.Article
	for _, a := range snap.articles {
		if len(related) == count {
			break
		}
		if a.ID != articleID && a.Category == target.Category {
			related = append(related, a)
		}
	}

	if len(related) < count {
		selected := make(map[string]bool, len(related))
		for _, a := range related {
			selected[a.ID] = true
		}
		for _, a := range snap.articles {
			if len(related) == count {
				break
			}
			if a.ID != articleID && !selected[a.ID] {
				related = append(related, a)
			}
		}
	}

	return related
}
