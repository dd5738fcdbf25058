package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/blog-content-api/internal/cache"
	"github.com/blog-content-api/internal/content"
	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrSessionNotFound is returned for operations on unknown session ids.
var ErrSessionNotFound = errors.New("editing session not found")

// ErrInvalidRecord is returned when a save fails validation; the wrapped
// detail carries the field errors.
var ErrInvalidRecord = errors.New("record failed validation")

// EditorSession is one in-flight edit of an article body. The section list is
// a transient view over the stored markdown; it is rebuilt on open and
// discarded after save. Single editor per article is assumed, no merge logic.
type EditorSession struct {
	ID        string    `json:"session_id"`
	ArticleID string    `json:"article_id,omitempty"`
	IsNew     bool      `json:"is_new"`
	CreatedAt time.Time `json:"created_at"`

	Document *content.Document `json:"-"`

	Sections []models.ContentSection `json:"sections"`
}

func (s *EditorSession) syncSections() *EditorSession {
	s.Sections = s.Document.Sections
	return s
}

// ArticleMeta carries the editable metadata on save. The article id is taken
// from the session for updates; for new articles it comes from here and is
// immutable afterwards.
type ArticleMeta struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	ReadTime string `json:"readTime"`
	Image    string `json:"image,omitempty"`
}

// editorService is the concrete implementation of EditorService
type editorService struct {
	repos   *repository.Repositories
	content ContentService
	cache   *cache.RenderCache
	log     zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*EditorSession
}

// newEditorService creates a new EditorService
func newEditorService(repos *repository.Repositories, contentSvc ContentService, renderCache *cache.RenderCache, log zerolog.Logger) *editorService {
	return &editorService{
		repos:    repos,
		content:  contentSvc,
		cache:    renderCache,
		log:      log.With().Str("service", "editor").Logger(),
		sessions: make(map[string]*EditorSession),
	}
}

// OpenSession starts an editing session. An empty articleID opens a new
// document seeded with the default sections; otherwise the stored article is
// read fresh from persistence and deserialized. Returns (nil, nil) when the
// requested article does not exist.
func (s *editorService) OpenSession(ctx context.Context, articleID string) (*EditorSession, error) {
	session := &EditorSession{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}

	if articleID == "" {
		session.IsNew = true
		session.Document = content.Deserialize(nil)
	} else {
		article, err := s.repos.Article.GetByID(ctx, articleID)
		if err != nil {
			return nil, err
		}
		if article == nil {
			return nil, nil
		}
		session.ArticleID = article.ID
		session.Document = content.Deserialize(article.Content)
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.log.Info().
		Str("session_id", session.ID).
		Str("article_id", session.ArticleID).
		Bool("new", session.IsNew).
		Int("sections", len(session.Document.Sections)).
		Msg("Editing session opened")

	return session.syncSections(), nil
}

// GetSession returns a session by id, or nil.
func (s *editorService) GetSession(id string) *EditorSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, ok := s.sessions[id]; ok {
		return session.syncSections()
	}
	return nil
}

// CloseSession discards a session without saving.
func (s *editorService) CloseSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// InsertSection adds a section after the given local id (or at the end for 0).
func (s *editorService) InsertSection(sessionID string, afterLocalID int, sectionType models.SectionType) (*EditorSession, error) {
	return s.withSession(sessionID, func(session *EditorSession) error {
		if !models.ValidSectionTypes[sectionType] {
			return fmt.Errorf("%w: unknown section type %q", ErrInvalidRecord, sectionType)
		}
		if afterLocalID == 0 {
			session.Document.Append(sectionType)
		} else {
			session.Document.InsertAfter(afterLocalID, sectionType)
		}
		return nil
	})
}

// RemoveSection deletes a section from the session document.
func (s *editorService) RemoveSection(sessionID string, localID int) (*EditorSession, error) {
	return s.withSession(sessionID, func(session *EditorSession) error {
		session.Document.Remove(localID)
		return nil
	})
}

// MoveSection reorders a section by delta positions.
func (s *editorService) MoveSection(sessionID string, localID, delta int) (*EditorSession, error) {
	return s.withSession(sessionID, func(session *EditorSession) error {
		session.Document.Move(localID, delta)
		return nil
	})
}

// EditSection replaces a section's content.
func (s *editorService) EditSection(sessionID string, localID int, text string) (*EditorSession, error) {
	return s.withSession(sessionID, func(session *EditorSession) error {
		if !session.Document.SetContent(localID, text) {
			return fmt.Errorf("%w: no section with local id %d", ErrInvalidRecord, localID)
		}
		return nil
	})
}

// Save serializes the session document, validates the resulting record and
// writes it through the repository. On success the session is discarded, the
// render cache entry is dropped and the content store is refreshed so readers
// see the new revision.
func (s *editorService) Save(ctx context.Context, sessionID string, meta ArticleMeta) (*models.Article, error) {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	if errs := validation.ValidateSections(session.Document.Sections); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRecord, errs[0].Message)
	}

	serialized, err := session.Document.Serialize()
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		ID:       meta.ID,
		Title:    meta.Title,
		Excerpt:  meta.Excerpt,
		Category: meta.Category,
		Author:   meta.Author,
		Date:     meta.Date,
		ReadTime: meta.ReadTime,
		Image:    meta.Image,
		Content:  serialized,
	}
	if !session.IsNew {
		// Stored id wins: it is immutable once created.
		article.ID = session.ArticleID
	}

	known := make(map[string]bool)
	for _, c := range s.content.Categories(ctx) {
		known[c.ID] = true
	}
	if errs := validation.ValidateArticle(article, known); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidRecord, errs[0].Field, errs[0].Message)
	}

	if session.IsNew {
		err = s.repos.Article.Create(ctx, article)
	} else {
		err = s.repos.Article.Update(ctx, article)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	s.cache.Invalidate(ctx, article.ID)
	if err := s.content.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Store refresh after save failed; readers keep the previous snapshot")
	}

	s.log.Info().
		Str("article_id", article.ID).
		Bool("created", session.IsNew).
		Msg("Article saved")

	return article, nil
}

// CreateCategory validates and persists a new category, then refreshes.
func (s *editorService) CreateCategory(ctx context.Context, category *models.Category) error {
	if errs := validation.ValidateCategory(category); len(errs) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrInvalidRecord, errs[0].Field, errs[0].Message)
	}
	if err := s.repos.Category.Create(ctx, category); err != nil {
		return err
	}
	if err := s.content.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Store refresh after category create failed")
	}
	return nil
}

// UpdatePhase validates and persists a phase's metadata and article list,
// then refreshes.
func (s *editorService) UpdatePhase(ctx context.Context, phase *models.TimelinePhase) error {
	if errs := validation.ValidatePhase(phase); len(errs) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrInvalidRecord, errs[0].Field, errs[0].Message)
	}
	if err := s.repos.Timeline.Update(ctx, phase); err != nil {
		return err
	}
	if err := s.content.Refresh(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Store refresh after phase update failed")
	}
	return nil
}

func (s *editorService) withSession(sessionID string, fn func(*EditorSession) error) (*EditorSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	return session.syncSections(), nil
}
