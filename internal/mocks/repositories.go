package mocks

import (
	"context"
	"fmt"

	"github.com/blog-content-api/internal/models"
)

// MockArticleRepository is an in-memory implementation of ArticleRepository.
// Insertion order is preserved so tests can rely on store order.
type MockArticleRepository struct {
	Articles    []*models.Article
	byID        map[string]*models.Article
	GetAllError error
	WriteError  error
	UpdateCalls int
	CreateCalls int
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{byID: make(map[string]*models.Article)}
}

func (m *MockArticleRepository) GetAll(ctx context.Context) ([]*models.Article, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	return m.Articles, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	return m.byID[id], nil
}

func (m *MockArticleRepository) Exists(ctx context.Context, id string) (bool, error) {
	_, exists := m.byID[id]
	return exists, nil
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	m.CreateCalls++
	if m.WriteError != nil {
		return m.WriteError
	}
	if _, exists := m.byID[article.ID]; exists {
		return fmt.Errorf("article %s already exists", article.ID)
	}
	m.Articles = append(m.Articles, article)
	m.byID[article.ID] = article
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	m.UpdateCalls++
	if m.WriteError != nil {
		return m.WriteError
	}
	if _, exists := m.byID[article.ID]; !exists {
		return fmt.Errorf("article %s not found", article.ID)
	}
	for i, a := range m.Articles {
		if a.ID == article.ID {
			m.Articles[i] = article
		}
	}
	m.byID[article.ID] = article
	return nil
}

func (m *MockArticleRepository) Delete(ctx context.Context, id string) error {
	if _, exists := m.byID[id]; !exists {
		return nil
	}
	delete(m.byID, id)
	for i, a := range m.Articles {
		if a.ID == id {
			m.Articles = append(m.Articles[:i], m.Articles[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	return len(m.Articles), nil
}

// MockCategoryRepository is an in-memory implementation of CategoryRepository
type MockCategoryRepository struct {
	Categories  []*models.Category
	GetAllError error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{}
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]*models.Category, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	return m.Categories, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	for _, c := range m.Categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	for _, c := range m.Categories {
		if c.ID == category.ID {
			return fmt.Errorf("category %s already exists", category.ID)
		}
	}
	m.Categories = append(m.Categories, category)
	return nil
}

func (m *MockCategoryRepository) Count(ctx context.Context) (int, error) {
	return len(m.Categories), nil
}

// MockTimelineRepository is an in-memory implementation of TimelineRepository
type MockTimelineRepository struct {
	Phases      []*models.TimelinePhase
	GetAllError error
}

func NewMockTimelineRepository() *MockTimelineRepository {
	return &MockTimelineRepository{}
}

func (m *MockTimelineRepository) GetAll(ctx context.Context) ([]*models.TimelinePhase, error) {
	if m.GetAllError != nil {
		return nil, m.GetAllError
	}
	return m.Phases, nil
}

func (m *MockTimelineRepository) GetByID(ctx context.Context, id string) (*models.TimelinePhase, error) {
	for _, p := range m.Phases {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *MockTimelineRepository) Update(ctx context.Context, phase *models.TimelinePhase) error {
	for i, p := range m.Phases {
		if p.ID == phase.ID {
			m.Phases[i] = phase
			return nil
		}
	}
	return fmt.Errorf("phase %s not found", phase.ID)
}

func (m *MockTimelineRepository) Count(ctx context.Context) (int, error) {
	return len(m.Phases), nil
}
