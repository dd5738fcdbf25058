package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blog-content-api/internal/api"
	"github.com/blog-content-api/internal/mocks"
	"github.com/blog-content-api/internal/models"
	"github.com/blog-content-api/internal/repository"
	"github.com/blog-content-api/internal/service"
	"github.com/blog-content-api/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func setupRouter(t *testing.T) (*gin.Engine, *mocks.MockArticleRepository) {
	t.Helper()

	articleRepo := mocks.NewMockArticleRepository()
	for _, a := range []*models.Article{
		{ID: "go-errors", Title: "Errors", Excerpt: "wrap them", Category: "golang",
			Date: "2024-02-01", Content: []string{"## Intro\n\nWrap your errors."}},
		{ID: "go-context", Title: "Context", Excerpt: "pass it", Category: "golang",
			Date: "2024-01-15", Content: []string{"## Basics\n\nFirst argument."}},
		{ID: "pg-indexes", Title: "Indexes", Excerpt: "btree", Category: "postgres",
			Date: "2024-01-01", Content: []string{"No headings here."}},
	} {
		if err := articleRepo.Create(context.Background(), a); err != nil {
			t.Fatalf("seed article %s: %v", a.ID, err)
		}
	}

	categoryRepo := mocks.NewMockCategoryRepository()
	categoryRepo.Categories = []*models.Category{
		{ID: "golang", Name: "Go"},
		{ID: "postgres", Name: "PostgreSQL"},
	}

	timelineRepo := mocks.NewMockTimelineRepository()
	timelineRepo.Phases = []*models.TimelinePhase{
		{ID: "start", Step: 1, Title: "Start", Articles: []string{"go-context", "go-errors"}},
	}

	repos := &repository.Repositories{
		Article:  articleRepo,
		Category: categoryRepo,
		Timeline: timelineRepo,
	}

	contentStore := store.New(repos, zerolog.Nop())
	if err := contentStore.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	services := service.NewServices(repos, contentStore, nil, zerolog.Nop())
	return api.NewRouter(services, zerolog.Nop()), articleRepo
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var resp map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["status"] != "healthy" {
		t.Errorf("status = %v", resp["status"])
	}
	if resp["loaded"] != true {
		t.Errorf("loaded = %v, want true", resp["loaded"])
	}
}

func TestListArticles(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodGet, "/v1/articles", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var resp struct {
		Count    int              `json:"count"`
		Articles []models.Article `json:"articles"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 3 || len(resp.Articles) != 3 {
		t.Errorf("Count = %d, articles = %d, want 3", resp.Count, len(resp.Articles))
	}
}

func TestGetArticle(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodGet, "/v1/articles/go-errors", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var view service.ArticleView
	json.Unmarshal(w.Body.Bytes(), &view)
	if view.Article == nil || view.Article.ID != "go-errors" {
		t.Fatalf("Article = %v", view.Article)
	}
	if view.Category == nil || view.Category.ID != "golang" {
		t.Errorf("Category = %v", view.Category)
	}
	if view.Phase == nil || view.Phase.ID != "start" {
		t.Errorf("Phase = %v", view.Phase)
	}
	if !strings.Contains(view.HTML, `<h2 id="intro">`) {
		t.Errorf("HTML missing anchored heading:\n%s", view.HTML)
	}
	if len(view.Headings) != 1 || view.Headings[0].Slug != "intro" {
		t.Errorf("Headings = %v", view.Headings)
	}
}

func TestGetArticleNotFound(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodGet, "/v1/articles/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", w.Code)
	}
}

func TestGetRelatedArticles(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodGet, "/v1/articles/go-errors/related?count=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	var resp struct {
		Count    int              `json:"count"`
		Articles []models.Article `json:"articles"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 1 || resp.Articles[0].ID != "go-context" {
		t.Errorf("Related = %+v, want single go-context", resp)
	}

	w = performRequest(router, http.MethodGet, "/v1/articles/go-errors/related?count=zero", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Status for bad count = %d, want 400", w.Code)
	}
}

func TestCategories(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodGet, "/v1/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	w = performRequest(router, http.MethodGet, "/v1/categories/golang", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	var view service.CategoryView
	json.Unmarshal(w.Body.Bytes(), &view)
	if len(view.Articles) != 2 {
		t.Errorf("Category articles = %d, want 2", len(view.Articles))
	}

	w = performRequest(router, http.MethodGet, "/v1/categories/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", w.Code)
	}
}

func TestCreateCategory(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodPost, "/v1/categories",
		models.Category{ID: "infra", Name: "Infrastructure"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want 201: %s", w.Code, w.Body.String())
	}

	w = performRequest(router, http.MethodGet, "/v1/categories/infra", nil)
	if w.Code != http.StatusOK {
		t.Errorf("New category not readable, status %d", w.Code)
	}

	w = performRequest(router, http.MethodPost, "/v1/categories", models.Category{ID: "Bad ID"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Status for invalid category = %d, want 422", w.Code)
	}
}

func TestTimeline(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodGet, "/v1/timeline", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}

	w = performRequest(router, http.MethodGet, "/v1/timeline/start/articles", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", w.Code)
	}
	var resp struct {
		Count    int              `json:"count"`
		Articles []models.Article `json:"articles"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 2 || resp.Articles[0].ID != "go-context" {
		t.Errorf("Phase articles = %+v", resp)
	}
}

func TestUpdatePhase(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodPut, "/v1/timeline/start",
		models.TimelinePhase{Step: 1, Title: "Start Here", Articles: []string{"pg-indexes"}})
	if w.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = performRequest(router, http.MethodPut, "/v1/timeline/start",
		models.TimelinePhase{Step: 0})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Status for invalid phase = %d, want 422", w.Code)
	}
}

func TestRefresh(t *testing.T) {
	router, articleRepo := setupRouter(t)

	w := performRequest(router, http.MethodPost, "/v1/refresh", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", w.Code)
	}

	articleRepo.GetAllError = context.DeadlineExceeded
	w = performRequest(router, http.MethodPost, "/v1/refresh", nil)
	if w.Code != http.StatusBadGateway {
		t.Errorf("Status for failed refresh = %d, want 502", w.Code)
	}
}

func TestEditorFlowOverHTTP(t *testing.T) {
	router, _ := setupRouter(t)

	// Open a session for an existing article.
	w := performRequest(router, http.MethodPost, "/v1/editor/sessions",
		map[string]string{"article_id": "go-errors"})
	if w.Code != http.StatusCreated {
		t.Fatalf("OpenSession status = %d: %s", w.Code, w.Body.String())
	}
	var session service.EditorSession
	json.Unmarshal(w.Body.Bytes(), &session)
	if session.ID == "" || len(session.Sections) != 2 {
		t.Fatalf("Session = %+v", session)
	}

	base := "/v1/editor/sessions/" + session.ID

	// Rewrite the heading.
	w = performRequest(router, http.MethodPatch, base+"/sections/1",
		map[string]string{"content": "Revised Intro"})
	if w.Code != http.StatusOK {
		t.Fatalf("EditSection status = %d: %s", w.Code, w.Body.String())
	}

	// Append a paragraph.
	w = performRequest(router, http.MethodPost, base+"/sections",
		map[string]interface{}{"type": "paragraph", "after_local_id": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("InsertSection status = %d: %s", w.Code, w.Body.String())
	}
	w = performRequest(router, http.MethodPatch, base+"/sections/3",
		map[string]string{"content": "A closing thought."})
	if w.Code != http.StatusOK {
		t.Fatalf("EditSection status = %d: %s", w.Code, w.Body.String())
	}

	// Save and check the reader view reflects the change.
	w = performRequest(router, http.MethodPost, base+"/save", service.ArticleMeta{
		Title: "Errors, Revised", Excerpt: "wrap them better", Category: "golang",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("Save status = %d: %s", w.Code, w.Body.String())
	}

	w = performRequest(router, http.MethodGet, "/v1/articles/go-errors", nil)
	var view service.ArticleView
	json.Unmarshal(w.Body.Bytes(), &view)
	if view.Article == nil || view.Article.Title != "Errors, Revised" {
		t.Errorf("Article after save = %v", view.Article)
	}
	if !strings.Contains(view.HTML, `<h2 id="revised-intro">`) {
		t.Errorf("HTML missing revised heading:\n%s", view.HTML)
	}

	// The session is gone after a successful save.
	w = performRequest(router, http.MethodGet, base, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GetSession after save = %d, want 404", w.Code)
	}
}

func TestEditorSessionErrors(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodPost, "/v1/editor/sessions",
		map[string]string{"article_id": "nope"})
	if w.Code != http.StatusNotFound {
		t.Errorf("OpenSession for unknown article = %d, want 404", w.Code)
	}

	w = performRequest(router, http.MethodPatch, "/v1/editor/sessions/no-such/sections/1",
		map[string]string{"content": "x"})
	if w.Code != http.StatusNotFound {
		t.Errorf("EditSection on unknown session = %d, want 404", w.Code)
	}

	w = performRequest(router, http.MethodPatch, "/v1/editor/sessions/no-such/sections/zero",
		map[string]string{"content": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("EditSection with bad local id = %d, want 400", w.Code)
	}

	// Open a real session, then feed it an unknown section type.
	w = performRequest(router, http.MethodPost, "/v1/editor/sessions", nil)
	var session service.EditorSession
	json.Unmarshal(w.Body.Bytes(), &session)

	w = performRequest(router, http.MethodPost, "/v1/editor/sessions/"+session.ID+"/sections",
		map[string]string{"type": "video"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("InsertSection with unknown type = %d, want 422", w.Code)
	}

	w = performRequest(router, http.MethodDelete, "/v1/editor/sessions/"+session.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("CloseSession = %d, want 204", w.Code)
	}
	w = performRequest(router, http.MethodGet, "/v1/editor/sessions/"+session.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GetSession after close = %d, want 404", w.Code)
	}
}

func TestSaveUnknownSession(t *testing.T) {
	router, _ := setupRouter(t)

	w := performRequest(router, http.MethodPost, "/v1/editor/sessions/no-such/save",
		service.ArticleMeta{ID: "x", Title: "t", Excerpt: "e", Category: "golang"})
	if w.Code != http.StatusNotFound {
		t.Errorf("Save on unknown session = %d, want 404", w.Code)
	}
}
