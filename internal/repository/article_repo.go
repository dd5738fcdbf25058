package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/blog-content-api/internal/database"
	"github.com/blog-content-api/internal/models"
	"github.com/lib/pq"
)

// ErrDuplicateID is returned when a create hits an existing primary key.
var ErrDuplicateID = errors.New("record with this id already exists")

const uniqueViolation = "23505"

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `id, title, excerpt, category, author, date, read_time, content, image, created_at, updated_at`

// GetAll retrieves all articles ordered by publish date descending, the order
// the content store snapshots them in.
func (r *articleRepo) GetAll(ctx context.Context) ([]*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles ORDER BY date DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*models.Article
	for rows.Next() {
		article, err := scanArticle(rows.Scan)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Exists checks if an article with the given ID exists
func (r *articleRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// Create inserts a new article
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	contentJSON, err := json.Marshal(article.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	query := `
		INSERT INTO articles (id, title, excerpt, category, author, date, read_time, content, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	now := time.Now()
	_, err = r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Excerpt, article.Category, article.Author,
		article.Date, article.ReadTime, contentJSON, article.Image, now, now,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateID
	}
	return err
}

// Update overwrites an existing article in place. The id itself is immutable;
// overwrite semantics, no versioning.
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	contentJSON, err := json.Marshal(article.Content)
	if err != nil {
		return fmt.Errorf("marshal content: %w", err)
	}

	query := `
		UPDATE articles
		SET title = $2, excerpt = $3, category = $4, author = $5, date = $6,
		    read_time = $7, content = $8, image = $9, updated_at = $10
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		article.ID, article.Title, article.Excerpt, article.Category, article.Author,
		article.Date, article.ReadTime, contentJSON, article.Image, time.Now(),
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("article %s not found", article.ID)
	}
	return nil
}

// Delete removes an article
func (r *articleRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM articles WHERE id = $1", id)
	return err
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

func scanArticle(scan func(...interface{}) error) (*models.Article, error) {
	var article models.Article
	var contentJSON []byte
	var image sql.NullString

	err := scan(
		&article.ID, &article.Title, &article.Excerpt, &article.Category, &article.Author,
		&article.Date, &article.ReadTime, &contentJSON, &image, &article.CreatedAt, &article.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(contentJSON, &article.Content); err != nil {
		return nil, fmt.Errorf("unmarshal content for %s: %w", article.ID, err)
	}
	if image.Valid {
		article.Image = image.String
	}
	return &article, nil
}
