package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/blog-content-api/internal/database"
	"github.com/blog-content-api/internal/models"
)

// timelineRepo is the concrete implementation of TimelineRepository
type timelineRepo struct {
	db *database.DB
}

// NewTimelineRepo creates a new timeline repository
func NewTimelineRepo(db *database.DB) TimelineRepository {
	return &timelineRepo{db: db}
}

const phaseColumns = `id, step, title, subtitle, description, color, icon, articles, cta_text, cta_link`

// GetAll retrieves all timeline phases ordered by step
func (r *timelineRepo) GetAll(ctx context.Context) ([]*models.TimelinePhase, error) {
	query := `SELECT ` + phaseColumns + ` FROM timeline_phases ORDER BY step`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phases []*models.TimelinePhase
	for rows.Next() {
		phase, err := scanPhase(rows.Scan)
		if err != nil {
			return nil, err
		}
		phases = append(phases, phase)
	}
	return phases, rows.Err()
}

// GetByID retrieves a timeline phase by ID
func (r *timelineRepo) GetByID(ctx context.Context, id string) (*models.TimelinePhase, error) {
	query := `SELECT ` + phaseColumns + ` FROM timeline_phases WHERE id = $1`

	phase, err := scanPhase(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return phase, nil
}

// Update overwrites a phase's display metadata and article list
func (r *timelineRepo) Update(ctx context.Context, phase *models.TimelinePhase) error {
	articlesJSON, err := json.Marshal(phase.Articles)
	if err != nil {
		return fmt.Errorf("marshal articles: %w", err)
	}

	query := `
		UPDATE timeline_phases
		SET step = $2, title = $3, subtitle = $4, description = $5, color = $6,
		    icon = $7, articles = $8, cta_text = $9, cta_link = $10
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		phase.ID, phase.Step, phase.Title, phase.Subtitle, phase.Description,
		phase.Color, phase.Icon, articlesJSON, phase.CTA.Text, phase.CTA.LinkKey,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("phase %s not found", phase.ID)
	}
	return nil
}

// Count returns the total number of timeline phases
func (r *timelineRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM timeline_phases").Scan(&count)
	return count, err
}

func scanPhase(scan func(...interface{}) error) (*models.TimelinePhase, error) {
	var phase models.TimelinePhase
	var articlesJSON []byte

	err := scan(
		&phase.ID, &phase.Step, &phase.Title, &phase.Subtitle, &phase.Description,
		&phase.Color, &phase.Icon, &articlesJSON, &phase.CTA.Text, &phase.CTA.LinkKey,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(articlesJSON, &phase.Articles); err != nil {
		return nil, fmt.Errorf("unmarshal articles for %s: %w", phase.ID, err)
	}
	return &phase, nil
}
