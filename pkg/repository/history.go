package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/seoscope/seoscope/pkg/domain"
)

// History handles analysis-snapshot database operations
type History struct {
	db *sqlx.DB
}

// dbRecord maps one analyses row
type dbRecord struct {
	ID                  string    `db:"id"`
	ArticleID           string    `db:"article_id"`
	ContentHash         string    `db:"content_hash"`
	Overall             float64   `db:"overall"`
	ContentQuality      float64   `db:"content_quality"`
	KeywordOptimization float64   `db:"keyword_optimization"`
	TechnicalSEO        float64   `db:"technical_seo"`
	UserExperience      float64   `db:"user_experience"`
	WordCount           int       `db:"word_count"`
	Recommendations     int       `db:"recommendations"`
	CreatedAt           time.Time `db:"created_at"`
}

// Save inserts a snapshot. A missing ID or timestamp is filled in. Lock
// errors are retried with backoff, anything else fails immediately.
func (h *History) Save(ctx context.Context, rec domain.AnalysisRecord) error {
	if rec.ArticleID == "" {
		return fmt.Errorf("save analysis: empty article id")
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	row := dbRecord{
		ID:                  rec.ID,
		ArticleID:           rec.ArticleID,
		ContentHash:         rec.ContentHash,
		Overall:             rec.Overall,
		ContentQuality:      rec.ContentQuality,
		KeywordOptimization: rec.KeywordOptimization,
		TechnicalSEO:        rec.TechnicalSEO,
		UserExperience:      rec.UserExperience,
		WordCount:           rec.WordCount,
		Recommendations:     rec.Recommendations,
		CreatedAt:           rec.CreatedAt,
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO analyses (
				id, article_id, content_hash, overall, content_quality,
				keyword_optimization, technical_seo, user_experience,
				word_count, recommendations, created_at
			) VALUES (
				:id, :article_id, :content_hash, :overall, :content_quality,
				:keyword_optimization, :technical_seo, :user_experience,
				:word_count, :recommendations, :created_at
			)
		`
		if _, err := h.db.NamedExecContext(ctx, query, row); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("save analysis: %w", err)}
		}
		return nil
	})
}

// GetByArticle returns snapshots for an article, newest first
func (h *History) GetByArticle(ctx context.Context, articleID string, limit int) ([]domain.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT * FROM analyses
		WHERE article_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
	var rows []dbRecord
	if err := h.db.SelectContext(ctx, &rows, query, articleID, limit); err != nil {
		return nil, fmt.Errorf("get analyses: %w", err)
	}

	recs := make([]domain.AnalysisRecord, len(rows))
	for i, row := range rows {
		recs[i] = domain.AnalysisRecord{
			ID:                  row.ID,
			ArticleID:           row.ArticleID,
			ContentHash:         row.ContentHash,
			Overall:             row.Overall,
			ContentQuality:      row.ContentQuality,
			KeywordOptimization: row.KeywordOptimization,
			TechnicalSEO:        row.TechnicalSEO,
			UserExperience:      row.UserExperience,
			WordCount:           row.WordCount,
			Recommendations:     row.Recommendations,
			CreatedAt:           row.CreatedAt,
		}
	}
	return recs, nil
}

// Latest returns the most recent snapshot for an article, or nil when none
func (h *History) Latest(ctx context.Context, articleID string) (*domain.AnalysisRecord, error) {
	recs, err := h.GetByArticle(ctx, articleID, 1)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// DeleteOlderThan prunes snapshots created before the cutoff, returning the
// number of deleted rows
func (h *History) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := h.db.ExecContext(ctx, "DELETE FROM analyses WHERE created_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune analyses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (h *History) Close() error {
	return h.db.Close()
}

// Ping verifies the database connection
func (h *History) Ping(ctx context.Context) error {
	return h.db.PingContext(ctx)
}
