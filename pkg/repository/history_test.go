package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoscope/seoscope/pkg/domain"
)

func setupHistory(t *testing.T) *History {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	h, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, h.Close()) })
	return h
}

func TestHistory_SaveAndGet(t *testing.T) {
	h := setupHistory(t)
	require.NoError(t, h.Ping(context.Background()))

	rec := domain.AnalysisRecord{
		ArticleID:           "article-1",
		ContentHash:         "abc123",
		Overall:             87.5,
		ContentQuality:      32.1,
		KeywordOptimization: 28.4,
		TechnicalSEO:        15.0,
		UserExperience:      12.0,
		WordCount:           850,
		Recommendations:     3,
	}
	require.NoError(t, h.Save(context.Background(), rec))

	got, err := h.GetByArticle(context.Background(), "article-1", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.NotEmpty(t, got[0].ID, "id generated on save")
	assert.False(t, got[0].CreatedAt.IsZero(), "timestamp filled in")
	assert.Equal(t, rec.ArticleID, got[0].ArticleID)
	assert.Equal(t, rec.ContentHash, got[0].ContentHash)
	assert.InDelta(t, rec.Overall, got[0].Overall, 0.001)
	assert.Equal(t, rec.WordCount, got[0].WordCount)
	assert.Equal(t, rec.Recommendations, got[0].Recommendations)
}

func TestHistory_Save_EmptyArticleID(t *testing.T) {
	h := setupHistory(t)
	err := h.Save(context.Background(), domain.AnalysisRecord{ContentHash: "x"})
	assert.Error(t, err)
}

func TestHistory_GetByArticle_Ordering(t *testing.T) {
	h := setupHistory(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		rec := domain.AnalysisRecord{
			ID:          fmt.Sprintf("id-%d", i),
			ArticleID:   "article-1",
			ContentHash: fmt.Sprintf("hash-%d", i),
			Overall:     float64(50 + i),
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, h.Save(context.Background(), rec))
	}

	got, err := h.GetByArticle(context.Background(), "article-1", 3)
	require.NoError(t, err)
	require.Len(t, got, 3, "limit respected")

	assert.Equal(t, "id-4", got[0].ID, "newest first")
	assert.Equal(t, "id-3", got[1].ID)
	assert.Equal(t, "id-2", got[2].ID)
}

func TestHistory_GetByArticle_Isolation(t *testing.T) {
	h := setupHistory(t)

	require.NoError(t, h.Save(context.Background(), domain.AnalysisRecord{ArticleID: "a", ContentHash: "h1"}))
	require.NoError(t, h.Save(context.Background(), domain.AnalysisRecord{ArticleID: "b", ContentHash: "h2"}))

	got, err := h.GetByArticle(context.Background(), "a", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ArticleID)

	got, err = h.GetByArticle(context.Background(), "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHistory_Latest(t *testing.T) {
	h := setupHistory(t)

	latest, err := h.Latest(context.Background(), "article-1")
	require.NoError(t, err)
	assert.Nil(t, latest, "no history yet")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, h.Save(context.Background(), domain.AnalysisRecord{
		ID: "old", ArticleID: "article-1", ContentHash: "h1", CreatedAt: base}))
	require.NoError(t, h.Save(context.Background(), domain.AnalysisRecord{
		ID: "new", ArticleID: "article-1", ContentHash: "h2", CreatedAt: base.Add(time.Hour)}))

	latest, err = h.Latest(context.Background(), "article-1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "new", latest.ID)
}

func TestHistory_DeleteOlderThan(t *testing.T) {
	h := setupHistory(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, h.Save(context.Background(), domain.AnalysisRecord{
			ID:          fmt.Sprintf("id-%d", i),
			ArticleID:   "article-1",
			ContentHash: "h",
			CreatedAt:   base.Add(time.Duration(i) * 24 * time.Hour),
		}))
	}

	n, err := h.DeleteOlderThan(context.Background(), base.Add(2*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := h.GetByArticle(context.Background(), "article-1", 10)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
