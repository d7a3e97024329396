package analyzer

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoscope/seoscope/pkg/domain"
	"github.com/seoscope/seoscope/pkg/scoring"
)

type fakeHistory struct {
	mu   sync.Mutex
	recs []domain.AnalysisRecord
}

func (f *fakeHistory) Save(_ context.Context, rec domain.AnalysisRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs = append(f.recs, rec)
	return nil
}

func (f *fakeHistory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recs)
}

func testService(history HistoryStore) *Service {
	return NewService(Params{
		Weights:    scoring.DefaultWeights(),
		Thresholds: scoring.DefaultThresholds(),
		History:    history,
	})
}

// wellOptimizedArticle builds a ~620 word article that hits every band:
// keyword in intro, a heading and the conclusion, images with alt text,
// lists, bold spans and short sentences.
func wellOptimizedArticle() domain.AnalysisRequest {
	sent := "You can earn solid rewards points on everyday spending. "
	bold := "Smart travelers treat <strong>rewards points</strong> like cash savings. "
	para := "<p>" + strings.Repeat(sent, 6) + bold + "</p>\n"

	var b strings.Builder
	b.WriteString("<p>Travel credit cards turn everyday purchases into free flights and hotel stays. Have you wondered which card fits your budget? This guide compares the best options and their annual fee structures.</p>\n")
	b.WriteString("<h2>Why Travel Credit Cards Matter</h2>\n")
	b.WriteString(para)
	b.WriteString(para)
	b.WriteString(`<img src="cards.jpg" alt="travel credit cards comparison chart">` + "\n")
	b.WriteString("<h2>Comparing Rewards Points and Annual Fee Structures</h2>\n")
	b.WriteString(para)
	b.WriteString("<p>The best travel credit cards waive the annual fee in the first year and still pay generous rewards points on travel purchases.</p>\n")
	b.WriteString("<ul><li>Premium cards earn triple rewards points on flights.</li>" +
		"<li>Mid-tier cards charge a moderate annual fee.</li>" +
		"<li>No-fee cards suit occasional travelers.</li>" +
		"<li>Hotel cards add free night awards.</li></ul>\n")
	b.WriteString(para)
	b.WriteString(`<img src="fees.jpg" alt="annual fee comparison">` + "\n")
	b.WriteString("<h2>How to Choose Travel Credit Cards</h2>\n")
	b.WriteString(para)
	b.WriteString(para)
	b.WriteString(para)
	b.WriteString("<p>Ready to get started? Pick one of these travel credit cards, pay your balance in full each month, and your rewards points will cover your next trip.</p>\n")

	return domain.AnalysisRequest{
		Content: b.String(),
		Metadata: domain.SEOMetadata{
			Title:             "Best Travel Credit Cards: A Complete Guide",
			MetaDescription:   "Compare the best travel credit cards for frequent flyers, including rewards rates, annual fees, and sign-up bonuses to help you choose the right card.",
			Slug:              "best-travel-credit-cards",
			FocusKeyword:      "travel credit cards",
			SecondaryKeywords: []string{"annual fee", "rewards points"},
			HeroImageAlt:      "travel credit cards comparison chart",
		},
		ArticleID: "article-good",
	}
}

func thinArticle() domain.AnalysisRequest {
	return domain.AnalysisRequest{
		Content:   "<p>" + strings.Repeat("word and also more filler text keeps going on without any structure at all ", 4) + "never stopping</p>",
		Metadata:  domain.SEOMetadata{},
		ArticleID: "article-thin",
	}
}

func TestService_Analyze_WellOptimized(t *testing.T) {
	svc := testService(nil)

	res, err := svc.Analyze(context.Background(), wellOptimizedArticle())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Scores.Overall, 90.0, "well optimized article scores high, got %v", res.Scores.Overall)
	assert.LessOrEqual(t, res.Scores.Overall, 100.0)
	assert.Equal(t, 20.0, res.Scores.TechnicalSEO, "full title, meta and slug marks")
	assert.Equal(t, 30.0, res.Scores.KeywordOptimization, "full keyword marks")
	assert.Equal(t, 15.0, res.Scores.UserExperience)

	for _, r := range res.Recommendations {
		assert.NotEqual(t, domain.PriorityCritical, r.Priority, "unexpected critical: %s", r.Title)
		assert.NotEqual(t, domain.PriorityHigh, r.Priority, "unexpected high: %s", r.Title)
	}

	assert.False(t, res.FromCache)
	assert.NotEmpty(t, res.ContentHash)
	assert.GreaterOrEqual(t, res.Metrics.TextMetrics.WordCount, 600)
}

func TestService_Analyze_ThinContent(t *testing.T) {
	svc := testService(nil)

	res, err := svc.Analyze(context.Background(), thinArticle())
	require.NoError(t, err)

	assert.Less(t, res.Scores.Overall, 30.0, "thin unoptimized content scores low, got %v", res.Scores.Overall)

	criticals := 0
	for _, r := range res.Recommendations {
		if r.Priority == domain.PriorityCritical {
			criticals++
		}
	}
	assert.GreaterOrEqual(t, criticals, 3, "missing metadata produces critical recommendations")
}

func TestService_Analyze_Deterministic(t *testing.T) {
	req := wellOptimizedArticle()
	req.ForceRefresh = true // bypass cache so both runs compute

	svc := testService(nil)
	r1, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	r2, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, r1.Scores, r2.Scores)
	assert.Equal(t, r1.Recommendations, r2.Recommendations)
	assert.Equal(t, r1.ContentHash, r2.ContentHash)
}

func TestService_Analyze_CacheHit(t *testing.T) {
	svc := testService(nil)
	req := wellOptimizedArticle()

	first, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	require.False(t, first.FromCache)

	second, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Zero(t, second.ProcessingTime)
	assert.Equal(t, first.Scores, second.Scores)
	assert.Equal(t, first.ContentHash, second.ContentHash)
}

func TestService_Analyze_ForceRefresh(t *testing.T) {
	svc := testService(nil)
	req := wellOptimizedArticle()

	_, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	req.ForceRefresh = true
	res, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.FromCache, "force refresh bypasses the cache")
}

func TestService_Analyze_ContentChangeMissesCache(t *testing.T) {
	svc := testService(nil)
	req := wellOptimizedArticle()

	first, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	req.Content += "<p>One more closing thought for readers.</p>"
	second, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, second.FromCache)
	assert.NotEqual(t, first.ContentHash, second.ContentHash)
}

func TestService_Analyze_EmptyInput(t *testing.T) {
	svc := testService(nil)

	res, err := svc.Analyze(context.Background(), domain.AnalysisRequest{})
	require.NoError(t, err)

	assert.Less(t, res.Scores.Overall, 10.0, "empty input scores near zero")
	assert.GreaterOrEqual(t, res.Scores.Overall, 0.0)
	assert.Zero(t, res.Metrics.TextMetrics.WordCount)
}

func TestService_Analyze_History(t *testing.T) {
	history := &fakeHistory{}
	svc := testService(history)
	req := wellOptimizedArticle()

	res, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 1, history.count())

	rec := history.recs[0]
	assert.Equal(t, req.ArticleID, rec.ArticleID)
	assert.Equal(t, res.ContentHash, rec.ContentHash)
	assert.Equal(t, res.Scores.Overall, rec.Overall)
	assert.Equal(t, res.Metrics.TextMetrics.WordCount, rec.WordCount)

	// cache hits do not produce history entries
	_, err = svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, history.count())
}

func TestService_Analyze_Concurrent(t *testing.T) {
	svc := testService(nil)
	req := wellOptimizedArticle()

	const n = 16
	results := make([]*domain.AnalysisResult, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := svc.Analyze(context.Background(), req)
			require.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Equal(t, results[0].Scores, results[i].Scores)
		assert.Equal(t, results[0].ContentHash, results[i].ContentHash)
	}
}

func TestService_Invalidate(t *testing.T) {
	svc := testService(nil)
	req := wellOptimizedArticle()

	_, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	svc.Invalidate(req.ArticleID)
	res, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.FromCache)
}

func TestService_Analyze_ScoreBounds(t *testing.T) {
	svc := testService(nil)

	inputs := []domain.AnalysisRequest{
		wellOptimizedArticle(),
		thinArticle(),
		{Content: "one two three"},
		{Content: strings.Repeat("<h2>Heading</h2>", 50)},
		{Content: "text", Metadata: domain.SEOMetadata{FocusKeyword: "absent phrase"}},
	}
	for _, req := range inputs {
		req.ForceRefresh = true
		res, err := svc.Analyze(context.Background(), req)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Scores.Overall, 0.0)
		assert.LessOrEqual(t, res.Scores.Overall, 100.0)
		assert.LessOrEqual(t, res.Scores.ContentQuality, 35.0)
		assert.LessOrEqual(t, res.Scores.KeywordOptimization, 30.0)
		assert.LessOrEqual(t, res.Scores.TechnicalSEO, 20.0)
		assert.LessOrEqual(t, res.Scores.UserExperience, 15.0)
	}
}

func TestNewService_InvalidWeightsFallBack(t *testing.T) {
	svc := NewService(Params{
		Weights:    scoring.Weights{Readability: 99},
		Thresholds: scoring.DefaultThresholds(),
	})

	res, err := svc.Analyze(context.Background(), wellOptimizedArticle())
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Scores.Overall, 100.0)
}

// reading time is part of the metrics envelope, not the score
func TestService_Analyze_Metrics(t *testing.T) {
	svc := testService(nil)

	res, err := svc.Analyze(context.Background(), wellOptimizedArticle())
	require.NoError(t, err)

	assert.Greater(t, res.Metrics.TextMetrics.SentenceCount, 0)
	assert.Greater(t, res.Metrics.ReadabilityScores.ReadingTimeMinutes, 0)
	assert.NotEmpty(t, res.Metrics.ReadabilityScores.TargetAudience)
	assert.GreaterOrEqual(t, res.ProcessingTime, int64(0))
}
