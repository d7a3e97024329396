package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seoscope/seoscope/pkg/domain"
)

func TestWeights_Validate(t *testing.T) {
	assert.True(t, DefaultWeights().Validate())

	w := DefaultWeights()
	w.Readability = 20 // breaks the content-quality budget
	assert.False(t, w.Validate())
}

func TestAggregator_Aggregate_PerfectBreakdown(t *testing.T) {
	a := NewAggregator(DefaultWeights())

	b := domain.ScoreBreakdown{
		Readability: 100, ContentLength: 100, ParagraphStructure: 100, SentenceComplexity: 100,
		KeywordDensity: 100, KeywordDistribution: 100, LSIKeywords: 100,
		TitleOptimization: 100, MetaDescription: 100, URLStructure: 100,
		ContentEngagement: 100, VisualContent: 100, ContentScannability: 100,
	}
	scores := a.Aggregate(b)

	assert.InDelta(t, BudgetContentQuality, scores.ContentQuality, 0.001)
	assert.InDelta(t, BudgetKeywordOptimization, scores.KeywordOptimization, 0.001)
	assert.InDelta(t, BudgetTechnicalSEO, scores.TechnicalSEO, 0.001)
	assert.InDelta(t, BudgetUserExperience, scores.UserExperience, 0.001)
	assert.InDelta(t, 100, scores.Overall, 0.001)
}

func TestAggregator_Aggregate_ZeroBreakdown(t *testing.T) {
	a := NewAggregator(DefaultWeights())

	scores := a.Aggregate(domain.ScoreBreakdown{})
	assert.Zero(t, scores.Overall)
	assert.Zero(t, scores.ContentQuality)
	assert.Zero(t, scores.KeywordOptimization)
	assert.Zero(t, scores.TechnicalSEO)
	assert.Zero(t, scores.UserExperience)
}

func TestAggregator_Aggregate_Bounds(t *testing.T) {
	a := NewAggregator(DefaultWeights())

	// sweep a few mixed breakdowns and confirm category budgets hold
	for _, v := range []float64{0, 13, 47.5, 85, 100} {
		b := domain.ScoreBreakdown{
			Readability: v, ContentLength: 100 - v, ParagraphStructure: v, SentenceComplexity: v,
			KeywordDensity: v, KeywordDistribution: 100 - v, LSIKeywords: v,
			TitleOptimization: v, MetaDescription: v, URLStructure: 100 - v,
			ContentEngagement: v, VisualContent: v, ContentScannability: v,
		}
		scores := a.Aggregate(b)
		assert.GreaterOrEqual(t, scores.Overall, 0.0)
		assert.LessOrEqual(t, scores.Overall, 100.0)
		assert.LessOrEqual(t, scores.ContentQuality, BudgetContentQuality)
		assert.LessOrEqual(t, scores.KeywordOptimization, BudgetKeywordOptimization)
		assert.LessOrEqual(t, scores.TechnicalSEO, BudgetTechnicalSEO)
		assert.LessOrEqual(t, scores.UserExperience, BudgetUserExperience)
	}
}

func TestNewAggregator_InvalidWeightsFallBack(t *testing.T) {
	w := Weights{Readability: 1} // nowhere near the budgets
	a := NewAggregator(w)
	assert.Equal(t, DefaultWeights(), a.Weights())
}

func TestContentScorer_Score(t *testing.T) {
	s := NewContentScorer(DefaultThresholds())

	rs := domain.ReadabilityScores{FleschReadingEase: 70}
	tm := domain.TextMetrics{WordCount: 800, SentenceCount: 50, ParagraphCount: 10, AverageSentenceLength: 16}
	res := s.Score(tm, rs)

	assert.Equal(t, 100.0, res.Readability)
	assert.Equal(t, 100.0, res.Length)
	assert.Equal(t, 100.0, res.Paragraphs) // 80 words per paragraph
	assert.Equal(t, 100.0, res.Sentences)

	// empty content zeroes everything
	res = s.Score(domain.TextMetrics{}, domain.ReadabilityScores{FleschReadingEase: 100})
	assert.Zero(t, res.Readability)
	assert.Zero(t, res.Length)
}

func TestContentScorer_ReadabilityDecay(t *testing.T) {
	s := NewContentScorer(DefaultThresholds())

	// further from the 60-80 band means a lower score
	assert.Greater(t, s.readabilityScore(55), s.readabilityScore(40))
	assert.Greater(t, s.readabilityScore(85), s.readabilityScore(95))
	assert.Equal(t, 100.0, s.readabilityScore(60))
	assert.Equal(t, 100.0, s.readabilityScore(80))
	assert.Equal(t, 20.0, s.readabilityScore(-40)) // floor
}

func TestContentScorer_SentenceScore(t *testing.T) {
	s := NewContentScorer(DefaultThresholds())

	tm := func(avg float64) domain.TextMetrics {
		return domain.TextMetrics{WordCount: 100, SentenceCount: 5, AverageSentenceLength: avg}
	}
	assert.Equal(t, 100.0, s.sentenceScore(tm(15)))
	assert.Equal(t, 75.0, s.sentenceScore(tm(23)))
	assert.Equal(t, 50.0, s.sentenceScore(tm(28)))
	assert.Equal(t, 25.0, s.sentenceScore(tm(40)))
}
