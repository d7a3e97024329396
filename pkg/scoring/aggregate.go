package scoring

import (
	"github.com/seoscope/seoscope/pkg/domain"
)

// Aggregator rolls the thirteen breakdown sub-scores into the four weighted
// category scores and the overall score.
type Aggregator struct {
	weights Weights
}

// NewAggregator creates an aggregator. Invalid weight tables fall back to
// the defaults.
func NewAggregator(w Weights) *Aggregator {
	if !w.Validate() {
		w = DefaultWeights()
	}
	return &Aggregator{weights: w}
}

// Weights returns the active weight table
func (a *Aggregator) Weights() Weights { return a.weights }

// Aggregate computes the category scores and the overall 0-100 score. Each
// category is clamped into its budget before summing.
func (a *Aggregator) Aggregate(b domain.ScoreBreakdown) domain.SEOScores {
	w := a.weights

	contentQuality := clamp(
		b.Readability*w.Readability/100+
			b.ContentLength*w.ContentLength/100+
			b.ParagraphStructure*w.ParagraphStructure/100+
			b.SentenceComplexity*w.SentenceComplexity/100,
		0, BudgetContentQuality)

	keywordOpt := clamp(
		b.KeywordDensity*w.KeywordDensity/100+
			b.KeywordDistribution*w.KeywordDistribution/100+
			b.LSIKeywords*w.LSIKeywords/100,
		0, BudgetKeywordOptimization)

	technical := clamp(
		b.TitleOptimization*w.TitleOptimization/100+
			b.MetaDescription*w.MetaDescription/100+
			b.URLStructure*w.URLStructure/100,
		0, BudgetTechnicalSEO)

	experience := clamp(
		b.ContentEngagement*w.ContentEngagement/100+
			b.VisualContent*w.VisualContent/100+
			b.ContentScannability*w.ContentScannability/100,
		0, BudgetUserExperience)

	return domain.SEOScores{
		Overall:             clamp(contentQuality+keywordOpt+technical+experience, 0, 100),
		ContentQuality:      contentQuality,
		KeywordOptimization: keywordOpt,
		TechnicalSEO:        technical,
		UserExperience:      experience,
		Breakdown:           b,
	}
}
