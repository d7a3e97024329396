// Package scoring computes the keyword, technical and user-experience
// sub-scores and rolls all thirteen breakdown entries into the weighted
// category scores and the overall 0-100 score.
package scoring

// category budgets, summing to 100
const (
	BudgetContentQuality      = 35.0
	BudgetKeywordOptimization = 30.0
	BudgetTechnicalSEO        = 20.0
	BudgetUserExperience      = 15.0
)

// Weights maps each breakdown sub-score to its share of the category
// budget. Weights within a category sum to that category's budget, so a
// sub-score of 100 contributes its full weight.
type Weights struct {
	Readability         float64 `yaml:"readability" json:"readability"`
	ContentLength       float64 `yaml:"content_length" json:"content_length"`
	ParagraphStructure  float64 `yaml:"paragraph_structure" json:"paragraph_structure"`
	SentenceComplexity  float64 `yaml:"sentence_complexity" json:"sentence_complexity"`
	KeywordDensity      float64 `yaml:"keyword_density" json:"keyword_density"`
	KeywordDistribution float64 `yaml:"keyword_distribution" json:"keyword_distribution"`
	LSIKeywords         float64 `yaml:"lsi_keywords" json:"lsi_keywords"`
	TitleOptimization   float64 `yaml:"title_optimization" json:"title_optimization"`
	MetaDescription     float64 `yaml:"meta_description" json:"meta_description"`
	URLStructure        float64 `yaml:"url_structure" json:"url_structure"`
	ContentEngagement   float64 `yaml:"content_engagement" json:"content_engagement"`
	VisualContent       float64 `yaml:"visual_content" json:"visual_content"`
	ContentScannability float64 `yaml:"content_scannability" json:"content_scannability"`
}

// DefaultWeights returns the stock weight table
func DefaultWeights() Weights {
	return Weights{
		Readability:         10,
		ContentLength:       10,
		ParagraphStructure:  8,
		SentenceComplexity:  7,
		KeywordDensity:      12,
		KeywordDistribution: 10,
		LSIKeywords:         8,
		TitleOptimization:   8,
		MetaDescription:     7,
		URLStructure:        5,
		ContentEngagement:   5,
		VisualContent:       5,
		ContentScannability: 5,
	}
}

// Validate checks that per-category weights sum to their budgets
func (w Weights) Validate() bool {
	eq := func(a, b float64) bool { d := a - b; return d > -0.001 && d < 0.001 }
	return eq(w.Readability+w.ContentLength+w.ParagraphStructure+w.SentenceComplexity, BudgetContentQuality) &&
		eq(w.KeywordDensity+w.KeywordDistribution+w.LSIKeywords, BudgetKeywordOptimization) &&
		eq(w.TitleOptimization+w.MetaDescription+w.URLStructure, BudgetTechnicalSEO) &&
		eq(w.ContentEngagement+w.VisualContent+w.ContentScannability, BudgetUserExperience)
}

// Thresholds holds the documented scoring bands. These are the product
// contract; finer weight tuning happens in Weights.
type Thresholds struct {
	DensityMin       float64 `yaml:"density_min" json:"density_min"`             // percent
	DensityMax       float64 `yaml:"density_max" json:"density_max"`             // percent
	TitleMinLen      int     `yaml:"title_min_len" json:"title_min_len"`         // characters
	TitleMaxLen      int     `yaml:"title_max_len" json:"title_max_len"`         // characters
	MetaMinLen       int     `yaml:"meta_min_len" json:"meta_min_len"`           // characters
	MetaMaxLen       int     `yaml:"meta_max_len" json:"meta_max_len"`           // characters
	TargetWordCount  int     `yaml:"target_word_count" json:"target_word_count"` // full marks at or above
	WordsPerImageMin int     `yaml:"words_per_image_min" json:"words_per_image_min"`
	WordsPerImageMax int     `yaml:"words_per_image_max" json:"words_per_image_max"`
	ProximityWindow  int     `yaml:"proximity_window" json:"proximity_window"` // words, for LSI co-occurrence
}

// DefaultThresholds returns the documented bands: 0.5-2.5% density,
// 30-60 char titles, 120-160 char meta descriptions.
func DefaultThresholds() Thresholds {
	return Thresholds{
		DensityMin:       0.5,
		DensityMax:       2.5,
		TitleMinLen:      30,
		TitleMaxLen:      60,
		MetaMinLen:       120,
		MetaMaxLen:       160,
		TargetWordCount:  600,
		WordsPerImageMin: 150,
		WordsPerImageMax: 600,
		ProximityWindow:  30,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
