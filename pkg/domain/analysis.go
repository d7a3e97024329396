package domain

import "time"

// SEOMetadata is the editable metadata bundle for one article, captured as an
// immutable snapshot per analysis call.
type SEOMetadata struct {
	Title             string   `json:"title"`
	MetaDescription   string   `json:"metaDescription"`
	Slug              string   `json:"slug"`
	FocusKeyword      string   `json:"focusKeyword"`
	SecondaryKeywords []string `json:"secondaryKeywords,omitempty"`
	HeroImageURL      string   `json:"heroImageUrl,omitempty"`
	HeroImageAlt      string   `json:"heroImageAlt,omitempty"`
}

// TextMetrics holds counts derived from the article body
type TextMetrics struct {
	WordCount             int     `json:"wordCount"`
	SentenceCount         int     `json:"sentenceCount"`
	ParagraphCount        int     `json:"paragraphCount"`
	AverageSentenceLength float64 `json:"averageSentenceLength"`
}

// ReadabilityScores is the readability profile of the article body
type ReadabilityScores struct {
	FleschReadingEase  float64  `json:"fleschReadingEase"`
	FleschKincaidGrade float64  `json:"fleschKincaidGrade"`
	GunningFogIndex    float64  `json:"gunningFogIndex"`
	SMOGIndex          float64  `json:"smogIndex"`
	ReadingTimeMinutes int      `json:"readingTimeMinutes"`
	TargetAudience     string   `json:"targetAudience"`
	Recommendations    []string `json:"recommendations"`
}

// ScoreBreakdown holds the 13 named sub-scores, each 0-100, that roll up
// into the four weighted categories.
type ScoreBreakdown struct {
	Readability         float64 `json:"readability"`
	ContentLength       float64 `json:"contentLength"`
	ParagraphStructure  float64 `json:"paragraphStructure"`
	SentenceComplexity  float64 `json:"sentenceComplexity"`
	KeywordDensity      float64 `json:"keywordDensity"`
	KeywordDistribution float64 `json:"keywordDistribution"`
	LSIKeywords         float64 `json:"lsiKeywords"`
	TitleOptimization   float64 `json:"titleOptimization"`
	MetaDescription     float64 `json:"metaDescription"`
	URLStructure        float64 `json:"urlStructure"`
	ContentEngagement   float64 `json:"contentEngagement"`
	VisualContent       float64 `json:"visualContent"`
	ContentScannability float64 `json:"contentScannability"`
}

// SEOScores is the aggregate scoring result. Overall is the sum of the four
// category scores, each clamped into its budget (35/30/20/15).
type SEOScores struct {
	Overall             float64        `json:"overall"`
	ContentQuality      float64        `json:"contentQuality"`
	KeywordOptimization float64        `json:"keywordOptimization"`
	TechnicalSEO        float64        `json:"technicalSEO"`
	UserExperience      float64        `json:"userExperience"`
	Breakdown           ScoreBreakdown `json:"breakdown"`
}

// RecommendationType classifies a recommendation
type RecommendationType string

// recommendation types
const (
	RecommendationError        RecommendationType = "error"
	RecommendationWarning      RecommendationType = "warning"
	RecommendationSuggestion   RecommendationType = "suggestion"
	RecommendationOptimization RecommendationType = "optimization"
)

// RecommendationPriority orders recommendations by urgency
type RecommendationPriority string

// recommendation priorities, most urgent first
const (
	PriorityCritical RecommendationPriority = "critical"
	PriorityHigh     RecommendationPriority = "high"
	PriorityMedium   RecommendationPriority = "medium"
	PriorityLow      RecommendationPriority = "low"
)

// SEORecommendation is one actionable finding generated from a score deficit
type SEORecommendation struct {
	Category     string                 `json:"category"`
	Type         RecommendationType     `json:"type"`
	Priority     RecommendationPriority `json:"priority"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Suggestion   string                 `json:"suggestion"`
	CurrentValue string                 `json:"currentValue,omitempty"`
	TargetValue  string                 `json:"targetValue,omitempty"`
	ImpactScore  float64                `json:"impactScore"`
}

// AnalysisMetrics bundles the derived metrics returned with an analysis
type AnalysisMetrics struct {
	TextMetrics       TextMetrics       `json:"textMetrics"`
	ReadabilityScores ReadabilityScores `json:"readabilityScores"`
}

// AnalysisRequest is the input to one analysis call
type AnalysisRequest struct {
	Content      string      `json:"content"`
	Metadata     SEOMetadata `json:"metadata"`
	ArticleID    string      `json:"articleId,omitempty"`
	ForceRefresh bool        `json:"forceRefresh,omitempty"`
}

// AnalysisResult is the envelope returned by the analysis service
type AnalysisResult struct {
	Scores          SEOScores           `json:"scores"`
	Recommendations []SEORecommendation `json:"recommendations"`
	Metrics         AnalysisMetrics     `json:"metrics"`
	ContentHash     string              `json:"contentHash"`
	ProcessingTime  int64               `json:"processingTime"` // milliseconds, 0 on cache hit
	FromCache       bool                `json:"fromCache"`
}

// AnalysisRecord is one persisted analysis snapshot, kept for trend display
type AnalysisRecord struct {
	ID                  string    `json:"id"`
	ArticleID           string    `json:"articleId"`
	ContentHash         string    `json:"contentHash"`
	Overall             float64   `json:"overall"`
	ContentQuality      float64   `json:"contentQuality"`
	KeywordOptimization float64   `json:"keywordOptimization"`
	TechnicalSEO        float64   `json:"technicalSEO"`
	UserExperience      float64   `json:"userExperience"`
	WordCount           int       `json:"wordCount"`
	Recommendations     int       `json:"recommendations"`
	CreatedAt           time.Time `json:"createdAt"`
}
