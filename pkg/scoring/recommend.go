package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/seoscope/seoscope/pkg/domain"
)

// sub-score threshold below which a recommendation is emitted
const goodThreshold = 85

// Generator turns score deficits into prioritized recommendations
type Generator struct {
	weights    Weights
	thresholds Thresholds
}

// NewGenerator creates a recommendation generator
func NewGenerator(w Weights, t Thresholds) *Generator {
	if !w.Validate() {
		w = DefaultWeights()
	}
	return &Generator{weights: w, thresholds: t}
}

// entry describes one breakdown sub-score for recommendation purposes
type entry struct {
	name     string
	category string
	weight   float64
	score    float64
}

// Generate emits one recommendation per sub-score below the good
// threshold, sorted by priority then impact.
func (g *Generator) Generate(b domain.ScoreBreakdown, md domain.SEOMetadata, tm domain.TextMetrics) []domain.SEORecommendation {
	entries := []entry{
		{"readability", "content", g.weights.Readability, b.Readability},
		{"contentLength", "content", g.weights.ContentLength, b.ContentLength},
		{"paragraphStructure", "content", g.weights.ParagraphStructure, b.ParagraphStructure},
		{"sentenceComplexity", "content", g.weights.SentenceComplexity, b.SentenceComplexity},
		{"keywordDensity", "keywords", g.weights.KeywordDensity, b.KeywordDensity},
		{"keywordDistribution", "keywords", g.weights.KeywordDistribution, b.KeywordDistribution},
		{"lsiKeywords", "keywords", g.weights.LSIKeywords, b.LSIKeywords},
		{"titleOptimization", "technical", g.weights.TitleOptimization, b.TitleOptimization},
		{"metaDescription", "technical", g.weights.MetaDescription, b.MetaDescription},
		{"urlStructure", "technical", g.weights.URLStructure, b.URLStructure},
		{"contentEngagement", "experience", g.weights.ContentEngagement, b.ContentEngagement},
		{"visualContent", "experience", g.weights.VisualContent, b.VisualContent},
		{"contentScannability", "experience", g.weights.ContentScannability, b.ContentScannability},
	}

	recs := make([]domain.SEORecommendation, 0, len(entries))
	for _, e := range entries {
		if e.score >= goodThreshold {
			continue
		}
		rec := g.build(e, md, tm)
		recs = append(recs, rec)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		pi, pj := priorityRank(recs[i].Priority), priorityRank(recs[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return recs[i].ImpactScore > recs[j].ImpactScore
	})
	return recs
}

// build fills one recommendation from an underperforming entry
func (g *Generator) build(e entry, md domain.SEOMetadata, tm domain.TextMetrics) domain.SEORecommendation {
	priority := priorityForScore(e.score)
	rec := domain.SEORecommendation{
		Category:    e.category,
		Type:        typeForPriority(priority),
		Priority:    priority,
		ImpactScore: impactScore(e.weight, e.score),
	}
	g.describe(&rec, e, md, tm)
	return rec
}

// priorityForScore maps a sub-score to urgency
func priorityForScore(score float64) domain.RecommendationPriority {
	switch {
	case score < 40:
		return domain.PriorityCritical
	case score < 60:
		return domain.PriorityHigh
	case score < 75:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func typeForPriority(p domain.RecommendationPriority) domain.RecommendationType {
	switch p {
	case domain.PriorityCritical:
		return domain.RecommendationError
	case domain.PriorityHigh:
		return domain.RecommendationWarning
	case domain.PriorityMedium:
		return domain.RecommendationSuggestion
	default:
		return domain.RecommendationOptimization
	}
}

func priorityRank(p domain.RecommendationPriority) int {
	switch p {
	case domain.PriorityCritical:
		return 0
	case domain.PriorityHigh:
		return 1
	case domain.PriorityMedium:
		return 2
	default:
		return 3
	}
}

// impactScore is proportional to category weight times the score deficit,
// capped at 10
func impactScore(weight, score float64) float64 {
	v := weight * (100 - score) / 100
	if v > 10 {
		v = 10
	}
	return math.Round(v*10) / 10
}

// describe fills the human-readable fields for one entry
func (g *Generator) describe(rec *domain.SEORecommendation, e entry, md domain.SEOMetadata, tm domain.TextMetrics) {
	t := g.thresholds
	switch e.name {
	case "readability":
		rec.Title = "Improve readability"
		rec.Description = "The reading-ease score is outside the comfortable range for web content."
		rec.Suggestion = "Shorten sentences and prefer common words to bring reading ease toward 60-80."
	case "contentLength":
		rec.Title = "Expand the content"
		rec.Description = fmt.Sprintf("The article has %d words, below the target length.", tm.WordCount)
		rec.Suggestion = "Cover the topic in more depth; longer articles tend to rank better."
		rec.CurrentValue = fmt.Sprintf("%d words", tm.WordCount)
		rec.TargetValue = fmt.Sprintf("%d+ words", t.TargetWordCount)
	case "paragraphStructure":
		rec.Title = "Rebalance paragraphs"
		rec.Description = "Paragraphs are too long or too fragmented for comfortable reading."
		rec.Suggestion = "Aim for 40-150 words per paragraph."
	case "sentenceComplexity":
		rec.Title = "Shorten sentences"
		rec.Description = fmt.Sprintf("Sentences average %.1f words.", tm.AverageSentenceLength)
		rec.Suggestion = "Keep average sentence length under 20 words."
		rec.CurrentValue = fmt.Sprintf("%.1f words/sentence", tm.AverageSentenceLength)
		rec.TargetValue = "under 20 words/sentence"
	case "keywordDensity":
		if strings.TrimSpace(md.FocusKeyword) == "" {
			rec.Title = "Missing focus keyword"
			rec.Description = "No focus keyword is set, so keyword optimization cannot be scored."
			rec.Suggestion = "Choose a focus keyword that matches the search intent of the article."
			return
		}
		rec.Title = "Adjust keyword density"
		rec.Description = fmt.Sprintf("Density of %q is outside the %.1f%%-%.1f%% band.", md.FocusKeyword, t.DensityMin, t.DensityMax)
		rec.Suggestion = "Use the focus keyword naturally throughout the body until density lands in the band."
		rec.TargetValue = fmt.Sprintf("%.1f%%-%.1f%%", t.DensityMin, t.DensityMax)
	case "keywordDistribution":
		rec.Title = "Spread the keyword"
		rec.Description = "The focus keyword does not appear across introduction, body headings and conclusion."
		rec.Suggestion = "Mention the keyword early, in at least one heading, and in the closing section."
	case "lsiKeywords":
		rec.Title = "Add related terms"
		rec.Description = "Few related terms appear near the focus keyword."
		rec.Suggestion = "Weave secondary keywords and close variants into the sections that discuss the focus keyword."
	case "titleOptimization":
		rec.Title = "Optimize the title"
		rec.Description = fmt.Sprintf("The title is %d characters and should carry the focus keyword.", utf8.RuneCountInString(md.Title))
		rec.Suggestion = fmt.Sprintf("Include the focus keyword and keep the title between %d and %d characters.", t.TitleMinLen, t.TitleMaxLen)
		rec.CurrentValue = fmt.Sprintf("%d characters", utf8.RuneCountInString(md.Title))
		rec.TargetValue = fmt.Sprintf("%d-%d characters", t.TitleMinLen, t.TitleMaxLen)
	case "metaDescription":
		rec.Title = "Improve the meta description"
		rec.Description = fmt.Sprintf("The meta description is %d characters and should carry the focus keyword.", utf8.RuneCountInString(md.MetaDescription))
		rec.Suggestion = fmt.Sprintf("Write a %d-%d character description that includes the focus keyword.", t.MetaMinLen, t.MetaMaxLen)
		rec.CurrentValue = fmt.Sprintf("%d characters", utf8.RuneCountInString(md.MetaDescription))
		rec.TargetValue = fmt.Sprintf("%d-%d characters", t.MetaMinLen, t.MetaMaxLen)
	case "urlStructure":
		rec.Title = "Clean up the URL slug"
		rec.Description = "The slug should be lowercase, hyphenated and contain the focus keyword."
		rec.Suggestion = "Rewrite the slug as hyphen-separated lowercase words including the keyword."
		rec.CurrentValue = md.Slug
	case "contentEngagement":
		rec.Title = "Increase engagement"
		rec.Description = "The content has few engagement signals such as questions or direct address."
		rec.Suggestion = "Ask the reader questions, address them directly, and close with a call to action."
	case "visualContent":
		rec.Title = "Add visual content"
		rec.Description = "The image-to-text ratio is low or image alt text lacks the focus keyword."
		rec.Suggestion = "Add an image roughly every 300-500 words with descriptive, keyword-aware alt text."
	case "contentScannability":
		rec.Title = "Make content scannable"
		rec.Description = "Long stretches of text lack headings, lists or emphasis."
		rec.Suggestion = "Break the content up with subheadings, bullet lists and bolded key phrases."
	}
}
