package scoring

import (
	"regexp"
	"strings"

	"github.com/seoscope/seoscope/pkg/domain"
)

// UXScores holds the user-experience sub-scores, each 0-100
type UXScores struct {
	Engagement   float64
	Visual       float64
	Scannability float64
	ImageCount   int
}

var directAddressRe = regexp.MustCompile(`(?i)\byour?\b`)

// call-to-action phrases counted as engagement signals
var ctaPhrases = []string{
	"learn more", "sign up", "subscribe", "download", "get started",
	"find out", "check out", "read on", "try it", "discover",
}

// ExperienceScorer grades engagement signals, visual-content ratio and
// scannability of the article body.
type ExperienceScorer struct {
	thresholds Thresholds
}

// NewExperienceScorer creates a user-experience scorer
func NewExperienceScorer(thresholds Thresholds) *ExperienceScorer {
	return &ExperienceScorer{thresholds: thresholds}
}

// Score grades the content. Raw is the original markup, plain the stripped
// text.
func (s *ExperienceScorer) Score(raw, plain string, md domain.SEOMetadata, tm domain.TextMetrics) UXScores {
	images := countImages(raw)
	return UXScores{
		Engagement:   s.engagementScore(plain),
		Visual:       s.visualScore(images, md, tm.WordCount),
		Scannability: s.scannabilityScore(raw, tm),
		ImageCount:   images,
	}
}

// engagementScore counts questions, direct address and call-to-action
// phrasing. Heuristic pattern counts, capped at 100.
func (s *ExperienceScorer) engagementScore(plain string) float64 {
	if strings.TrimSpace(plain) == "" {
		return 0
	}

	questions := strings.Count(plain, "?")
	direct := len(directAddressRe.FindAllString(plain, -1))
	if direct > 10 {
		direct = 10
	}

	lower := strings.ToLower(plain)
	ctas := 0
	for _, p := range ctaPhrases {
		ctas += strings.Count(lower, p)
	}
	if ctas > 3 {
		ctas = 3
	}

	return clamp(float64(questions)*15+float64(direct)*5+float64(ctas)*20, 0, 100)
}

// visualScore combines the words-per-image ratio (70%) with hero-image alt
// text quality (30%). Alt text carrying the focus keyword earns full alt
// credit; image-alt optimization lives in this category.
func (s *ExperienceScorer) visualScore(images int, md domain.SEOMetadata, words int) float64 {
	base := 0.0
	switch {
	case images > 0:
		perImage := words / images
		switch {
		case perImage >= s.thresholds.WordsPerImageMin && perImage <= s.thresholds.WordsPerImageMax:
			base = 100
		case perImage < s.thresholds.WordsPerImageMin:
			base = 60 // image-heavy
		case perImage <= s.thresholds.WordsPerImageMax*2:
			base = 60
		default:
			base = 30
		}
	case words < 300:
		base = 50 // short content can stand without imagery
	default:
		base = 0
	}

	alt := 0.0
	switch {
	case containsFold(md.HeroImageAlt, md.FocusKeyword):
		alt = 100
	case strings.TrimSpace(md.HeroImageAlt) != "":
		alt = 50
	}

	return clamp(base*0.7+alt*0.3, 0, 100)
}

// scannabilityScore measures structural breaks (headings, list items, bold
// spans) against paragraph count. Long content with no breaks scores zero.
func (s *ExperienceScorer) scannabilityScore(raw string, tm domain.TextMetrics) float64 {
	if tm.ParagraphCount == 0 {
		return 0
	}

	structural := len(headings(raw)) + countListItems(raw) + countBold(raw)
	if structural == 0 {
		if tm.WordCount > 300 {
			return 0
		}
		return 30
	}

	ratio := float64(structural) / float64(tm.ParagraphCount)
	switch {
	case ratio >= 0.75:
		return 100
	case ratio >= 0.5:
		return 80
	case ratio >= 0.25:
		return 60
	default:
		return 40
	}
}
