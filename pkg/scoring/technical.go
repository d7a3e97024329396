package scoring

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/seoscope/seoscope/pkg/domain"
)

// TechnicalScores holds the technical-SEO sub-scores, each 0-100
type TechnicalScores struct {
	Title float64
	Meta  float64
	URL   float64
}

var slugShapeRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// TechnicalScorer grades title, meta description and slug against the
// documented length bands and keyword presence. All checks are
// deterministic and local; no external calls.
type TechnicalScorer struct {
	thresholds Thresholds
}

// NewTechnicalScorer creates a technical scorer with the given bands
func NewTechnicalScorer(thresholds Thresholds) *TechnicalScorer {
	return &TechnicalScorer{thresholds: thresholds}
}

// Score grades the metadata bundle
func (s *TechnicalScorer) Score(md domain.SEOMetadata) TechnicalScores {
	return TechnicalScores{
		Title: s.titleScore(md.Title, md.FocusKeyword),
		Meta:  s.metaScore(md.MetaDescription, md.FocusKeyword),
		URL:   s.urlScore(md.Slug, md.FocusKeyword),
	}
}

// titleScore: keyword presence is worth 60, length inside 30-60 chars 40,
// with a small consolation for a present but mis-sized title
func (s *TechnicalScorer) titleScore(title, keyword string) float64 {
	title = strings.TrimSpace(title)
	if title == "" {
		return 0
	}

	score := 0.0
	if containsFold(title, keyword) {
		score += 60
	}
	n := utf8.RuneCountInString(title)
	switch {
	case n >= s.thresholds.TitleMinLen && n <= s.thresholds.TitleMaxLen:
		score += 40
	default:
		score += 15
	}
	return score
}

// metaScore: keyword presence 50, length inside 120-160 chars 50
func (s *TechnicalScorer) metaScore(meta, keyword string) float64 {
	meta = strings.TrimSpace(meta)
	if meta == "" {
		return 0
	}

	score := 0.0
	if containsFold(meta, keyword) {
		score += 50
	}
	n := utf8.RuneCountInString(meta)
	switch {
	case n >= s.thresholds.MetaMinLen && n <= s.thresholds.MetaMaxLen:
		score += 50
	default:
		score += 20
	}
	return score
}

// urlScore: hyphenated keyword in slug 60, clean lowercase-hyphen shape 40
func (s *TechnicalScorer) urlScore(slug, keyword string) float64 {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return 0
	}

	score := 0.0
	if keyword != "" {
		slugged := strings.Join(tokenize(keyword), "-")
		if slugged != "" && strings.Contains(strings.ToLower(slug), slugged) {
			score += 60
		}
	}
	if slugShapeRe.MatchString(slug) {
		score += 40
	}
	return score
}

// containsFold reports whether s contains substr case-insensitively; an
// empty substr never matches
func containsFold(s, substr string) bool {
	if substr == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
