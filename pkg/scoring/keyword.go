package scoring

import (
	"strings"

	"github.com/seoscope/seoscope/pkg/domain"
)

// KeywordScores holds the keyword-category sub-scores, each 0-100
type KeywordScores struct {
	Density      float64
	Distribution float64
	LSI          float64
	DensityPct   float64 // measured density, percent
	Occurrences  int
}

// KeywordAnalyzer scores focus-keyword usage: density against the target
// band, spread across intro/body/conclusion, and lexical co-occurrence of
// related terms.
type KeywordAnalyzer struct {
	thresholds Thresholds
}

// NewKeywordAnalyzer creates a keyword analyzer with the given bands
func NewKeywordAnalyzer(thresholds Thresholds) *KeywordAnalyzer {
	return &KeywordAnalyzer{thresholds: thresholds}
}

// Analyze scores keyword usage. Raw is the original content (used for
// heading detection), plain the stripped text. An empty focus keyword
// zeroes the whole category.
func (a *KeywordAnalyzer) Analyze(raw, plain string, md domain.SEOMetadata) KeywordScores {
	keyword := strings.TrimSpace(md.FocusKeyword)
	if keyword == "" {
		return KeywordScores{}
	}

	tokens := tokenize(plain)
	phrase := tokenize(keyword)
	if len(tokens) == 0 || len(phrase) == 0 {
		return KeywordScores{}
	}

	positions := phrasePositions(tokens, phrase)
	density := float64(len(positions)) / float64(len(tokens)) * 100

	return KeywordScores{
		Density:      a.densityScore(density),
		Distribution: a.distributionScore(raw, tokens, phrase, positions, keyword),
		LSI:          a.lsiScore(tokens, phrase, positions, md.SecondaryKeywords),
		DensityPct:   density,
		Occurrences:  len(positions),
	}
}

// densityScore peaks inside the target band and decays monotonically
// moving away from it
func (a *KeywordAnalyzer) densityScore(density float64) float64 {
	lo, hi := a.thresholds.DensityMin, a.thresholds.DensityMax
	switch {
	case density == 0:
		return 0
	case density < lo:
		return clamp(density/lo*100, 0, 100)
	case density <= hi:
		return 100
	default:
		// over-optimization penalty, 40 points per percent over the band
		return clamp(100-(density-hi)*40, 0, 100)
	}
}

// distributionScore checks keyword presence in the first 10% of the text,
// the last 20%, and at least one heading. Full marks require all three.
func (a *KeywordAnalyzer) distributionScore(raw string, tokens, phrase []string, positions []int, keyword string) float64 {
	if len(positions) == 0 {
		return 0
	}

	introEnd := len(tokens) / 10
	conclStart := len(tokens) * 8 / 10

	score := 0.0
	for _, p := range positions {
		if p <= introEnd {
			score += 40
			break
		}
	}
	for _, p := range positions {
		if p+len(phrase) > conclStart {
			score += 30
			break
		}
	}

	kwLower := strings.ToLower(keyword)
	for _, h := range headings(raw) {
		if strings.Contains(strings.ToLower(h), kwLower) {
			score += 30
			break
		}
	}
	return score
}

// lsiScore measures lexical co-occurrence: the share of related terms that
// appear within the proximity window of a keyword occurrence. Related terms
// are the supplied secondary keywords, falling back to the focus keyword's
// own significant tokens.
func (a *KeywordAnalyzer) lsiScore(tokens, phrase []string, positions []int, secondary []string) float64 {
	if len(positions) == 0 {
		return 0
	}

	var related [][]string
	for _, s := range secondary {
		if terms := tokenize(s); len(terms) > 0 {
			related = append(related, terms)
		}
	}
	if len(related) == 0 {
		for _, tok := range phrase {
			if len(tok) >= 4 {
				related = append(related, []string{tok})
			}
		}
	}
	if len(related) == 0 {
		return 0
	}

	window := a.thresholds.ProximityWindow
	covered := 0
	for _, term := range related {
		if a.nearKeyword(tokens, term, positions, window) {
			covered++
		}
	}
	return float64(covered) / float64(len(related)) * 100
}

// nearKeyword reports whether term occurs within window words of any
// keyword position
func (a *KeywordAnalyzer) nearKeyword(tokens, term []string, positions []int, window int) bool {
	for _, occ := range phrasePositions(tokens, term) {
		for _, p := range positions {
			d := occ - p
			if d < 0 {
				d = -d
			}
			if d <= window {
				return true
			}
		}
	}
	return false
}
