package scoring

import (
	"github.com/seoscope/seoscope/pkg/domain"
)

// ContentScores holds the content-quality sub-scores, each 0-100
type ContentScores struct {
	Readability float64
	Length      float64
	Paragraphs  float64
	Sentences   float64
}

// ContentScorer grades content quality from text metrics and the
// readability profile.
type ContentScorer struct {
	thresholds Thresholds
}

// NewContentScorer creates a content-quality scorer
func NewContentScorer(thresholds Thresholds) *ContentScorer {
	return &ContentScorer{thresholds: thresholds}
}

// Score grades the extracted metrics. Empty content zeroes every sub-score.
func (s *ContentScorer) Score(tm domain.TextMetrics, rs domain.ReadabilityScores) ContentScores {
	if tm.WordCount == 0 {
		return ContentScores{}
	}
	return ContentScores{
		Readability: s.readabilityScore(rs.FleschReadingEase),
		Length:      s.lengthScore(tm.WordCount),
		Paragraphs:  s.paragraphScore(tm),
		Sentences:   s.sentenceScore(tm),
	}
}

// readabilityScore peaks for reading ease 60-80 and decays with distance
// from that band
func (s *ContentScorer) readabilityScore(ease float64) float64 {
	var dist float64
	switch {
	case ease >= 60 && ease <= 80:
		return 100
	case ease < 60:
		dist = 60 - ease
	default:
		dist = ease - 80
	}
	return clamp(100-dist*1.5, 20, 100)
}

// lengthScore scales linearly up to the target word count
func (s *ContentScorer) lengthScore(words int) float64 {
	target := s.thresholds.TargetWordCount
	if words >= target {
		return 100
	}
	return float64(words) / float64(target) * 100
}

// paragraphScore grades average paragraph size; 40-150 words per paragraph
// reads comfortably
func (s *ContentScorer) paragraphScore(tm domain.TextMetrics) float64 {
	if tm.ParagraphCount == 0 {
		return 0
	}
	avg := float64(tm.WordCount) / float64(tm.ParagraphCount)
	switch {
	case avg >= 40 && avg <= 150:
		return 100
	case avg < 40:
		return 70
	case avg <= 250:
		return 60
	default:
		return 30
	}
}

// sentenceScore penalizes long average sentence length
func (s *ContentScorer) sentenceScore(tm domain.TextMetrics) float64 {
	if tm.SentenceCount == 0 {
		return 0
	}
	switch avg := tm.AverageSentenceLength; {
	case avg <= 20:
		return 100
	case avg <= 25:
		return 75
	case avg <= 30:
		return 50
	default:
		return 25
	}
}
