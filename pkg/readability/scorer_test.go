package readability

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/seoscope/seoscope/pkg/domain"
	"github.com/seoscope/seoscope/pkg/metrics"
)

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"hello", 2},
		{"beautiful", 3},
		{"education", 4},
		{"rhythm", 1},
		{"table", 2},
		{"make", 1},
		{"the", 1},
		{"", 0},
		{"a", 1},
		{"...", 0},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, CountSyllables(tt.word))
		})
	}
}

func TestScorer_Score(t *testing.T) {
	e := metrics.NewExtractor()
	s := NewScorer(0)

	text := "The cat sat on the mat. The dog ran to the park. We like short words and short lines."
	m := e.Extract(text)
	res := s.Score(text, m)

	// simple monosyllabic prose scores very easy and low grade
	assert.Greater(t, res.FleschReadingEase, 80.0)
	assert.Less(t, res.FleschKincaidGrade, 4.0)
	assert.Equal(t, "general audience", res.TargetAudience)
	assert.Equal(t, 1, res.ReadingTimeMinutes)
	assert.Empty(t, res.Recommendations)
}

func TestScorer_Score_ComplexText(t *testing.T) {
	e := metrics.NewExtractor()
	s := NewScorer(0)

	text := "Notwithstanding considerable organizational heterogeneity, comprehensive institutional transformation necessitates extraordinarily deliberate administrative coordination throughout interdependent operational hierarchies and continuously evolving infrastructural configurations."
	m := e.Extract(text)
	res := s.Score(text, m)

	assert.Less(t, res.FleschReadingEase, 30.0)
	assert.Greater(t, res.FleschKincaidGrade, 13.0)
	assert.Equal(t, "professional", res.TargetAudience)
	assert.NotEmpty(t, res.Recommendations)
	assert.Greater(t, res.GunningFogIndex, 12.0)
	assert.Greater(t, res.SMOGIndex, 10.0)
}

func TestScorer_Score_EmptyInput(t *testing.T) {
	s := NewScorer(0)

	res := s.Score("", domain.TextMetrics{})
	assert.Equal(t, 100.0, res.FleschReadingEase)
	assert.Equal(t, 0.0, res.FleschKincaidGrade)
	assert.Equal(t, 1, res.ReadingTimeMinutes)
	assert.Equal(t, "general audience", res.TargetAudience)
}

func TestScorer_Score_ReadingTime(t *testing.T) {
	e := metrics.NewExtractor()
	s := NewScorer(225)

	// 450 words is exactly two minutes at 225 wpm
	text := strings.Repeat("word ", 449) + "end."
	m := e.Extract(text)
	res := s.Score(text, m)
	assert.Equal(t, 2, res.ReadingTimeMinutes)

	// 451 words rounds up to three
	text = strings.Repeat("word ", 450) + "end."
	m = e.Extract(text)
	res = s.Score(text, m)
	assert.Equal(t, 3, res.ReadingTimeMinutes)
}
