package scoring

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seoscope/seoscope/pkg/domain"
)

func TestKeywordAnalyzer_Density(t *testing.T) {
	a := NewKeywordAnalyzer(DefaultThresholds())

	tests := []struct {
		name    string
		density float64
		want    float64
	}{
		{"zero", 0, 0},
		{"below band", 0.25, 50},
		{"band lower edge", 0.5, 100},
		{"inside band", 1.5, 100},
		{"band upper edge", 2.5, 100},
		{"slightly over", 3.0, 80},
		{"heavily stuffed", 5.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, a.densityScore(tt.density), 0.001)
		})
	}
}

func TestKeywordAnalyzer_Density_Monotonic(t *testing.T) {
	a := NewKeywordAnalyzer(DefaultThresholds())

	// decay away from the band is monotone on both sides
	prev := a.densityScore(0.5)
	for d := 0.4; d >= 0.1; d -= 0.1 {
		cur := a.densityScore(d)
		assert.LessOrEqual(t, cur, prev, "density %.1f", d)
		prev = cur
	}
	prev = a.densityScore(2.5)
	for d := 2.6; d <= 6.0; d += 0.5 {
		cur := a.densityScore(d)
		assert.LessOrEqual(t, cur, prev, "density %.1f", d)
		prev = cur
	}
}

func TestKeywordAnalyzer_Analyze(t *testing.T) {
	a := NewKeywordAnalyzer(DefaultThresholds())

	// keyword in intro, a heading, and the conclusion
	var b strings.Builder
	b.WriteString("<p>Travel credit cards are the fastest way to earn free flights. ")
	b.WriteString(strings.Repeat("Points add up with every purchase you make during the year. ", 8))
	b.WriteString("</p><h2>Choosing travel credit cards</h2><p>")
	b.WriteString(strings.Repeat("Compare annual fees and rewards before you decide on a card. ", 8))
	b.WriteString("In the end the best travel credit cards reward the spending you already do.</p>")
	raw := b.String()
	plain := strings.NewReplacer("<p>", "", "</p>", "\n\n", "<h2>", "", "</h2>", "\n\n").Replace(raw)

	md := domain.SEOMetadata{FocusKeyword: "travel credit cards"}
	res := a.Analyze(raw, plain, md)

	assert.Greater(t, res.Occurrences, 0)
	assert.Equal(t, 100.0, res.Distribution, "intro, heading and conclusion all covered")
	assert.Greater(t, res.LSI, 50.0, "keyword tokens recur near occurrences")
}

func TestKeywordAnalyzer_Analyze_EmptyKeyword(t *testing.T) {
	a := NewKeywordAnalyzer(DefaultThresholds())

	res := a.Analyze("<p>some content</p>", "some content", domain.SEOMetadata{})
	assert.Zero(t, res.Density)
	assert.Zero(t, res.Distribution)
	assert.Zero(t, res.LSI)
}

func TestKeywordAnalyzer_Analyze_SecondaryKeywords(t *testing.T) {
	a := NewKeywordAnalyzer(DefaultThresholds())

	plain := "Espresso machines need regular cleaning. Descale the boiler monthly and rinse the portafilter after every shot to keep espresso machines running."
	md := domain.SEOMetadata{
		FocusKeyword:      "espresso machines",
		SecondaryKeywords: []string{"descale", "portafilter", "crema"},
	}
	res := a.Analyze(plain, plain, md)

	// two of three secondary terms appear near the keyword
	assert.InDelta(t, 66.7, res.LSI, 0.1)
}

func TestKeywordAnalyzer_Analyze_DensityMeasurement(t *testing.T) {
	a := NewKeywordAnalyzer(DefaultThresholds())

	// 2 occurrences over 100 words is 2%
	words := make([]string, 0, 100)
	words = append(words, "gardening", "tips")
	for i := 0; i < 96; i++ {
		words = append(words, fmt.Sprintf("filler%d", i))
	}
	words = append(words, "gardening", "tips")
	plain := strings.Join(words, " ")

	res := a.Analyze(plain, plain, domain.SEOMetadata{FocusKeyword: "gardening tips"})
	require.Equal(t, 2, res.Occurrences)
	assert.InDelta(t, 2.0, res.DensityPct, 0.001)
	assert.Equal(t, 100.0, res.Density)
}
