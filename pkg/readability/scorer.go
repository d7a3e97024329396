// Package readability computes Flesch-family readability formulas and a
// reading-time estimate from extracted text.
package readability

import (
	"math"
	"strings"
	"unicode"

	"github.com/seoscope/seoscope/pkg/domain"
)

// words per minute used for reading time estimation
const defaultReadingSpeed = 225

// Scorer produces a readability profile from plain text and its metrics
type Scorer struct {
	readingSpeed int
}

// NewScorer creates a readability scorer. Zero readingSpeed falls back to
// the default 225 wpm.
func NewScorer(readingSpeed int) *Scorer {
	if readingSpeed <= 0 {
		readingSpeed = defaultReadingSpeed
	}
	return &Scorer{readingSpeed: readingSpeed}
}

// Score computes the readability profile. Zero words or sentences yields
// neutral defaults (ease 100, grade 0) instead of dividing by zero.
func (s *Scorer) Score(text string, m domain.TextMetrics) domain.ReadabilityScores {
	res := domain.ReadabilityScores{
		FleschReadingEase:  100,
		ReadingTimeMinutes: 1,
		TargetAudience:     "general audience",
		Recommendations:    []string{},
	}
	if m.WordCount == 0 || m.SentenceCount == 0 {
		return res
	}

	words := strings.Fields(text)
	syllables := 0
	complexWords := 0
	for _, w := range words {
		n := CountSyllables(w)
		syllables += n
		if n >= 3 {
			complexWords++
		}
	}

	wordsPerSentence := float64(m.WordCount) / float64(m.SentenceCount)
	syllablesPerWord := float64(syllables) / float64(m.WordCount)
	complexRatio := float64(complexWords) / float64(m.WordCount)

	res.FleschReadingEase = 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	res.FleschKincaidGrade = 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	res.GunningFogIndex = 0.4 * (wordsPerSentence + 100*complexRatio)
	res.SMOGIndex = 1.0430*math.Sqrt(float64(complexWords)*30.0/float64(m.SentenceCount)) + 3.1291

	res.ReadingTimeMinutes = int(math.Ceil(float64(m.WordCount) / float64(s.readingSpeed)))
	if res.ReadingTimeMinutes < 1 {
		res.ReadingTimeMinutes = 1
	}

	res.TargetAudience = audienceForGrade(res.FleschKincaidGrade)
	res.Recommendations = s.recommendations(wordsPerSentence, complexRatio, res.FleschReadingEase)

	return res
}

// audienceForGrade maps a Flesch-Kincaid grade to an audience label
func audienceForGrade(grade float64) string {
	switch {
	case grade <= 6:
		return "general audience"
	case grade <= 9:
		return "high school"
	case grade <= 13:
		return "college"
	default:
		return "professional"
	}
}

// recommendations produces plain-language advice from the computed ratios
func (s *Scorer) recommendations(wordsPerSentence, complexRatio, ease float64) []string {
	recs := []string{}
	if wordsPerSentence > 25 {
		recs = append(recs, "Sentences average over 25 words; break long sentences into shorter ones")
	}
	if complexRatio > 0.2 {
		recs = append(recs, "Over 20% of words have three or more syllables; prefer simpler wording")
	}
	if ease < 50 {
		recs = append(recs, "Reading ease is low; shorter sentences and simpler words will widen the audience")
	}
	return recs
}

// CountSyllables estimates syllables in a word by counting vowel groups,
// discounting a trailing silent e. Every word counts at least one.
func CountSyllables(word string) int {
	w := strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if w == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range w {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// silent trailing e, unless it is the only vowel group
	if strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
