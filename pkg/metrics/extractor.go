// Package metrics derives word, sentence and paragraph counts from raw
// article content. Input may be HTML, markdown or plain text.
package metrics

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"

	"github.com/seoscope/seoscope/pkg/domain"
)

// Extractor strips markup and tokenizes content into words, sentences and
// paragraphs. Safe for concurrent use.
type Extractor struct {
	sanitizer *bluemonday.Policy
}

var (
	blockCloseRe = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|ul|ol|blockquote|pre|table|tr|section|article)>|<br\s*/?>`)
	mdImageRe    = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]*)\)`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	mdMarkerRe   = regexp.MustCompile(`(?m)^[#>*\-+]+\s*|[*_]{1,3}([^*_]+)[*_]{1,3}|` + "`+")
	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	blankLineRe  = regexp.MustCompile(`\n\s*\n`)
)

// NewExtractor creates a text metrics extractor
func NewExtractor() *Extractor {
	return &Extractor{sanitizer: bluemonday.StrictPolicy()}
}

// Extract computes text metrics for the given content. Empty or
// markup-only content yields all-zero metrics, never an error.
func (e *Extractor) Extract(content string) domain.TextMetrics {
	text := e.PlainText(content)
	if text == "" {
		return domain.TextMetrics{}
	}

	words := strings.Fields(text)
	sentences := countSentences(text)
	paragraphs := countParagraphs(text)

	avg := 0.0
	if sentences > 0 {
		avg = float64(len(words)) / float64(sentences)
	}

	return domain.TextMetrics{
		WordCount:             len(words),
		SentenceCount:         sentences,
		ParagraphCount:        paragraphs,
		AverageSentenceLength: avg,
	}
}

// PlainText strips HTML tags and markdown markers, preserving paragraph
// boundaries as blank lines.
func (e *Extractor) PlainText(content string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}

	// keep block boundaries visible after tag stripping
	text := blockCloseRe.ReplaceAllString(content, "\n\n")
	text = e.sanitizer.Sanitize(text)
	text = html.UnescapeString(text)

	// markdown: drop image syntax entirely, keep link text and emphasis text
	text = mdImageRe.ReplaceAllString(text, "")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = mdMarkerRe.ReplaceAllString(text, "$1")

	text = spaceRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// countSentences counts terminal punctuation boundaries. A boundary is a run
// of ./!/? not immediately followed by a lowercase letter, which avoids
// splitting on common abbreviations.
func countSentences(text string) int {
	runes := []rune(text)
	count := 0
	for i := 0; i < len(runes); i++ {
		if runes[i] != '.' && runes[i] != '!' && runes[i] != '?' {
			continue
		}
		// consume the punctuation run
		for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
			i++
		}
		// look past closing quotes and spaces for the next letter
		j := i + 1
		for j < len(runes) && (unicode.IsSpace(runes[j]) || runes[j] == '"' || runes[j] == '\'' || runes[j] == ')') {
			j++
		}
		if j < len(runes) && unicode.IsLower(runes[j]) {
			continue
		}
		count++
	}
	return count
}

// countParagraphs counts blank-line-separated blocks of text
func countParagraphs(text string) int {
	count := 0
	for _, block := range blankLineRe.Split(text, -1) {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}
