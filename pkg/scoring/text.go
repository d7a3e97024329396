package scoring

import (
	"regexp"
	"strings"
)

// lexical helpers shared by the keyword and user-experience scorers

var (
	htmlHeadingRe = regexp.MustCompile(`(?is)<h[1-6][^>]*>(.*?)</h[1-6]>`)
	mdHeadingRe   = regexp.MustCompile(`(?m)^#{1,6}[ \t]+(.+)$`)
	htmlTagRe     = regexp.MustCompile(`(?s)<[^>]+>`)
	htmlImageRe   = regexp.MustCompile(`(?i)<img\b`)
	mdImageRe     = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	listItemRe    = regexp.MustCompile(`(?im)<li\b|^[ \t]*[-*+][ \t]+\S|^[ \t]*\d+\.[ \t]+\S`)
	boldRe        = regexp.MustCompile(`(?is)<(strong|b)\b|\*\*[^*]+\*\*|__[^_]+__`)
	nonWordRe     = regexp.MustCompile(`[^a-z0-9']+`)
)

// tokenize lowercases text and splits it into word tokens
func tokenize(s string) []string {
	s = strings.ToLower(s)
	parts := nonWordRe.Split(s, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, "'")
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// phrasePositions returns the starting token index of every occurrence of
// phrase within tokens
func phrasePositions(tokens, phrase []string) []int {
	if len(phrase) == 0 || len(tokens) < len(phrase) {
		return nil
	}
	var positions []int
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, p := range phrase {
			if tokens[i+j] != p {
				match = false
				break
			}
		}
		if match {
			positions = append(positions, i)
		}
	}
	return positions
}

// headings extracts heading texts from HTML tags and markdown markers
func headings(raw string) []string {
	var out []string
	for _, m := range htmlHeadingRe.FindAllStringSubmatch(raw, -1) {
		text := strings.TrimSpace(htmlTagRe.ReplaceAllString(m[1], " "))
		if text != "" {
			out = append(out, text)
		}
	}
	for _, m := range mdHeadingRe.FindAllStringSubmatch(raw, -1) {
		if text := strings.TrimSpace(m[1]); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// countImages counts HTML img tags and markdown image references
func countImages(raw string) int {
	return len(htmlImageRe.FindAllString(raw, -1)) + len(mdImageRe.FindAllString(raw, -1))
}

// countListItems counts HTML and markdown list entries
func countListItems(raw string) int {
	return len(listItemRe.FindAllString(raw, -1))
}

// countBold counts bolded spans in HTML and markdown
func countBold(raw string) int {
	return len(boldRe.FindAllString(raw, -1))
}
