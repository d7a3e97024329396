// Package semantic audits the structural quality of article markup: heading
// hierarchy, image alt coverage and section shape. It operates on a parsed
// HTML tree, not on regex matches, so odd markup does not trip it up.
package semantic

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/seoscope/seoscope/pkg/domain"
)

// score deductions per issue severity
const (
	deductError   = 15
	deductWarning = 8
	deductInfo    = 3
)

// Analyzer performs structural HTML analysis. Stateless and safe for
// concurrent use.
type Analyzer struct{}

// New creates a semantic analyzer
func New() *Analyzer {
	return &Analyzer{}
}

// headingRef is one heading in document order
type headingRef struct {
	node  *html.Node
	level int
	text  string
	id    string
}

// AnalyzeHTML audits the given markup. With opts.IsArticleContent the
// article title is assumed to render as an external H1, so in-body headings
// must start at H2.
func (a *Analyzer) AnalyzeHTML(input string, opts domain.SemanticOptions) (*domain.SemanticAnalysis, error) {
	res := &domain.SemanticAnalysis{
		Issues:           []domain.SemanticIssue{},
		Suggestions:      []domain.SemanticSuggestion{},
		Score:            100,
		HeadingStructure: []domain.HeadingNode{},
	}
	if strings.TrimSpace(input) == "" {
		return res, nil
	}

	nodes, err := parseFragment(input)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	headings := collectHeadings(nodes)
	images := collectImages(nodes)

	res.HeadingStructure = buildHeadingTree(headings)

	fixable := 0
	fixable += a.checkHeadings(res, headings, nodes, opts, input)
	fixable += a.checkImages(res, images)

	res.Score = scoreFromIssues(res.Issues)

	if fixable > 0 {
		applyFixes(headings, images, opts)
		res.FixedHTML = renderFragment(nodes)
	}

	return res, nil
}

// checkHeadings validates the heading hierarchy and section shape,
// returning the number of auto-fixable findings
func (a *Analyzer) checkHeadings(res *domain.SemanticAnalysis, headings []headingRef, nodes []*html.Node, opts domain.SemanticOptions, input string) int {
	fixable := 0

	prev := 0
	if opts.IsArticleContent {
		prev = 1 // the externally rendered title occupies H1
	}

	for i, h := range headings {
		element := renderNode(h.node)

		if opts.IsArticleContent && h.level == 1 {
			res.Issues = append(res.Issues, domain.SemanticIssue{
				Type:     "duplicate-h1",
				Severity: domain.SeverityError,
				Message:  "article content contains an H1; the title already renders as H1, start body headings at H2",
				Element:  element,
			})
			fixable++
			prev = 1 // treated as the h2 it will become
			continue
		}

		if prev > 0 && h.level > prev+1 {
			res.Issues = append(res.Issues, domain.SemanticIssue{
				Type:     "skipped-heading-level",
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("heading jumps from h%d to h%d; expected h%d", prev, h.level, prev+1),
				Element:  element,
			})
			fixable++
			prev++
		} else {
			prev = h.level
		}

		if h.text == "" {
			res.Issues = append(res.Issues, domain.SemanticIssue{
				Type:     "empty-heading",
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("h%d has no text", h.level),
				Element:  element,
			})
			a.suggestEmptyHeading(res, h, input)
			continue
		}

		if !hasContentAfter(h, i, headings, nodes) {
			res.Issues = append(res.Issues, domain.SemanticIssue{
				Type:     "empty-section",
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("heading %q has no content before the next heading", h.text),
				Element:  element,
			})
			a.suggestEmptySection(res, h, input)
		}
	}

	return fixable
}

// checkImages flags images without alt attributes, returning the count of
// fixable findings
func (a *Analyzer) checkImages(res *domain.SemanticAnalysis, images []*html.Node) int {
	fixable := 0
	for _, img := range images {
		if hasAttr(img, "alt") {
			continue
		}
		res.Issues = append(res.Issues, domain.SemanticIssue{
			Type:     "missing-alt",
			Severity: domain.SeverityError,
			Message:  "image has no alt attribute",
			Element:  renderNode(img),
		})
		fixable++
	}
	return fixable
}

// suggestEmptyHeading proposes placeholder text for an empty heading. The
// before string is taken verbatim from the input, so suggestions are only
// produced when the literal markup can be located.
func (a *Analyzer) suggestEmptyHeading(res *domain.SemanticAnalysis, h headingRef, input string) {
	tag := fmt.Sprintf("h%d", h.level)
	for _, candidate := range []string{"<" + tag + "></" + tag + ">", "<" + tag + "> </" + tag + ">"} {
		if strings.Contains(input, candidate) {
			res.Suggestions = append(res.Suggestions, domain.SemanticSuggestion{
				Type:        "empty-heading",
				Description: "give the heading descriptive text or remove it",
				Before:      candidate,
				After:       "<" + tag + ">Section title</" + tag + ">",
			})
			return
		}
	}
}

// suggestEmptySection proposes following content for a heading that has
// none
func (a *Analyzer) suggestEmptySection(res *domain.SemanticAnalysis, h headingRef, input string) {
	rendered := renderNode(h.node)
	if !strings.Contains(input, rendered) {
		return
	}
	res.Suggestions = append(res.Suggestions, domain.SemanticSuggestion{
		Type:        "empty-section",
		Description: fmt.Sprintf("add body content under %q or remove the heading", h.text),
		Before:      rendered,
		After:       rendered + "\n<p>Describe this section here.</p>",
	})
}

// scoreFromIssues deducts per severity, floored at zero
func scoreFromIssues(issues []domain.SemanticIssue) float64 {
	score := 100.0
	for _, issue := range issues {
		switch issue.Severity {
		case domain.SeverityError:
			score -= deductError
		case domain.SeverityWarning:
			score -= deductWarning
		case domain.SeverityInfo:
			score -= deductInfo
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// applyFixes mutates the parsed tree: demotes an in-body H1, re-levels
// skipped headings and inserts empty alt attributes. Issues needing human
// judgment are left to suggestions.
func applyFixes(headings []headingRef, images []*html.Node, opts domain.SemanticOptions) {
	prev := 0
	if opts.IsArticleContent {
		prev = 1
	}

	for _, h := range headings {
		level := h.level
		if opts.IsArticleContent && level == 1 {
			level = 2
		}
		if prev > 0 && level > prev+1 {
			level = prev + 1
		}
		if level != h.level {
			setHeadingLevel(h.node, level)
		}
		prev = level
	}

	for _, img := range images {
		if !hasAttr(img, "alt") {
			img.Attr = append(img.Attr, html.Attribute{Key: "alt", Val: ""})
		}
	}
}

// treeNode is the mutable form used while building the outline
type treeNode struct {
	level    int
	text     string
	id       string
	children []*treeNode
}

// buildHeadingTree builds the document outline with a single linear scan.
// Every heading becomes a child of the nearest preceding heading with a
// strictly lower level still on the stack, or a root node if none exists.
func buildHeadingTree(headings []headingRef) []domain.HeadingNode {
	var roots []*treeNode
	var stack []*treeNode

	for _, h := range headings {
		node := &treeNode{level: h.level, text: h.text, id: h.id}

		for len(stack) > 0 && stack[len(stack)-1].level >= h.level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
		}
		stack = append(stack, node)
	}

	return toHeadingNodes(roots)
}

func toHeadingNodes(nodes []*treeNode) []domain.HeadingNode {
	out := make([]domain.HeadingNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, domain.HeadingNode{
			Level:    n.level,
			Text:     n.text,
			ID:       n.id,
			Children: toHeadingNodes(n.children),
		})
	}
	return out
}
