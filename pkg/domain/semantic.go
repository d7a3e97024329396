package domain

// IssueSeverity grades a structural defect
type IssueSeverity string

// issue severities
const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
	SeverityInfo    IssueSeverity = "info"
)

// SemanticIssue is one structural defect found in the markup
type SemanticIssue struct {
	Type     string        `json:"type"`
	Severity IssueSeverity `json:"severity"`
	Message  string        `json:"message"`
	Element  string        `json:"element,omitempty"`
}

// SemanticSuggestion is one before/after rewrite proposal. Before is always
// a literal substring of the analyzed input.
type SemanticSuggestion struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Before      string `json:"before"`
	After       string `json:"after"`
}

// HeadingNode is one heading in the document tree. Children contain only
// headings of deeper levels that fall between this heading and the next
// sibling at the parent's level.
type HeadingNode struct {
	Level    int           `json:"level"`
	Text     string        `json:"text"`
	ID       string        `json:"id,omitempty"`
	Children []HeadingNode `json:"children"`
}

// SemanticAnalysis is the result of one structural HTML audit. FixedHTML is
// set only when at least one auto-fixable issue was found.
type SemanticAnalysis struct {
	Issues           []SemanticIssue      `json:"issues"`
	Suggestions      []SemanticSuggestion `json:"suggestions"`
	Score            float64              `json:"score"`
	FixedHTML        string               `json:"fixedHtml,omitempty"`
	HeadingStructure []HeadingNode        `json:"headingStructure"`
}

// SemanticOptions controls the structural audit
type SemanticOptions struct {
	// IsArticleContent signals that an external H1 (the rendered title)
	// already exists, so in-body content must start at H2.
	IsArticleContent bool `json:"isArticleContent"`
}
