package semantic

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// helpers around the x/net/html tree

// parseFragment parses input as body content, tolerating malformed markup
func parseFragment(input string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(input), ctx)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// renderFragment renders the fragment roots back to markup
func renderFragment(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		_ = html.Render(&b, n)
	}
	return b.String()
}

// renderNode renders a single node to markup
func renderNode(n *html.Node) string {
	var b strings.Builder
	_ = html.Render(&b, n)
	return b.String()
}

// headingAtoms maps heading tags to their level
var headingAtoms = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// levelAtoms is the reverse mapping used when re-leveling
var levelAtoms = [...]atom.Atom{0, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// collectHeadings walks the fragment in document order and returns all
// headings
func collectHeadings(roots []*html.Node) []headingRef {
	var out []headingRef
	walkNodes(roots, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		level, ok := headingAtoms[n.DataAtom]
		if !ok {
			return
		}
		out = append(out, headingRef{
			node:  n,
			level: level,
			text:  strings.TrimSpace(innerText(n)),
			id:    attrValue(n, "id"),
		})
	})
	return out
}

// collectImages returns all img elements in document order
func collectImages(roots []*html.Node) []*html.Node {
	var out []*html.Node
	walkNodes(roots, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Img {
			out = append(out, n)
		}
	})
	return out
}

// walkNodes visits every node of every root in preorder
func walkNodes(roots []*html.Node, fn func(*html.Node)) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		fn(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
}

// innerText concatenates the text descendants of a node
func innerText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// hasAttr reports whether the node carries the named attribute
func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

// attrValue returns the value of the named attribute, or empty
func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// setHeadingLevel rewrites a heading element's tag in place
func setHeadingLevel(n *html.Node, level int) {
	if level < 1 || level > 6 {
		return
	}
	n.Data = fmt.Sprintf("h%d", level)
	n.DataAtom = levelAtoms[level]
}

// content-bearing elements that make a section non-empty even without text
var contentAtoms = map[atom.Atom]bool{
	atom.Img: true, atom.Ul: true, atom.Ol: true, atom.Table: true,
	atom.Blockquote: true, atom.Pre: true, atom.Figure: true, atom.Video: true,
}

// hasContentAfter reports whether any text or content-bearing element
// appears between heading idx and the next heading in document order
func hasContentAfter(h headingRef, idx int, headings []headingRef, roots []*html.Node) bool {
	var next *html.Node
	if idx+1 < len(headings) {
		next = headings[idx+1].node
	}

	seen := false
	found := false
	var walk func(n *html.Node) bool // true stops the walk
	walk = func(n *html.Node) bool {
		if n == h.node {
			seen = true
			return false // do not count the heading's own text
		}
		if next != nil && n == next {
			return true
		}
		if seen {
			if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
				found = true
				return true
			}
			if n.Type == html.ElementNode && contentAtoms[n.DataAtom] {
				found = true
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	for _, r := range roots {
		if walk(r) {
			break
		}
	}
	return found
}
