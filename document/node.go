package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Node wraps a single matched element.
type Node struct {
	sel *goquery.Selection
}

// Attr returns the attribute value and whether it exists.
func (n *Node) Attr(name string) (string, bool) {
	return n.sel.Attr(name)
}

// AttrOr returns the attribute value or def when absent.
func (n *Node) AttrOr(name, def string) string {
	return n.sel.AttrOr(name, def)
}

// Text returns the node's text content, trimmed.
func (n *Node) Text() string {
	return strings.TrimSpace(n.sel.Text())
}

// Html renders the node's inner HTML.
func (n *Node) Html() (string, error) {
	return n.sel.Html()
}

// Is reports whether the node matches the selector.
func (n *Node) Is(selector string) bool {
	return n.sel.Is(selector)
}

// Selection exposes the underlying goquery selection for advanced queries.
func (n *Node) Selection() *goquery.Selection {
	return n.sel
}
