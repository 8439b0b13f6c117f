// Package document provides the query capability over parsed pages:
// CSS selectors via goquery, XPath via htmlquery, with automatic charset
// detection and optional sanitization.
package document

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/saintfish/chardet"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Parser identifiers accepted by Parse.
const (
	// ParserHTML detects the input charset and converts to UTF-8 before
	// parsing. This is the default.
	ParserHTML = "html"

	// ParserHTMLUTF8 skips detection and parses the bytes as UTF-8.
	ParserHTMLUTF8 = "html-utf8"
)

// MaxSize caps document input at 10MB to prevent memory exhaustion.
const MaxSize = 10 * 1024 * 1024

// Document is a parsed page. It is immutable after Parse; the XPath node
// tree is built lazily on first use.
type Document struct {
	doc *goquery.Document
	raw []byte

	xpathOnce sync.Once
	xpathRoot *html.Node
	xpathErr  error
}

// Parse parses raw content using the engine named by parser ("" means
// ParserHTML).
func Parse(content []byte, parser string) (*Document, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("document: empty content")
	}
	if len(content) > MaxSize {
		return nil, fmt.Errorf("document: content exceeds maximum size of %d bytes", MaxSize)
	}

	var doc *goquery.Document
	var err error
	switch parser {
	case "", ParserHTML:
		doc, err = goquery.NewDocumentFromReader(utf8Reader(content))
	case ParserHTMLUTF8:
		doc, err = goquery.NewDocumentFromReader(bytes.NewReader(content))
	default:
		return nil, fmt.Errorf("document: unknown parser %q", parser)
	}
	if err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}
	return &Document{doc: doc, raw: content}, nil
}

// DetectCharset names the best-guess charset of the content, defaulting
// to utf-8 when detection fails.
func DetectCharset(content []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(content)
	if err != nil || result == nil {
		return "utf-8"
	}
	return strings.ToLower(result.Charset)
}

// Find returns the first node matching the CSS selector, or nil.
func (d *Document) Find(selector string) *Node {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return &Node{sel: sel}
}

// FindAll returns every node matching the CSS selector.
func (d *Document) FindAll(selector string) []*Node {
	var nodes []*Node
	d.doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// Select is an alias for FindAll, mirroring CSS-select conventions.
func (d *Document) Select(selector string) []*Node {
	return d.FindAll(selector)
}

// FindText returns the first node matching the selector whose text
// contains text, or nil.
func (d *Document) FindText(selector, text string) *Node {
	var found *Node
	d.doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if text == "" || strings.Contains(s.Text(), text) {
			found = &Node{sel: s}
			return false
		}
		return true
	})
	return found
}

// FindAllText returns every node matching the selector whose text
// contains text.
func (d *Document) FindAllText(selector, text string) []*Node {
	var nodes []*Node
	d.doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		if text == "" || strings.Contains(s.Text(), text) {
			nodes = append(nodes, &Node{sel: s})
		}
	})
	return nodes
}

// XPath evaluates an XPath expression against the document.
func (d *Document) XPath(expr string) ([]*html.Node, error) {
	d.xpathOnce.Do(func() {
		d.xpathRoot, d.xpathErr = htmlquery.Parse(utf8Reader(d.raw))
	})
	if d.xpathErr != nil {
		return nil, fmt.Errorf("document: xpath parse: %w", d.xpathErr)
	}
	return htmlquery.QueryAll(d.xpathRoot, expr)
}

// Title returns the text of the first <title> element.
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// Text returns all visible text with whitespace collapsed.
func (d *Document) Text() string {
	return strings.Join(strings.Fields(d.doc.Text()), " ")
}

// Html renders the document back to HTML.
func (d *Document) Html() (string, error) {
	return d.doc.Html()
}

var sanitizer = bluemonday.UGCPolicy()

// Sanitize strips unsafe markup from an HTML fragment.
func Sanitize(fragment string) string {
	return sanitizer.Sanitize(fragment)
}

// utf8Reader wraps content in a reader that converts from the detected
// charset to UTF-8, falling back to the raw bytes when conversion is not
// possible.
func utf8Reader(content []byte) *bytes.Reader {
	detected := DetectCharset(content)
	if detected == "utf-8" {
		return bytes.NewReader(content)
	}
	converted, err := charset.NewReaderLabel(detected, bytes.NewReader(content))
	if err != nil {
		return bytes.NewReader(content)
	}
	buf, err := io.ReadAll(converted)
	if err != nil {
		return bytes.NewReader(content)
	}
	return bytes.NewReader(buf)
}
