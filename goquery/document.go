// Package goquery implements grabbr.Document over static HTML.
//
// The page is parsed with goquery, styled with the document's own
// stylesheets and inline styles, and laid out on a fixed character grid so
// every element gets deterministic document-space geometry. Scripts never
// run, so content a page builds client-side is only visible through the
// rod package.
package goquery

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grabbr"
	"golang.org/x/net/html"
)

// Grid metrics of the static layout, in CSS pixels.
const (
	CharWidth  = 8
	LineHeight = 20
)

// Ensure Document implements grabbr.Document at compile time.
var _ grabbr.Document = (*Document)(nil)

// Document is a parsed, styled and laid out HTML page.
// It is safe for concurrent use.
type Document struct {
	mu sync.RWMutex

	doc   *goquery.Document
	rules []styleRule
	root  *Node
	nodes []*Node
	byDOM map[*html.Node]*Node
}

// Parse parses an HTML page into a Document.
func Parse(page string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, grabbr.Errorf(grabbr.EINVALID, "failed to parse HTML: %v", err)
	}

	d := &Document{doc: doc, byDOM: make(map[*html.Node]*Node)}

	order := 0
	doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
		if media, ok := sel.Attr("media"); ok && !screenMedia(media) {
			return
		}
		d.rules = append(d.rules, parseStylesheet(sel.Text(), &order)...)
	})

	root := doc.Find("html")
	if root.Length() == 0 {
		return nil, grabbr.Errorf(grabbr.EINVALID, "document has no root element")
	}
	d.root = d.build(root.Get(0), nil)
	d.render()
	return d, nil
}

func screenMedia(media string) bool {
	media = strings.ToLower(media)
	return media == "" || strings.Contains(media, "all") || strings.Contains(media, "screen")
}

// build wraps h and its element descendants in Nodes.
func (d *Document) build(h *html.Node, parent *Node) *Node {
	n := &Node{doc: d, dom: h, parent: parent}
	d.byDOM[h] = n
	d.nodes = append(d.nodes, n)
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			n.children = append(n.children, d.build(c, n))
		}
	}
	return n
}

// render recomputes style, text and geometry for every node.
func (d *Document) render() {
	d.style(d.root, rootComputed(), true)
	for _, n := range d.nodes {
		n.text = ""
		if n.rendered {
			n.text = renderedText(d, n)
		}
	}
	var l layout
	l.place(d.root)
}

// style computes n's style and whether n generates a box, then recurses.
func (d *Document) style(n *Node, parent computed, parentRendered bool) {
	n.computed = compute(n.Tag(), hasAttr(n.dom, "hidden"), cascade(n.dom, d.rules), parent)
	n.rendered = parentRendered && n.computed.display != "none" && !hiddenByDetails(n)
	for _, c := range n.children {
		d.style(c, n.computed, n.rendered)
	}
}

// hiddenByDetails reports whether n is collapsed content of a closed
// details element.
func hiddenByDetails(n *Node) bool {
	p := n.parent
	return p != nil && p.Tag() == "details" && !hasAttr(p.dom, "open") && n.Tag() != "summary"
}

// Nodes returns every element whose tag is one of tags, in document order.
func (d *Document) Nodes(ctx context.Context, tags []string) ([]grabbr.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []grabbr.Node
	for _, n := range d.nodes {
		if want[n.Tag()] {
			out = append(out, n)
		}
	}
	return out, nil
}

// Expand opens every closed details element and lays the page out again.
func (d *Document) Expand(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	toggled := 0
	for _, n := range d.nodes {
		if n.Tag() == "details" && !hasAttr(n.dom, "open") {
			n.dom.Attr = append(n.dom.Attr, html.Attribute{Key: "open"})
			toggled++
		}
	}
	if toggled > 0 {
		d.render()
	}
	return toggled, nil
}

// Background returns the computed background color of the body element.
func (d *Document) Background(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, n := range d.root.children {
		if n.Tag() == "body" {
			return n.computed.background.String(), nil
		}
	}
	return "", grabbr.Errorf(grabbr.ENOTFOUND, "document has no body")
}

// PreferredScheme reads the page's color-scheme meta tag. The first scheme
// listed wins.
func (d *Document) PreferredScheme(_ context.Context) grabbr.Theme {
	d.mu.RLock()
	defer d.mu.RUnlock()

	content, ok := d.doc.Find(`meta[name="color-scheme"]`).Attr("content")
	if !ok {
		return grabbr.ThemeUnknown
	}
	for _, scheme := range strings.Fields(strings.ToLower(content)) {
		switch scheme {
		case "dark":
			return grabbr.ThemeDark
		case "light":
			return grabbr.ThemeLight
		}
	}
	return grabbr.ThemeUnknown
}

// Ensure Node implements grabbr.Node at compile time.
var _ grabbr.Node = (*Node)(nil)

// Node is one element of a Document.
type Node struct {
	doc      *Document
	dom      *html.Node
	parent   *Node
	children []*Node

	computed computed
	rendered bool
	text     string
	rect     grabbr.Rect
}

// Tag is read without the lock: element names never change after Parse.
func (n *Node) Tag() string { return n.dom.Data }

func (n *Node) ClassName() string {
	v, _ := n.Attr("class")
	return v
}

func (n *Node) ID() string {
	v, _ := n.Attr("id")
	return v
}

// Attr locks because Expand adds the open attribute to details elements.
func (n *Node) Attr(name string) (string, bool) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	for _, a := range n.dom.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (n *Node) Text() string {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.text
}

func (n *Node) Rect() (grabbr.Rect, error) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	return n.rect, nil
}

func (n *Node) Style() (grabbr.Style, error) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()
	c := n.computed
	return grabbr.Style{
		Display:    c.display,
		Visibility: c.visibility,
		Opacity:    c.opacity,
		Color:      c.color.String(),
		FontSize:   c.fontSize,
		FontWeight: c.fontWeight,
	}, nil
}

func (n *Node) Parent() grabbr.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []grabbr.Node {
	out := make([]grabbr.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) Descendants() []grabbr.Node {
	var out []grabbr.Node
	for _, c := range n.children {
		out = append(out, c)
		out = append(out, c.Descendants()...)
	}
	return out
}

// renderedText approximates innerText: text of rendered, visible
// descendants with whitespace collapsed and block boundaries as newlines.
func renderedText(d *Document, n *Node) string {
	var b strings.Builder
	var walk func(n *Node)
	walk = func(n *Node) {
		collapsed := n.Tag() == "details" && !hasAttr(n.dom, "open")
		for c := n.dom.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if !collapsed && n.computed.visibility == "visible" {
					b.WriteString(c.Data)
				}
			case html.ElementNode:
				cn := d.byDOM[c]
				if cn == nil || !cn.rendered {
					continue
				}
				switch {
				case cn.Tag() == "br":
					b.WriteString("\n")
				case cn.computed.display == "table-cell":
					b.WriteString(" ")
					walk(cn)
					b.WriteString(" ")
				case isBlock(cn.computed.display):
					b.WriteString("\n")
					walk(cn)
					b.WriteString("\n")
				default:
					walk(cn)
				}
			}
		}
	}
	walk(n)

	var lines []string
	for _, line := range strings.Split(b.String(), "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func isBlock(display string) bool {
	switch display {
	case "inline", "inline-block", "inline-flex", "inline-grid", "table-cell", "contents", "none":
		return false
	}
	return true
}

// layout flows text on a grid of CharWidth columns and LineHeight rows.
// Blocks start and end on a fresh line; inline content and table cells
// advance the column.
type layout struct {
	line int
	col  int
}

func (l *layout) breakLine() {
	if l.col > 0 {
		l.line++
		l.col = 0
	}
}

func (l *layout) place(n *Node) {
	if !n.rendered {
		n.zero()
		return
	}

	block := isBlock(n.computed.display)
	if block {
		l.breakLine()
	}
	startLine, startCol := l.line, l.col

	collapsed := n.Tag() == "details" && !hasAttr(n.dom, "open")
	for c := n.dom.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if collapsed {
				continue
			}
			if words := strings.Fields(c.Data); len(words) > 0 {
				l.col += utf8.RuneCountInString(strings.Join(words, " ")) + 1
			}
		case html.ElementNode:
			cn := n.doc.byDOM[c]
			if cn == nil {
				continue
			}
			if cn.Tag() == "br" && cn.rendered {
				l.line++
				l.col = 0
			}
			l.place(cn)
		}
	}

	if block {
		l.breakLine()
	}

	n.rect = grabbr.Rect{X: float64(startCol * CharWidth), Y: float64(startLine * LineHeight)}
	if n.text == "" {
		return
	}
	width := 0
	lines := strings.Split(n.text, "\n")
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}
	n.rect.Width = float64(width * CharWidth)
	n.rect.Height = float64(len(lines) * LineHeight)
}

// zero clears the geometry of an element that generates no box.
func (n *Node) zero() {
	n.rect = grabbr.Rect{}
	for _, c := range n.children {
		c.zero()
	}
}
