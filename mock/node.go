package mock

import (
	"context"
	"slices"
	"strings"

	"github.com/fwojciec/grabbr"
)

var _ grabbr.Node = (*Node)(nil)

// Node is an in-memory implementation of grabbr.Node.
// Call Link on the root before use so Parent works.
type Node struct {
	TagName    string
	Class      string
	Identifier string
	Attributes map[string]string

	// InnerText is the rendered text. When empty, Text joins the
	// children's text with newlines.
	InnerText string

	Box      grabbr.Rect
	Computed grabbr.Style
	RectErr  error
	StyleErr error

	Kids []*Node

	parent *Node
}

// Link sets parent pointers throughout the tree rooted at n and returns n.
func Link(n *Node) *Node {
	for _, k := range n.Kids {
		k.parent = n
		Link(k)
	}
	return n
}

func (n *Node) Tag() string       { return n.TagName }
func (n *Node) ClassName() string { return n.Class }
func (n *Node) ID() string        { return n.Identifier }

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attributes[name]
	return v, ok
}

func (n *Node) Text() string {
	if n.InnerText != "" || len(n.Kids) == 0 {
		return n.InnerText
	}
	parts := make([]string, 0, len(n.Kids))
	for _, k := range n.Kids {
		if t := k.Text(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n")
}

func (n *Node) Rect() (grabbr.Rect, error)   { return n.Box, n.RectErr }
func (n *Node) Style() (grabbr.Style, error) { return n.Computed, n.StyleErr }

func (n *Node) Parent() grabbr.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []grabbr.Node {
	out := make([]grabbr.Node, 0, len(n.Kids))
	for _, k := range n.Kids {
		out = append(out, k)
	}
	return out
}

func (n *Node) Descendants() []grabbr.Node {
	var out []grabbr.Node
	for _, k := range n.Kids {
		out = append(out, k)
		out = append(out, k.Descendants()...)
	}
	return out
}

var _ grabbr.Document = (*Document)(nil)

// Document is a mock implementation of grabbr.Document.
type Document struct {
	NodesFn           func(ctx context.Context, tags []string) ([]grabbr.Node, error)
	ExpandFn          func(ctx context.Context) (int, error)
	BackgroundFn      func(ctx context.Context) (string, error)
	PreferredSchemeFn func(ctx context.Context) grabbr.Theme
}

// NewDocument returns a Document serving the tree rooted at root. Nodes
// walks the tree in document order; Expand toggles nothing; the background
// and preference are unknown.
func NewDocument(root *Node) *Document {
	Link(root)
	return &Document{
		NodesFn: func(_ context.Context, tags []string) ([]grabbr.Node, error) {
			var out []grabbr.Node
			all := append([]grabbr.Node{root}, root.Descendants()...)
			for _, n := range all {
				if slices.Contains(tags, n.Tag()) {
					out = append(out, n)
				}
			}
			return out, nil
		},
		ExpandFn:          func(context.Context) (int, error) { return 0, nil },
		BackgroundFn:      func(context.Context) (string, error) { return "", nil },
		PreferredSchemeFn: func(context.Context) grabbr.Theme { return grabbr.ThemeUnknown },
	}
}

func (d *Document) Nodes(ctx context.Context, tags []string) ([]grabbr.Node, error) {
	return d.NodesFn(ctx, tags)
}

func (d *Document) Expand(ctx context.Context) (int, error) {
	return d.ExpandFn(ctx)
}

func (d *Document) Background(ctx context.Context) (string, error) {
	return d.BackgroundFn(ctx)
}

func (d *Document) PreferredScheme(ctx context.Context) grabbr.Theme {
	return d.PreferredSchemeFn(ctx)
}
