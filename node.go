package grabbr

import (
	"context"
	"io"
)

// Rect is a node's bounding box in document space (viewport position plus
// scroll offset). Coordinates are only comparable within one snapshot.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Empty reports whether the box has no area, i.e. the node is not rendered.
func (r Rect) Empty() bool {
	return r.Width == 0 || r.Height == 0
}

// Style is the subset of a node's computed style the engine reads.
type Style struct {
	Display    string `json:"display"`
	Visibility string `json:"visibility"`
	Opacity    string `json:"opacity"`

	// Color is the computed text color in rgb(r, g, b) or rgba(r, g, b, a) form.
	Color string `json:"color"`

	// FontSize is in CSS pixels. Zero means unknown.
	FontSize float64 `json:"fontSize"`

	// FontWeight is numeric (400 normal, 700 bold).
	FontWeight int `json:"fontWeight"`
}

// Hidden reports whether the style marks the node as not rendered.
func (s Style) Hidden() bool {
	return s.Display == "none" || s.Visibility == "hidden" || s.Opacity == "0"
}

// Node is a read-only handle to one element of a rendered document tree.
// The engine never mutates nodes; the only mutation it performs goes
// through Document.Expand.
type Node interface {
	// Tag returns the lower-case element name (e.g. "li", "h2").
	Tag() string

	// ClassName returns the raw class attribute.
	ClassName() string

	// ID returns the id attribute.
	ID() string

	// Attr returns an attribute value and whether it is present.
	Attr(name string) (string, bool)

	// Text returns the rendered (visible) text of the node and its descendants.
	Text() string

	// Rect returns the node's document-space bounding box.
	// An error means the node can no longer be measured (e.g. detached).
	Rect() (Rect, error)

	// Style returns the node's computed style.
	Style() (Style, error)

	// Parent returns the parent element, or nil at the root.
	Parent() Node

	// Children returns the direct element children in document order.
	Children() []Node

	// Descendants returns every element below the node in document order.
	Descendants() []Node
}

// Document is a renderable tree the engine can scan.
type Document interface {
	// Nodes returns every element whose tag is one of tags, in document order.
	Nodes(ctx context.Context, tags []string) ([]Node, error)

	// Expand forces closed disclosure widgets (details, accordions) open
	// and returns how many were toggled.
	Expand(ctx context.Context) (int, error)

	// Background returns the computed background color of the page body.
	// An empty string means the color could not be sampled.
	Background(ctx context.Context) (string, error)

	// PreferredScheme returns the host's light/dark preference, or
	// ThemeUnknown if it has none.
	PreferredScheme(ctx context.Context) Theme
}

// DocumentSource opens documents by URL.
type DocumentSource interface {
	// Open loads the URL and returns its document tree.
	Open(ctx context.Context, url string) (Document, error)

	// Close releases resources held by the source.
	Close() error
}

// ReleaseDocument frees host resources held by doc, such as a browser tab.
// Documents that hold none are left alone.
func ReleaseDocument(doc Document) error {
	if c, ok := doc.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
