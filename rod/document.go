package rod

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/fwojciec/grabbr"
	"github.com/go-rod/rod"
)

// snapshotJS serializes body and every element under it with its rendered
// text, document-space box and computed style. Parents are indexes into the
// returned array, -1 for body.
const snapshotJS = `() => {
	const els = document.body ? [document.body, ...document.body.querySelectorAll('*')] : [];
	const index = new Map(els.map((el, i) => [el, i]));
	const sx = window.scrollX, sy = window.scrollY;
	return JSON.stringify(els.map((el) => {
		const r = el.getBoundingClientRect();
		const cs = window.getComputedStyle(el);
		const attrs = {};
		for (const a of el.attributes) attrs[a.name] = a.value;
		return {
			tag: el.tagName.toLowerCase(),
			parent: index.has(el.parentElement) ? index.get(el.parentElement) : -1,
			attrs: attrs,
			text: typeof el.innerText === 'string' ? el.innerText : (el.textContent || ''),
			rect: {x: r.left + sx, y: r.top + sy, width: r.width, height: r.height},
			style: {
				display: cs.display,
				visibility: cs.visibility,
				opacity: cs.opacity,
				color: cs.color,
				fontSize: parseFloat(cs.fontSize) || 0,
				fontWeight: parseInt(cs.fontWeight, 10) || 400,
			},
		};
	}));
}`

// expandJS opens every closed details element and returns how many it
// toggled.
const expandJS = `() => {
	let n = 0;
	for (const d of document.querySelectorAll('details')) {
		if (!d.open) {
			d.open = true;
			n++;
		}
	}
	return n;
}`

const backgroundJS = `() => document.body ? window.getComputedStyle(document.body).backgroundColor : ''`

const schemeJS = `() => {
	if (!window.matchMedia) return '';
	if (window.matchMedia('(prefers-color-scheme: light)').matches) return 'light';
	if (window.matchMedia('(prefers-color-scheme: dark)').matches) return 'dark';
	return '';
}`

// Ensure Document implements grabbr.Document at compile time.
var _ grabbr.Document = (*Document)(nil)

// Document is a page open in the browser. Nodes are read from a snapshot
// taken on first use and retaken after Expand, so the engine sees a
// consistent tree even while scripts keep mutating the page.
//
// Close must be called to release the tab.
type Document struct {
	page *rod.Page

	mu    sync.Mutex
	nodes []*Node
	stale bool
}

// NewDocument wraps a loaded page.
func NewDocument(page *rod.Page) *Document {
	return &Document{page: page, stale: true}
}

// Nodes returns every element whose tag is one of tags, in document order.
func (d *Document) Nodes(ctx context.Context, tags []string) ([]grabbr.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stale {
		nodes, err := d.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		d.nodes = nodes
		d.stale = false
	}

	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}

	var out []grabbr.Node
	for _, n := range d.nodes {
		if want[n.tag] {
			out = append(out, n)
		}
	}
	return out, nil
}

// Expand opens closed details elements in the page.
func (d *Document) Expand(ctx context.Context) (int, error) {
	res, err := d.page.Context(ctx).Eval(expandJS)
	if err != nil {
		return 0, fmt.Errorf("expanding details: %w", err)
	}

	toggled := res.Value.Int()
	if toggled > 0 {
		d.mu.Lock()
		d.stale = true
		d.mu.Unlock()
	}
	return toggled, nil
}

// Background returns the computed background color of the body.
func (d *Document) Background(ctx context.Context) (string, error) {
	res, err := d.page.Context(ctx).Eval(backgroundJS)
	if err != nil {
		return "", fmt.Errorf("sampling background: %w", err)
	}
	return res.Value.Str(), nil
}

// PreferredScheme reports the browser's prefers-color-scheme setting.
func (d *Document) PreferredScheme(ctx context.Context) grabbr.Theme {
	res, err := d.page.Context(ctx).Eval(schemeJS)
	if err != nil {
		return grabbr.ThemeUnknown
	}
	return grabbr.Theme(res.Value.Str())
}

// Close closes the tab.
func (d *Document) Close() error {
	return d.page.Close()
}

func (d *Document) snapshot(ctx context.Context) ([]*Node, error) {
	res, err := d.page.Context(ctx).Eval(snapshotJS)
	if err != nil {
		return nil, fmt.Errorf("snapshotting page: %w", err)
	}
	return DecodeSnapshot([]byte(res.Value.Str()))
}

// element is the JSON shape produced by snapshotJS.
type element struct {
	Tag    string            `json:"tag"`
	Parent int               `json:"parent"`
	Attrs  map[string]string `json:"attrs"`
	Text   string            `json:"text"`
	Rect   grabbr.Rect       `json:"rect"`
	Style  grabbr.Style      `json:"style"`
}

// DecodeSnapshot builds a node tree from a page snapshot. Elements must
// appear in document order, each after its parent.
func DecodeSnapshot(data []byte) ([]*Node, error) {
	var elements []element
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, grabbr.Errorf(grabbr.EINVALID, "invalid page snapshot: %v", err)
	}

	nodes := make([]*Node, len(elements))
	for i, el := range elements {
		n := &Node{
			tag:   el.Tag,
			attrs: el.Attrs,
			text:  el.Text,
			rect:  el.Rect,
			style: el.Style,
		}
		if el.Parent >= 0 {
			if el.Parent >= i {
				return nil, grabbr.Errorf(grabbr.EINVALID, "element %d precedes its parent %d", i, el.Parent)
			}
			n.parent = nodes[el.Parent]
			n.parent.children = append(n.parent.children, n)
		}
		nodes[i] = n
	}
	return nodes, nil
}

// Ensure Node implements grabbr.Node at compile time.
var _ grabbr.Node = (*Node)(nil)

// Node is one element of a page snapshot.
type Node struct {
	tag      string
	attrs    map[string]string
	text     string
	rect     grabbr.Rect
	style    grabbr.Style
	parent   *Node
	children []*Node
}

func (n *Node) Tag() string                  { return n.tag }
func (n *Node) ClassName() string            { return n.attrs["class"] }
func (n *Node) ID() string                   { return n.attrs["id"] }
func (n *Node) Text() string                 { return n.text }
func (n *Node) Rect() (grabbr.Rect, error)   { return n.rect, nil }
func (n *Node) Style() (grabbr.Style, error) { return n.style, nil }

func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
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
