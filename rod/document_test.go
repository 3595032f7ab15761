package rod_test

import (
	"context"
	"testing"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/extract"
	"github.com/fwojciec/grabbr/mock"
	"github.com/fwojciec/grabbr/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshot = `[
	{"tag": "body", "parent": -1, "attrs": {}, "text": "1. Capital of France?\nA) Paris\nB) Rome",
	 "rect": {"x": 0, "y": 0, "width": 800, "height": 600},
	 "style": {"display": "block", "visibility": "visible", "opacity": "1", "color": "rgb(0, 0, 0)", "fontSize": 16, "fontWeight": 400}},
	{"tag": "p", "parent": 0, "attrs": {"class": "qtext"}, "text": "1. Capital of France?",
	 "rect": {"x": 8, "y": 100, "width": 300, "height": 20},
	 "style": {"display": "block", "visibility": "visible", "opacity": "1", "color": "rgb(0, 0, 0)", "fontSize": 16, "fontWeight": 400}},
	{"tag": "div", "parent": 0, "attrs": {"class": "answers"}, "text": "A) Paris\nB) Rome",
	 "rect": {"x": 8, "y": 120, "width": 300, "height": 40},
	 "style": {"display": "block", "visibility": "visible", "opacity": "1", "color": "rgb(0, 0, 0)", "fontSize": 16, "fontWeight": 400}},
	{"tag": "label", "parent": 2, "attrs": {"for": "a1", "class": "correct"}, "text": "A) Paris",
	 "rect": {"x": 8, "y": 120, "width": 100, "height": 20},
	 "style": {"display": "inline", "visibility": "visible", "opacity": "1", "color": "rgb(0, 0, 0)", "fontSize": 16, "fontWeight": 400}},
	{"tag": "label", "parent": 2, "attrs": {"for": "a2"}, "text": "B) Rome",
	 "rect": {"x": 8, "y": 140, "width": 100, "height": 20},
	 "style": {"display": "inline", "visibility": "visible", "opacity": "1", "color": "rgb(0, 0, 0)", "fontSize": 16, "fontWeight": 400}}
]`

func TestDecodeSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("links parents and children", func(t *testing.T) {
		t.Parallel()

		nodes, err := rod.DecodeSnapshot([]byte(snapshot))
		require.NoError(t, err)
		require.Len(t, nodes, 5)

		assert.Nil(t, nodes[0].Parent())
		assert.Equal(t, "div", nodes[3].Parent().Tag())
		assert.Len(t, nodes[2].Children(), 2)
		assert.Len(t, nodes[0].Descendants(), 4)

		forID, ok := nodes[3].Attr("for")
		assert.True(t, ok)
		assert.Equal(t, "a1", forID)
		assert.Equal(t, "correct", nodes[3].ClassName())

		r, err := nodes[1].Rect()
		require.NoError(t, err)
		assert.Equal(t, grabbr.Rect{X: 8, Y: 100, Width: 300, Height: 20}, r)

		s, err := nodes[1].Style()
		require.NoError(t, err)
		assert.Equal(t, "1", s.Opacity)
		assert.InDelta(t, 16, s.FontSize, 0.001)
	})

	t.Run("rejects forward parent references", func(t *testing.T) {
		t.Parallel()

		_, err := rod.DecodeSnapshot([]byte(`[{"tag": "p", "parent": 0}]`))

		assert.Equal(t, grabbr.EINVALID, grabbr.ErrorCode(err))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := rod.DecodeSnapshot([]byte(`{`))

		assert.Equal(t, grabbr.EINVALID, grabbr.ErrorCode(err))
	})

	t.Run("feeds the extractor", func(t *testing.T) {
		t.Parallel()

		nodes, err := rod.DecodeSnapshot([]byte(snapshot))
		require.NoError(t, err)

		doc := mock.NewDocument(&mock.Node{TagName: "html"})
		doc.NodesFn = func(_ context.Context, tags []string) ([]grabbr.Node, error) {
			var out []grabbr.Node
			for _, n := range nodes {
				for _, tag := range tags {
					if n.Tag() == tag {
						out = append(out, n)
					}
				}
			}
			return out, nil
		}

		opts := grabbr.DefaultOptions()
		opts.Format = grabbr.FormatJSON
		res, err := extract.NewExtractor().Extract(context.Background(), doc, grabbr.ModeFull, opts)
		require.NoError(t, err)

		assert.Equal(t, []grabbr.Item{&grabbr.QuestionGroup{
			Question: "1. Capital of France?",
			Choices: []grabbr.Choice{
				{Text: "A) Paris", IsAnswer: true},
				{Text: "B) Rome"},
			},
		}}, res.Items)
	})
}
