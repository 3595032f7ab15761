package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/extract"
	"github.com/fwojciec/grabbr/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// textNode returns a rendered, readable node at the given vertical position.
func textNode(tag, text string, y float64) *mock.Node {
	return &mock.Node{
		TagName:   tag,
		InnerText: text,
		Box:       grabbr.Rect{X: 10, Y: y, Width: 200, Height: 18},
		Computed:  grabbr.Style{FontSize: 16, FontWeight: 400, Color: "rgb(0, 0, 0)"},
	}
}

func page(kids ...*mock.Node) *mock.Document {
	return mock.NewDocument(&mock.Node{TagName: "body", Kids: kids})
}

func candidateTexts(cs []grabbr.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Text
	}
	return out
}

func TestScan(t *testing.T) {
	t.Parallel()

	t.Run("builds candidates in document order", func(t *testing.T) {
		t.Parallel()

		doc := page(
			textNode("h1", "Cell biology", 10),
			textNode("p", "1. What is a cell?", 50),
			textNode("li", "A) A unit of life", 70),
		)

		res, err := extract.Scan(context.Background(), doc, grabbr.DefaultOptions())
		require.NoError(t, err)

		require.Len(t, res.Candidates, 3)
		assert.Equal(t, grabbr.Candidate{
			Text:     "Cell biology",
			Role:     grabbr.RoleHeader,
			Position: grabbr.Point{X: 10, Y: 10},
		}, res.Candidates[0])
		assert.Equal(t, grabbr.RoleQuestion, res.Candidates[1].Role)
		assert.Equal(t, grabbr.RoleChoice, res.Candidates[2].Role)
		assert.Zero(t, res.Skipped)
	})

	t.Run("drops read more placeholders before classification", func(t *testing.T) {
		t.Parallel()

		doc := page(
			textNode("p", "Real content", 10),
			textNode("span", "READ MORE", 30),
			textNode("a", "read more", 50),
		)

		res, err := extract.Scan(context.Background(), doc, grabbr.Options{})
		require.NoError(t, err)

		assert.Equal(t, []string{"Real content"}, candidateTexts(res.Candidates))
	})

	t.Run("skips containers whose block children carry the text", func(t *testing.T) {
		t.Parallel()

		container := textNode("div", "", 10)
		container.Kids = []*mock.Node{textNode("p", "Inner paragraph", 10)}

		res, err := extract.Scan(context.Background(), page(container), grabbr.DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, []string{"Inner paragraph"}, candidateTexts(res.Candidates))
	})

	t.Run("drops unrendered and tiny nodes", func(t *testing.T) {
		t.Parallel()

		collapsed := textNode("p", "Collapsed", 10)
		collapsed.Box = grabbr.Rect{}
		tiny := textNode("p", "Fine print", 30)
		tiny.Computed.FontSize = 8

		res, err := extract.Scan(context.Background(), page(collapsed, tiny, textNode("p", "Visible", 50)), grabbr.DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, []string{"Visible"}, candidateTexts(res.Candidates))
	})

	t.Run("keeps tiny text when not ignored", func(t *testing.T) {
		t.Parallel()

		tiny := textNode("p", "Fine print", 30)
		tiny.Computed.FontSize = 8

		res, err := extract.Scan(context.Background(), page(tiny), grabbr.Options{})
		require.NoError(t, err)

		assert.Equal(t, []string{"Fine print"}, candidateTexts(res.Candidates))
	})

	t.Run("counts nodes that cannot be measured", func(t *testing.T) {
		t.Parallel()

		detached := textNode("p", "Detached", 10)
		detached.RectErr = errors.New("node detached")
		unstyled := textNode("p", "Unstyled", 30)
		unstyled.StyleErr = errors.New("no computed style")

		res, err := extract.Scan(context.Background(), page(detached, unstyled, textNode("p", "Fine", 50)), grabbr.DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, []string{"Fine"}, candidateTexts(res.Candidates))
		assert.Equal(t, 2, res.Skipped)
	})

	t.Run("ignored nodes are not measured", func(t *testing.T) {
		t.Parallel()

		hidden := textNode("p", "Hidden", 10)
		hidden.Computed.Display = "none"
		hidden.RectErr = errors.New("node detached")

		res, err := extract.Scan(context.Background(), page(hidden), grabbr.DefaultOptions())
		require.NoError(t, err)

		assert.Empty(t, res.Candidates)
		assert.Zero(t, res.Skipped)
	})

	t.Run("flags highlighted choices", func(t *testing.T) {
		t.Parallel()

		marked := textNode("li", "B) Paris", 10)
		marked.Class = "correct-answer"
		marked.Computed.FontWeight = 700
		plain := textNode("li", "B) Paris", 30)

		res, err := extract.Scan(context.Background(), page(marked, plain), grabbr.DefaultOptions())
		require.NoError(t, err)

		require.Len(t, res.Candidates, 2)
		assert.True(t, res.Candidates[0].IsLikelyAnswer)
		assert.False(t, res.Candidates[1].IsLikelyAnswer)
	})

	t.Run("attaches image captions", func(t *testing.T) {
		t.Parallel()

		q := textNode("p", "Which organ is shown?", 10)
		figure := &mock.Node{TagName: "section", Kids: []*mock.Node{
			{TagName: "img", Attributes: map[string]string{"alt": "a human heart"}},
			q,
		}}

		res, err := extract.Scan(context.Background(), page(figure), grabbr.DefaultOptions())
		require.NoError(t, err)

		require.Len(t, res.Candidates, 1)
		assert.Equal(t, "[Visual Content: a human heart]", res.Candidates[0].ImageCaption)
	})

	t.Run("returns node listing errors", func(t *testing.T) {
		t.Parallel()

		doc := page()
		doc.NodesFn = func(context.Context, []string) ([]grabbr.Node, error) {
			return nil, errors.New("page crashed")
		}

		_, err := extract.Scan(context.Background(), doc, grabbr.DefaultOptions())
		require.Error(t, err)
	})
}
