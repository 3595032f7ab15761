package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_Text(t *testing.T) {
	t.Parallel()

	t.Run("joins children text when inner text is empty", func(t *testing.T) {
		t.Parallel()

		n := &mock.Node{TagName: "div", Kids: []*mock.Node{
			{TagName: "p", InnerText: "first"},
			{TagName: "p"},
			{TagName: "p", InnerText: "second"},
		}}

		assert.Equal(t, "first\nsecond", n.Text())
	})

	t.Run("prefers inner text", func(t *testing.T) {
		t.Parallel()

		n := &mock.Node{TagName: "div", InnerText: "own", Kids: []*mock.Node{{TagName: "p", InnerText: "child"}}}

		assert.Equal(t, "own", n.Text())
	})
}

func TestLink(t *testing.T) {
	t.Parallel()

	child := &mock.Node{TagName: "span"}
	root := mock.Link(&mock.Node{TagName: "div", Kids: []*mock.Node{{TagName: "p", Kids: []*mock.Node{child}}}})

	require.NotNil(t, child.Parent())
	assert.Equal(t, "p", child.Parent().Tag())
	assert.Nil(t, root.Parent())
	assert.Len(t, root.Descendants(), 2)
}

func TestNewDocument(t *testing.T) {
	t.Parallel()

	root := &mock.Node{TagName: "body", Kids: []*mock.Node{
		{TagName: "p", InnerText: "one"},
		{TagName: "div", Kids: []*mock.Node{{TagName: "span", InnerText: "two"}}},
	}}
	doc := mock.NewDocument(root)

	nodes, err := doc.Nodes(context.Background(), []string{"p", "span"})

	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "one", nodes[0].Text())
	assert.Equal(t, "two", nodes[1].Text())
	assert.Equal(t, grabbr.ThemeUnknown, doc.PreferredScheme(context.Background()))
}
