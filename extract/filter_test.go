package extract_test

import (
	"testing"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/extract"
	"github.com/fwojciec/grabbr/mock"
	"github.com/stretchr/testify/assert"
)

func TestShouldIgnore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		node  *mock.Node
		style grabbr.Style
		want  bool
	}{
		{"plain paragraph", &mock.Node{TagName: "p", InnerText: "Photosynthesis"}, grabbr.Style{}, false},
		{"script tag", &mock.Node{TagName: "script", InnerText: "var x"}, grabbr.Style{}, true},
		{"nav tag", &mock.Node{TagName: "nav", InnerText: "Home"}, grabbr.Style{}, true},
		{"display none", &mock.Node{TagName: "p", InnerText: "secret"}, grabbr.Style{Display: "none"}, true},
		{"visibility hidden", &mock.Node{TagName: "p", InnerText: "secret"}, grabbr.Style{Visibility: "hidden"}, true},
		{"zero opacity", &mock.Node{TagName: "p", InnerText: "secret"}, grabbr.Style{Opacity: "0"}, true},
		{"noise class", &mock.Node{TagName: "div", Class: "site-footer", InnerText: "Copyright"}, grabbr.Style{}, true},
		{"noise id", &mock.Node{TagName: "div", Identifier: "cookie-banner", InnerText: "We use cookies"}, grabbr.Style{}, true},
		{"allow keyword overrides noise", &mock.Node{TagName: "div", Class: "hidden-question", InnerText: "What is 2+2?"}, grabbr.Style{}, false},
		{"main content is kept", &mock.Node{TagName: "div", Class: "main-content menu", InnerText: "Body"}, grabbr.Style{}, false},
		{"read more placeholder", &mock.Node{TagName: "span", InnerText: "  Read more "}, grabbr.Style{}, true},
		{"click here placeholder", &mock.Node{TagName: "span", InnerText: "Click here"}, grabbr.Style{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, extract.ShouldIgnore(tt.node, tt.style))
		})
	}
}

func TestPassesGeometry(t *testing.T) {
	t.Parallel()

	box := grabbr.Rect{Width: 100, Height: 20}

	t.Run("rendered node passes", func(t *testing.T) {
		t.Parallel()

		assert.True(t, extract.PassesGeometry(box, grabbr.Style{FontSize: 16}, true))
	})

	t.Run("zero width fails", func(t *testing.T) {
		t.Parallel()

		assert.False(t, extract.PassesGeometry(grabbr.Rect{Height: 20}, grabbr.Style{}, false))
	})

	t.Run("zero height fails", func(t *testing.T) {
		t.Parallel()

		assert.False(t, extract.PassesGeometry(grabbr.Rect{Width: 20}, grabbr.Style{}, false))
	})

	t.Run("tiny text fails when ignored", func(t *testing.T) {
		t.Parallel()

		assert.False(t, extract.PassesGeometry(box, grabbr.Style{FontSize: 9}, true))
	})

	t.Run("tiny text passes when not ignored", func(t *testing.T) {
		t.Parallel()

		assert.True(t, extract.PassesGeometry(box, grabbr.Style{FontSize: 9}, false))
	})

	t.Run("unknown font size passes", func(t *testing.T) {
		t.Parallel()

		assert.True(t, extract.PassesGeometry(box, grabbr.Style{}, true))
	})
}
