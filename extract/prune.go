package extract

import (
	"strings"

	"github.com/fwojciec/grabbr"
)

// blockTags are children that get scanned on their own, so a parent that
// contains one with text is skipped to avoid capturing the text twice.
var blockTags = map[string]bool{
	"div": true, "p": true, "ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "section": true, "article": true,
	"blockquote": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "label": true, "span": true,
}

// HasSignificantChildren reports whether any direct child of n is a
// block-like element with non-empty rendered text.
func HasSignificantChildren(n grabbr.Node) bool {
	for _, c := range n.Children() {
		if blockTags[c.Tag()] && strings.TrimSpace(c.Text()) != "" {
			return true
		}
	}
	return false
}
