// Package extract implements the node-level stages of the extraction
// pipeline: noise filtering, text normalization, structural pruning,
// classification, answer highlighting and image captions, and the
// Extractor that runs a whole extraction call over a grabbr.Document.
package extract

import (
	"strings"

	"github.com/fwojciec/grabbr"
)

// ScanTags are the text-bearing element kinds the scanner considers.
var ScanTags = []string{
	"p", "h1", "h2", "h3", "h4", "h5", "h6",
	"li", "td", "th", "div", "span", "label",
	"dt", "dd", "strong", "b", "em", "i",
}

// ignoredTags never carry study content.
var ignoredTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "svg": true, "path": true,
	"button": true, "input": true, "select": true, "textarea": true,
	"nav": true, "footer": true, "header": true, "aside": true,
}

// noiseKeywords mark site chrome when found in a class or id.
var noiseKeywords = []string{
	"nav", "menu", "footer", "sidebar", "ad-", "ads", "cookie", "popup",
	"modal", "login", "signup", "share", "social", "breadcrumb", "sr-only",
	"hide", "hidden",
}

// allowKeywords override noiseKeywords.
var allowKeywords = []string{"question", "content"}

// placeholderTexts are whole-node texts that are UI affordances, not content.
var placeholderTexts = map[string]bool{
	"more": true, "more...": true, "read more": true, "click here": true,
	"show more": true, "expand": true, "collapse": true, "close": true,
}

// TinyFontSize is the font size below which text is treated as fine print.
const TinyFontSize = 10

// ShouldIgnore reports whether n is noise: a disallowed tag, not rendered,
// marked as site chrome by its class or id, or a bare UI placeholder.
func ShouldIgnore(n grabbr.Node, style grabbr.Style) bool {
	if ignoredTags[n.Tag()] {
		return true
	}

	if style.Hidden() {
		return true
	}

	if isNoise(strings.ToLower(n.ClassName()), strings.ToLower(n.ID())) {
		return true
	}

	return placeholderTexts[strings.ToLower(strings.TrimSpace(n.Text()))]
}

func isNoise(class, id string) bool {
	if !containsAny(class, noiseKeywords) && !containsAny(id, noiseKeywords) {
		return false
	}
	return !containsAny(class, allowKeywords) && !containsAny(id, allowKeywords)
}

// PassesGeometry reports whether a node with the given box and style is
// rendered at a readable size. Font sizes of zero are unknown and pass.
func PassesGeometry(rect grabbr.Rect, style grabbr.Style, ignoreTinyText bool) bool {
	if rect.Empty() {
		return false
	}
	if ignoreTinyText && style.FontSize > 0 && style.FontSize < TinyFontSize {
		return false
	}
	return true
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
