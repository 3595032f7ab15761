package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/grabbr"
)

// boilerplateRe matches "read more" style affordances that leak into
// rendered text.
var boilerplateRe = regexp.MustCompile(`(?i)more\.\.\.|read more|show more|expand|collapse`)

// VisibleText returns the rendered text of n with boilerplate removed and
// surrounding whitespace trimmed. It returns "" when fewer than
// grabbr.MinTextLength characters remain.
func VisibleText(n grabbr.Node) string {
	return CleanText(n.Text())
}

// CleanText removes boilerplate substrings from text and trims it.
func CleanText(text string) string {
	text = strings.TrimSpace(boilerplateRe.ReplaceAllString(text, ""))
	if utf8.RuneCountInString(text) < grabbr.MinTextLength {
		return ""
	}
	return text
}
