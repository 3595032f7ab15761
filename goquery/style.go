package goquery

import (
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// DefaultFontSize is the root font size in CSS pixels.
const DefaultFontSize = 16

// styleRule is one selector of a stylesheet rule with its declarations.
type styleRule struct {
	sel   cascadia.Sel
	order int
	decls []*css.Declaration
}

// parseStylesheet turns CSS text into selector rules. At-rules and
// selectors the matcher cannot handle (pseudo-elements, unsupported
// pseudo-classes) are skipped.
func parseStylesheet(text string, order *int) []styleRule {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil
	}

	var rules []styleRule
	for _, r := range sheet.Rules {
		if r.Kind != css.QualifiedRule {
			continue
		}
		for _, s := range r.Selectors {
			sel, err := cascadia.Parse(s)
			if err != nil || sel.PseudoElement() != "" {
				continue
			}
			rules = append(rules, styleRule{sel: sel, order: *order, decls: r.Declarations})
			*order++
		}
	}
	return rules
}

// declaration is a property value with its cascade precedence.
type declaration struct {
	value       string
	important   bool
	inline      bool
	specificity cascadia.Specificity
	order       int
}

// less orders declarations from lowest to highest precedence.
func (d declaration) less(o declaration) bool {
	if d.important != o.important {
		return !d.important
	}
	if d.inline != o.inline {
		return !d.inline
	}
	if d.specificity != o.specificity {
		return d.specificity.Less(o.specificity)
	}
	return d.order < o.order
}

// cascade returns the specified values for h: the winning declaration per
// property across matching rules and the inline style attribute.
func cascade(h *html.Node, rules []styleRule) map[string]string {
	winners := make(map[string]declaration)
	apply := func(prop string, d declaration) {
		prop = strings.ToLower(strings.TrimSpace(prop))
		if cur, ok := winners[prop]; ok && d.less(cur) {
			return
		}
		winners[prop] = d
	}

	for _, r := range rules {
		if !r.sel.Match(h) {
			continue
		}
		for _, decl := range r.decls {
			apply(decl.Property, declaration{
				value:       decl.Value,
				important:   decl.Important,
				specificity: r.sel.Specificity(),
				order:       r.order,
			})
		}
	}

	for i, decl := range inlineDeclarations(attr(h, "style")) {
		apply(decl.Property, declaration{
			value:     decl.Value,
			important: decl.Important,
			inline:    true,
			order:     i,
		})
	}

	specified := make(map[string]string, len(winners))
	for prop, d := range winners {
		specified[prop] = strings.TrimSpace(d.value)
	}
	return specified
}

// inlineDeclarations parses a style attribute. The parser only completes a
// declaration at ";" or "}", so an unterminated last declaration gets a
// closing ";". Declarations before a malformed one are kept.
func inlineDeclarations(style string) []*css.Declaration {
	style = strings.TrimSpace(style)
	if style == "" {
		return nil
	}
	if !strings.HasSuffix(style, ";") {
		style += ";"
	}
	decls, _ := parser.NewParser(style).ParseDeclarations()
	return decls
}

var unrenderedTags = map[string]bool{
	"head": true, "script": true, "style": true, "template": true, "noscript": true,
	"title": true, "meta": true, "link": true, "base": true,
}

var blockTags = map[string]bool{
	"html": true, "body": true, "address": true, "article": true, "aside": true,
	"blockquote": true, "details": true, "dialog": true, "dd": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "summary": true, "ul": true,
	"table": true, "thead": true, "tbody": true, "tfoot": true, "tr": true, "caption": true,
	"legend": true, "menu": true,
}

// defaultDisplay is the user-agent display value for a tag.
func defaultDisplay(tag string) string {
	switch {
	case unrenderedTags[tag]:
		return "none"
	case tag == "li":
		return "list-item"
	case tag == "td" || tag == "th":
		return "table-cell"
	case blockTags[tag]:
		return "block"
	}
	return "inline"
}

var boldTags = map[string]bool{
	"b": true, "strong": true, "th": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var headingScale = map[string]float64{
	"h1": 2, "h2": 1.5, "h3": 1.17, "h4": 1, "h5": 0.83, "h6": 0.67, "small": 0.83,
}

var fontSizeKeywords = map[string]float64{
	"xx-small": 9, "x-small": 10, "small": 13, "medium": 16,
	"large": 18, "x-large": 24, "xx-large": 32, "xxx-large": 48,
}

// computed holds the computed values the engine reads plus the inherited
// context children need.
type computed struct {
	display    string
	visibility string
	opacity    string
	color      rgba
	fontSize   float64
	fontWeight int
	background rgba
}

// rootComputed is the initial value of every property.
func rootComputed() computed {
	return computed{
		display:    "inline",
		visibility: "visible",
		opacity:    "1",
		color:      black,
		fontSize:   DefaultFontSize,
		fontWeight: 400,
		background: transparent,
	}
}

// compute derives the computed style of an element from its specified
// values and its parent's computed style. Color, font size, font weight and
// visibility inherit; display, opacity and background do not.
func compute(tag string, hidden bool, specified map[string]string, parent computed) computed {
	c := computed{
		display:    defaultDisplay(tag),
		visibility: parent.visibility,
		opacity:    "1",
		color:      parent.color,
		fontSize:   parent.fontSize,
		fontWeight: parent.fontWeight,
		background: transparent,
	}
	if scale, ok := headingScale[tag]; ok {
		c.fontSize = parent.fontSize * scale
	}
	if boldTags[tag] {
		c.fontWeight = 700
	}
	if hidden {
		c.display = "none"
	}

	if v, ok := specified["display"]; ok && v != "" && v != "inherit" {
		c.display = strings.ToLower(v)
	}
	if v, ok := specified["visibility"]; ok {
		switch v = strings.ToLower(v); v {
		case "visible", "hidden", "collapse":
			c.visibility = v
		}
	}
	if v, ok := specified["opacity"]; ok {
		if f, ok := parseNumber(v, 1); ok {
			c.opacity = strconv.FormatFloat(min(max(f, 0), 1), 'f', -1, 64)
		}
	}
	if v, ok := specified["color"]; ok {
		if col, ok := parseColor(v); ok {
			c.color = col
		}
	}
	if v, ok := specified["font-size"]; ok {
		if f, ok := parseFontSize(v, parent.fontSize); ok {
			c.fontSize = f
		}
	}
	if v, ok := specified["font-weight"]; ok {
		if w, ok := parseFontWeight(v, parent.fontWeight); ok {
			c.fontWeight = w
		}
	}
	for _, prop := range []string{"background", "background-color"} {
		if v, ok := specified[prop]; ok {
			if col, ok := backgroundColor(v); ok {
				c.background = col
			}
		}
	}
	return c
}

// parseFontSize resolves a font-size value to CSS pixels.
func parseFontSize(v string, parentSize float64) (float64, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	if size, ok := fontSizeKeywords[v]; ok {
		return size, true
	}
	switch v {
	case "smaller":
		return parentSize / 1.2, true
	case "larger":
		return parentSize * 1.2, true
	}

	units := []struct {
		suffix string
		scale  float64
	}{
		{"px", 1},
		{"rem", DefaultFontSize},
		{"em", parentSize},
		{"pt", 4.0 / 3},
		{"%", parentSize / 100},
	}
	for _, u := range units {
		if n, ok := strings.CutSuffix(v, u.suffix); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return 0, false
			}
			return f * u.scale, true
		}
	}
	return 0, false
}

// parseFontWeight resolves a font-weight value to its numeric form.
func parseFontWeight(v string, parentWeight int) (int, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "normal":
		return 400, true
	case "bold":
		return 700, true
	case "bolder":
		switch {
		case parentWeight < 400:
			return 400, true
		case parentWeight < 600:
			return 700, true
		}
		return 900, true
	case "lighter":
		if parentWeight > 500 {
			return 400, true
		}
		return 100, true
	}
	w, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || w < 1 || w > 1000 {
		return 0, false
	}
	return w, true
}

func attr(h *html.Node, name string) string {
	for _, a := range h.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(h *html.Node, name string) bool {
	for _, a := range h.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
