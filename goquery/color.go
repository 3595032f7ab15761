package goquery

import (
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// rgba is a parsed CSS color. A is in [0, 1].
type rgba struct {
	R, G, B int
	A       float64
}

var transparent = rgba{}

var black = rgba{A: 1}

// String formats the color the way browsers report computed colors.
func (c rgba) String() string {
	if c.A >= 1 {
		return "rgb(" + strconv.Itoa(c.R) + ", " + strconv.Itoa(c.G) + ", " + strconv.Itoa(c.B) + ")"
	}
	return "rgba(" + strconv.Itoa(c.R) + ", " + strconv.Itoa(c.G) + ", " + strconv.Itoa(c.B) + ", " +
		strconv.FormatFloat(c.A, 'f', -1, 64) + ")"
}

// parseColor parses a CSS color value: a named color, transparent, a hex
// color or an rgb()/rgba() function. Keywords that defer to another value
// (inherit, currentcolor) are reported as not parsed.
func parseColor(v string) (rgba, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch {
	case v == "":
		return rgba{}, false
	case v == "transparent":
		return transparent, true
	case strings.HasPrefix(v, "#"):
		return parseHexColor(v[1:])
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		return parseRGBFunc(v)
	}
	if c, ok := colornames.Map[v]; ok {
		return rgba{R: int(c.R), G: int(c.G), B: int(c.B), A: float64(c.A) / 255}, true
	}
	return rgba{}, false
}

func parseHexColor(h string) (rgba, bool) {
	switch len(h) {
	case 3, 4:
		expanded := make([]byte, 0, len(h)*2)
		for i := 0; i < len(h); i++ {
			expanded = append(expanded, h[i], h[i])
		}
		h = string(expanded)
	case 6, 8:
	default:
		return rgba{}, false
	}

	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return rgba{}, false
	}
	if len(h) == 6 {
		return rgba{R: int(n >> 16 & 0xff), G: int(n >> 8 & 0xff), B: int(n & 0xff), A: 1}, true
	}
	return rgba{
		R: int(n >> 24 & 0xff),
		G: int(n >> 16 & 0xff),
		B: int(n >> 8 & 0xff),
		A: float64(n&0xff) / 255,
	}, true
}

// parseRGBFunc parses both the comma form "rgb(1, 2, 3)" and the space form
// "rgb(1 2 3 / 50%)".
func parseRGBFunc(v string) (rgba, bool) {
	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end < open {
		return rgba{}, false
	}
	fields := strings.FieldsFunc(v[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) != 3 && len(fields) != 4 {
		return rgba{}, false
	}

	var c rgba
	channels := []*int{&c.R, &c.G, &c.B}
	for i, ch := range channels {
		f, ok := parseNumber(fields[i], 255)
		if !ok {
			return rgba{}, false
		}
		*ch = clamp(int(f+0.5), 0, 255)
	}

	c.A = 1
	if len(fields) == 4 {
		a, ok := parseNumber(fields[3], 1)
		if !ok {
			return rgba{}, false
		}
		c.A = min(max(a, 0), 1)
	}
	return c, true
}

// parseNumber parses a number or a percentage of full.
func parseNumber(s string, full float64) (float64, bool) {
	if p, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, false
		}
		return f / 100 * full, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// backgroundColor finds the color in a background or background-color
// value, e.g. "url(x.png) no-repeat #fff".
func backgroundColor(v string) (rgba, bool) {
	if c, ok := parseColor(v); ok {
		return c, true
	}
	depth := 0
	start := -1
	for i, r := range v + " " {
		switch {
		case r == '(':
			depth++
		case r == ')':
			depth--
		case r == ' ' && depth == 0:
			if start >= 0 {
				if c, ok := parseColor(v[start:i]); ok {
					return c, true
				}
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	return rgba{}, false
}
