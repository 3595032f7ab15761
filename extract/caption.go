package extract

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/grabbr"
)

// MinCaptionLength is the length an image description must exceed.
const MinCaptionLength = 3

// NearbyImageCaption returns a "[Visual Content: ...]" caption built from
// the first image under n's parent that has a usable alt, aria-label or
// title, or "" if there is none.
func NearbyImageCaption(n grabbr.Node) string {
	p := n.Parent()
	if p == nil {
		return ""
	}
	for _, d := range p.Descendants() {
		if d.Tag() != "img" {
			continue
		}
		desc := strings.TrimSpace(imageDescription(d))
		if utf8.RuneCountInString(desc) > MinCaptionLength {
			return "[Visual Content: " + desc + "]"
		}
	}
	return ""
}

func imageDescription(img grabbr.Node) string {
	for _, attr := range []string{"alt", "aria-label", "title"} {
		if v, ok := img.Attr(attr); ok && v != "" {
			return v
		}
	}
	return ""
}
