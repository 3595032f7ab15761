package extract

import (
	"regexp"
	"strings"

	"github.com/fwojciec/grabbr"
)

// successColorPatterns match computed text colors sites use to mark a
// correct answer.
var successColorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^rgb\(0, 1\d\d, \d+\)$`),
	regexp.MustCompile(`^rgb\(3, 1\d\d, \d+\)$`),
	regexp.MustCompile(`^rgba\(0, 2\d\d, \d+, [\d.]+\)$`),
	regexp.MustCompile(`^rgb\(40, 167, 69\)$`),
	regexp.MustCompile(`^rgb\(25, 135, 84\)$`),
	regexp.MustCompile(`^rgb\(22, 163, 74\)$`),
}

// BoldWeight is the lowest font weight treated as emphasis.
const BoldWeight = 600

var correctClassKeywords = []string{"correct", "success", "right"}

// IsLikelyAnswer reports whether a node classified as role carries a
// highlight signal (success green text, bold weight, or a "correct" class).
// It is always false for roles other than grabbr.RoleChoice.
func IsLikelyAnswer(n grabbr.Node, role grabbr.Role, style grabbr.Style) bool {
	if role != grabbr.RoleChoice {
		return false
	}
	return IsSuccessColor(style.Color) ||
		style.FontWeight >= BoldWeight ||
		containsAny(strings.ToLower(n.ClassName()), correctClassKeywords)
}

// IsSuccessColor reports whether a computed color is a recognized
// "success green".
func IsSuccessColor(color string) bool {
	color = strings.TrimSpace(color)
	for _, re := range successColorPatterns {
		if re.MatchString(color) {
			return true
		}
	}
	return false
}
