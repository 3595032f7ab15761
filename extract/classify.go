package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/grabbr"
)

// Rule assigns Role to a node when Match returns true.
type Rule struct {
	Name  string
	Role  grabbr.Role
	Match func(n grabbr.Node, text string) bool
}

// Rules is the classifier's decision list. The first matching rule wins;
// nodes no rule matches are grabbr.RoleText. Question detection runs before
// choice detection so numbered questions are not read as choices.
var Rules = []Rule{
	{Name: "question", Role: grabbr.RoleQuestion, Match: isQuestion},
	{Name: "choice", Role: grabbr.RoleChoice, Match: isChoice},
	{Name: "term", Role: grabbr.RoleTerm, Match: hasTag("dt")},
	{Name: "definition", Role: grabbr.RoleDefinition, Match: hasTag("dd")},
	{Name: "term-def", Role: grabbr.RoleTermDef, Match: isTermDef},
	{Name: "header", Role: grabbr.RoleHeader, Match: hasTag("h1", "h2", "h3", "h4", "h5", "h6")},
	{Name: "list-item", Role: grabbr.RoleListItem, Match: hasTag("li")},
}

// Classify returns the role of the first rule in Rules that matches n.
func Classify(n grabbr.Node, text string) grabbr.Role {
	text = strings.TrimSpace(text)
	for _, r := range Rules {
		if r.Match(n, text) {
			return r.Role
		}
	}
	return grabbr.RoleText
}

var (
	questionPrefixRe = regexp.MustCompile(`(?i)^(Q\d+|Question\s?\d+|\d+[.)]|\(\d+\))\s+`)
	choicePrefixRe   = regexp.MustCompile(`^([A-Ea-e\d][.)]|\([A-Ea-e\d]\))\s+`)
)

// MinQuestionLength is the length a sentence ending in "?" must exceed to
// count as a question.
const MinQuestionLength = 12

// MaxChoiceLength bounds the text of a choice.
const MaxChoiceLength = 500

// MaxTermLength bounds the term half of a "term: definition" line.
const MaxTermLength = 40

var questionClassKeywords = []string{"question", "prompt", "qtext"}

func isQuestion(n grabbr.Node, text string) bool {
	if questionPrefixRe.MatchString(text) {
		return true
	}

	if strings.HasSuffix(text, "?") && utf8.RuneCountInString(text) > MinQuestionLength &&
		!strings.HasPrefix(text, "A.") && !strings.HasPrefix(text, "B.") {
		return true
	}

	return containsAny(strings.ToLower(n.ClassName()), questionClassKeywords)
}

var choiceKeywords = []string{"choice", "option", "answer", "radio", "check", "r0", "r1", "item"}

var choiceContextTags = map[string]bool{"li": true, "label": true, "div": true, "span": true}

func isChoice(n grabbr.Node, text string) bool {
	if utf8.RuneCountInString(text) >= MaxChoiceLength {
		return false
	}

	if choicePrefixRe.MatchString(text) {
		return true
	}

	if choiceContextTags[n.Tag()] && inChoiceContext(n) {
		return true
	}

	if n.Tag() == "label" {
		if target, ok := n.Attr("for"); ok && target != "" {
			return true
		}
	}

	return parentHasToggle(n)
}

// inChoiceContext reports whether the node's class or id, or its parent's
// class, names a choice-like container.
func inChoiceContext(n grabbr.Node) bool {
	class := strings.ToLower(n.ClassName())
	id := strings.ToLower(n.ID())
	var parentClass string
	if p := n.Parent(); p != nil {
		parentClass = strings.ToLower(p.ClassName())
	}
	return containsAny(class, choiceKeywords) ||
		containsAny(parentClass, choiceKeywords) ||
		containsAny(id, choiceKeywords)
}

// parentHasToggle reports whether the node's parent contains a radio
// button or checkbox.
func parentHasToggle(n grabbr.Node) bool {
	p := n.Parent()
	if p == nil {
		return false
	}
	for _, d := range p.Descendants() {
		if d.Tag() != "input" {
			continue
		}
		typ, _ := d.Attr("type")
		typ = strings.ToLower(typ)
		if typ == "radio" || typ == "checkbox" {
			return true
		}
	}
	return false
}

var termSeparatorRe = regexp.MustCompile(`[:–—-]`)

func isTermDef(_ grabbr.Node, text string) bool {
	if !strings.Contains(text, " – ") && !strings.Contains(text, " — ") && !strings.Contains(text, ": ") {
		return false
	}
	parts := termSeparatorRe.Split(text, -1)
	return len(parts) > 1 && utf8.RuneCountInString(parts[0]) < MaxTermLength
}

func hasTag(tags ...string) func(grabbr.Node, string) bool {
	return func(n grabbr.Node, _ string) bool {
		tag := n.Tag()
		for _, t := range tags {
			if tag == t {
				return true
			}
		}
		return false
	}
}
