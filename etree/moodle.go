// Package etree exports study items as a Moodle XML quiz.
//
// Question groups with at least one likely answer become multichoice
// questions; the marked choices share full credit. Every other item,
// including groups with no marked answer, becomes a description question
// so nothing extracted is lost on import.
package etree

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/beevik/etree"
	"github.com/fwojciec/grabbr"
)

// maxNameLength bounds the question name Moodle shows in its question bank.
const maxNameLength = 50

// Ensure MoodleExporter implements grabbr.Exporter at compile time.
var _ grabbr.Exporter = MoodleExporter{}

// MoodleExporter writes items in Moodle's XML question format.
type MoodleExporter struct {
	// Category, when set, files the questions under this question bank
	// category.
	Category string
}

// Export writes the quiz document to w.
func (e MoodleExporter) Export(w io.Writer, items []grabbr.Item) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	quiz := doc.CreateElement("quiz")

	if e.Category != "" {
		q := quiz.CreateElement("question")
		q.CreateAttr("type", "category")
		q.CreateElement("category").CreateElement("text").SetText("$course$/" + e.Category)
	}

	for i, item := range items {
		switch it := item.(type) {
		case *grabbr.QuestionGroup:
			if answers(it) > 0 {
				multichoice(quiz, i+1, it)
			} else {
				description(quiz, i+1, groupText(it))
			}
		case *grabbr.Candidate:
			text := it.Text
			if it.ImageCaption != "" {
				text = fmt.Sprintf("[Image: %s]\n%s", it.ImageCaption, text)
			}
			description(quiz, i+1, text)
		}
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w)
	return err
}

// Extension returns ".xml".
func (MoodleExporter) Extension() string { return ".xml" }

func answers(g *grabbr.QuestionGroup) int {
	n := 0
	for _, c := range g.Choices {
		if c.IsAnswer {
			n++
		}
	}
	return n
}

func multichoice(quiz *etree.Element, n int, g *grabbr.QuestionGroup) {
	q := quiz.CreateElement("question")
	q.CreateAttr("type", "multichoice")
	header(q, n, g.Question)

	text := g.Question
	if g.ImageCaption != "" {
		text = fmt.Sprintf("[Image: %s]\n%s", g.ImageCaption, text)
	}
	questionText(q, text)

	correct := answers(g)
	q.CreateElement("single").SetText(strconv.FormatBool(correct == 1))
	q.CreateElement("shuffleanswers").SetText("0")
	q.CreateElement("answernumbering").SetText("none")

	credit := fraction(100 / float64(correct))
	for _, c := range g.Choices {
		a := q.CreateElement("answer")
		if c.IsAnswer {
			a.CreateAttr("fraction", credit)
		} else {
			a.CreateAttr("fraction", "0")
		}
		a.CreateAttr("format", "plain_text")
		a.CreateElement("text").SetText(c.Text)
	}
}

func description(quiz *etree.Element, n int, text string) {
	q := quiz.CreateElement("question")
	q.CreateAttr("type", "description")
	header(q, n, text)
	questionText(q, text)
}

func header(q *etree.Element, n int, text string) {
	q.CreateElement("name").CreateElement("text").SetText(fmt.Sprintf("%d. %s", n, truncate(text)))
}

func questionText(q *etree.Element, text string) {
	qt := q.CreateElement("questiontext")
	qt.CreateAttr("format", "plain_text")
	qt.CreateElement("text").SetText(text)
}

func groupText(g *grabbr.QuestionGroup) string {
	var b strings.Builder
	if g.ImageCaption != "" {
		fmt.Fprintf(&b, "[Image: %s]\n", g.ImageCaption)
	}
	b.WriteString(g.Question)
	for _, c := range g.Choices {
		b.WriteString("\n")
		b.WriteString(c.Text)
	}
	return b.String()
}

// truncate shortens text to maxNameLength runes on its first line.
func truncate(text string) string {
	text, _, _ = strings.Cut(text, "\n")
	if utf8.RuneCountInString(text) <= maxNameLength {
		return text
	}
	return string([]rune(text)[:maxNameLength-1]) + "…"
}

// fraction formats a grade percentage the way Moodle writes them.
func fraction(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e5)/1e5, 'f', -1, 64)
}
