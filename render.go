package grabbr

import (
	"strconv"
	"strings"
)

// AnswerMark is appended to likely answers in study previews.
const AnswerMark = " [✓ Correct?]"

// PreviewOptions controls RenderPreview.
type PreviewOptions struct {
	// Numbering prefixes each question with its 1-based index.
	Numbering bool

	// Study marks likely answers with AnswerMark.
	Study bool
}

// RenderPreview renders structured items as a readable preview.
func RenderPreview(items []Item, opts PreviewOptions) string {
	var b strings.Builder
	n := 0

	for _, it := range items {
		switch v := it.(type) {
		case *QuestionGroup:
			n++
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			if v.ImageCaption != "" {
				b.WriteString(v.ImageCaption + "\n")
			}
			b.WriteString("Question: " + numberPrefix(opts.Numbering, n) + v.Question + "\n")
			if len(v.Choices) > 0 {
				b.WriteString("Choices:\n")
				for _, c := range v.Choices {
					mark := ""
					if c.IsAnswer && opts.Study {
						mark = AnswerMark
					}
					b.WriteString("   " + c.Text + mark + "\n")
				}
			}
		case *Candidate:
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			if v.ImageCaption != "" {
				b.WriteString(v.ImageCaption + "\n")
			}
			b.WriteString(v.Text + "\n")
		}
	}

	return strings.TrimSpace(b.String())
}

// FormatMarkdown renders structured items as a Markdown study sheet with
// questions as headings and choices as task-list entries.
func FormatMarkdown(items []Item, numbering bool) string {
	var b strings.Builder
	b.WriteString("# grabbr Export\n\n")
	n := 0

	for _, it := range items {
		switch v := it.(type) {
		case *QuestionGroup:
			n++
			if v.ImageCaption != "" {
				b.WriteString("> " + v.ImageCaption + "\n\n")
			}
			b.WriteString("### " + numberPrefix(numbering, n) + v.Question + "\n")
			for _, c := range v.Choices {
				b.WriteString("- [ ] " + c.Text + "\n")
			}
			b.WriteString("\n")
		case *Candidate:
			if v.ImageCaption != "" {
				b.WriteString("> " + v.ImageCaption + "\n\n")
			}
			b.WriteString(v.Text + "\n\n")
		}
	}

	return b.String()
}

// SearchItems returns the items whose text, question or any choice
// contains query, ignoring case. An empty query matches everything.
func SearchItems(items []Item, query string) []Item {
	query = strings.ToLower(query)
	var result []Item
	for _, it := range items {
		if itemContains(it, query) {
			result = append(result, it)
		}
	}
	return result
}

func itemContains(it Item, query string) bool {
	switch v := it.(type) {
	case *QuestionGroup:
		if strings.Contains(strings.ToLower(v.Question), query) {
			return true
		}
		for _, c := range v.Choices {
			if strings.Contains(strings.ToLower(c.Text), query) {
				return true
			}
		}
	case *Candidate:
		return strings.Contains(strings.ToLower(v.Text), query)
	}
	return false
}

func numberPrefix(enabled bool, n int) string {
	if !enabled {
		return ""
	}
	return strconv.Itoa(n) + ". "
}
