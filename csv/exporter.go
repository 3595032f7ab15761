// Package csv exports study items as comma-separated rows for spreadsheets.
package csv

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/fwojciec/grabbr"
)

// Header is the first row of every export.
var Header = []string{"Type", "Question", "Content/Choices"}

// ChoiceSeparator joins the choices of a question group into one cell.
const ChoiceSeparator = " | "

// Ensure Exporter implements grabbr.Exporter at compile time.
var _ grabbr.Exporter = Exporter{}

// Exporter writes one row per item: question groups as
// ("question", question, choices) and passthrough candidates as
// (role, "", text).
type Exporter struct{}

// Export writes the header and item rows to w.
func (Exporter) Export(w io.Writer, items []grabbr.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, item := range items {
		if err := cw.Write(row(item)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Extension returns ".csv".
func (Exporter) Extension() string { return ".csv" }

func row(item grabbr.Item) []string {
	switch it := item.(type) {
	case *grabbr.QuestionGroup:
		choices := make([]string, len(it.Choices))
		for i, c := range it.Choices {
			choices[i] = c.Text
		}
		return []string{string(grabbr.RoleQuestion), it.Question, strings.Join(choices, ChoiceSeparator)}
	case *grabbr.Candidate:
		return []string{string(it.Role), "", it.Text}
	}
	return []string{"", "", ""}
}
