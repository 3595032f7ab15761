package grabbr_test

import (
	"testing"

	"github.com/fwojciec/grabbr"
	"github.com/stretchr/testify/assert"
)

func TestFormatTranscript(t *testing.T) {
	t.Parallel()

	t.Run("formats a question with choices", func(t *testing.T) {
		t.Parallel()

		in := []grabbr.Candidate{
			{Text: "1. What is 2+2?", Role: grabbr.RoleQuestion},
			{Text: "A) 3", Role: grabbr.RoleChoice},
			{Text: "B) 4", Role: grabbr.RoleChoice},
		}

		expected := "Question: 1. What is 2+2?\nChoices:\n   A) 3\n   B) 4"
		assert.Equal(t, expected, grabbr.FormatTranscript(in))
	})

	t.Run("separates questions with a blank line", func(t *testing.T) {
		t.Parallel()

		in := []grabbr.Candidate{
			{Text: "Q1 first", Role: grabbr.RoleQuestion},
			{Text: "A) yes", Role: grabbr.RoleChoice},
			{Text: "Q2 second", Role: grabbr.RoleQuestion},
		}

		expected := "Question: Q1 first\nChoices:\n   A) yes\n\nQuestion: Q2 second"
		assert.Equal(t, expected, grabbr.FormatTranscript(in))
	})

	t.Run("separates blocks of different roles", func(t *testing.T) {
		t.Parallel()

		in := []grabbr.Candidate{
			{Text: "Chapter", Role: grabbr.RoleHeader},
			{Text: "Line one", Role: grabbr.RoleText},
			{Text: "Line two", Role: grabbr.RoleText},
			{Text: "Q1 first", Role: grabbr.RoleQuestion},
			{Text: "Explanation", Role: grabbr.RoleText},
		}

		expected := "Chapter\n\nLine one\nLine two\n\nQuestion: Q1 first\n\nExplanation"
		assert.Equal(t, expected, grabbr.FormatTranscript(in))
	})

	t.Run("introduces orphan choices", func(t *testing.T) {
		t.Parallel()

		in := []grabbr.Candidate{{Text: "A) alone", Role: grabbr.RoleChoice}}

		assert.Equal(t, "Choices:\n   A) alone", grabbr.FormatTranscript(in))
	})

	t.Run("returns empty string for no candidates", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, grabbr.FormatTranscript(nil))
	})
}
