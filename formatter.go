package grabbr

import "strings"

// FormatTranscript renders an ordered candidate sequence as a linear,
// human-readable transcript. Each question starts a paragraph rendered as
// "Question: <text>", a run of choices is introduced by a "Choices:" line
// with each choice indented, and every other candidate is its own line.
// A blank line precedes each question and each non-choice candidate whose
// role differs from the previous one.
func FormatTranscript(candidates []Candidate) string {
	var b strings.Builder
	var last Role

	for _, c := range candidates {
		switch c.Role {
		case RoleQuestion:
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString("Question: ")
			b.WriteString(c.Text)
			b.WriteString("\n")
		case RoleChoice:
			if last != RoleChoice {
				b.WriteString("Choices:\n")
			}
			b.WriteString("   ")
			b.WriteString(c.Text)
			b.WriteString("\n")
		default:
			if b.Len() > 0 && last != c.Role {
				b.WriteString("\n")
			}
			b.WriteString(c.Text)
			b.WriteString("\n")
		}
		last = c.Role
	}

	return strings.TrimSpace(b.String())
}
