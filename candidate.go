package grabbr

import "unicode/utf8"

// Role is the semantic classification of a candidate.
type Role string

// Roles assigned by the classifier.
const (
	RoleQuestion   Role = "question"
	RoleChoice     Role = "choice"
	RoleTerm       Role = "term"
	RoleDefinition Role = "definition"
	RoleTermDef    Role = "term-def"
	RoleHeader     Role = "header"
	RoleListItem   Role = "list-item"
	RoleText       Role = "text"
)

// MinTextLength is the shortest text a candidate may carry.
const MinTextLength = 2

// Point is a document-space position used only for ordering.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Candidate is one text-bearing node that survived filtering, tagged with
// its semantic role. Candidates are values owned by a single extraction call.
type Candidate struct {
	Text     string `json:"text"`
	Role     Role   `json:"type"`
	Position Point  `json:"position"`

	// IsLikelyAnswer is only meaningful when Role is RoleChoice.
	IsLikelyAnswer bool `json:"isAnswer"`

	// ImageCaption describes a nearby image, if any.
	ImageCaption string `json:"imageCaption,omitempty"`
}

// Validate returns an error if the candidate violates its invariants.
func (c *Candidate) Validate() error {
	if utf8.RuneCountInString(c.Text) < MinTextLength {
		return Errorf(EINVALID, "candidate text must be at least %d characters", MinTextLength)
	}
	if c.Role == "" {
		return Errorf(EINVALID, "candidate role required")
	}
	return nil
}

func (*Candidate) item() {}
