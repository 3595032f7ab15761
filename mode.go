package grabbr

import "unicode/utf8"

// Smart mode keeps a text candidate only when it sits within
// SmartProximity of the last kept question or choice and is shorter than
// SmartMaxTextLength.
const (
	SmartProximity     = 25
	SmartMaxTextLength = 300
)

// FilterByMode reduces an ordered candidate sequence according to mode.
// Unknown modes behave as ModeFull. The input slice is not modified.
func FilterByMode(candidates []Candidate, mode Mode) []Candidate {
	switch mode {
	case ModeSmart:
		return filterSmart(candidates)
	case ModeReviewer, ModeFlashcard:
		return filterStudy(candidates)
	default:
		return candidates
	}
}

// smartState is the accumulator of the smart fold: the role and vertical
// position of the last included candidate.
type smartState struct {
	role Role
	y    float64
}

func (s smartState) accepts(c Candidate) bool {
	switch c.Role {
	case RoleQuestion, RoleChoice:
		return true
	case RoleText:
		if s.role != RoleQuestion && s.role != RoleChoice {
			return false
		}
		return c.Position.Y-s.y < SmartProximity && utf8.RuneCountInString(c.Text) < SmartMaxTextLength
	}
	return false
}

func filterSmart(candidates []Candidate) []Candidate {
	result := make([]Candidate, 0, len(candidates))
	var state smartState
	for _, c := range candidates {
		if !state.accepts(c) {
			continue
		}
		result = append(result, c)
		state = smartState{role: c.Role, y: c.Position.Y}
	}
	return result
}

func filterStudy(candidates []Candidate) []Candidate {
	result := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		switch c.Role {
		case RoleQuestion, RoleChoice, RoleTerm, RoleDefinition, RoleTermDef:
			result = append(result, c)
		}
	}
	return result
}
