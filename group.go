package grabbr

import "encoding/json"

// Item is one element of structured output: either a *QuestionGroup or a
// passthrough *Candidate.
type Item interface {
	item()
}

// Choice is one option of a question group.
type Choice struct {
	Text     string `json:"text"`
	IsAnswer bool   `json:"isAnswer"`
}

// QuestionGroup is a question candidate folded together with the run of
// choice candidates that immediately follows it.
type QuestionGroup struct {
	Question     string   `json:"question"`
	Choices      []Choice `json:"choices"`
	ImageCaption string   `json:"imageCaption,omitempty"`
}

func (*QuestionGroup) item() {}

// MarshalJSON encodes the group with a "type" discriminator of "question".
func (g QuestionGroup) MarshalJSON() ([]byte, error) {
	type plain QuestionGroup
	if g.Choices == nil {
		g.Choices = []Choice{}
	}
	return json.Marshal(struct {
		Type Role `json:"type"`
		plain
	}{RoleQuestion, plain(g)})
}

// Group folds an ordered candidate sequence into question groups and
// passthrough candidates. A question opens a group, following choices join
// it, and anything else closes it. Choices with no open group pass through.
func Group(candidates []Candidate) []Item {
	var items []Item
	var open *QuestionGroup

	flush := func() {
		if open != nil {
			items = append(items, open)
			open = nil
		}
	}

	for _, c := range candidates {
		switch {
		case c.Role == RoleQuestion:
			flush()
			open = &QuestionGroup{
				Question:     c.Text,
				Choices:      []Choice{},
				ImageCaption: c.ImageCaption,
			}
		case c.Role == RoleChoice && open != nil:
			open.Choices = append(open.Choices, Choice{Text: c.Text, IsAnswer: c.IsLikelyAnswer})
		default:
			flush()
			items = append(items, &c)
		}
	}
	flush()

	return items
}

// DecodeItems decodes a JSON array produced by encoding a []Item.
func DecodeItems(data []byte) ([]Item, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Errorf(EINVALID, "invalid items JSON: %v", err)
	}

	items := make([]Item, 0, len(raw))
	for _, msg := range raw {
		var head struct {
			Type Role `json:"type"`
		}
		if err := json.Unmarshal(msg, &head); err != nil {
			return nil, Errorf(EINVALID, "invalid item: %v", err)
		}

		// Question candidates never pass through the grouper on their own.
		if head.Type == RoleQuestion {
			var g QuestionGroup
			if err := json.Unmarshal(msg, &g); err != nil {
				return nil, Errorf(EINVALID, "invalid question group: %v", err)
			}
			items = append(items, &g)
			continue
		}

		var c Candidate
		if err := json.Unmarshal(msg, &c); err != nil {
			return nil, Errorf(EINVALID, "invalid candidate: %v", err)
		}
		items = append(items, &c)
	}
	return items, nil
}
