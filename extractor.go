package grabbr

import "context"

// Result is the outcome of one extraction call.
type Result struct {
	// Format is the shape of the data: Text is set for FormatText,
	// Items for FormatJSON.
	Format Format `json:"format"`
	Text   string `json:"text,omitempty"`
	Items  []Item `json:"items,omitempty"`

	// Theme is the ambient appearance of the scanned page.
	Theme Theme `json:"theme"`

	// Candidates is the number of candidates that reached the output stage.
	Candidates int `json:"candidates"`

	// Skipped counts nodes dropped because they could not be measured.
	Skipped int `json:"skipped"`
}

// Extractor turns a document tree into study content.
type Extractor interface {
	// Extract expands disclosure widgets, scans doc, and returns content
	// reduced by mode and shaped by opts. A failed call returns no result.
	Extract(ctx context.Context, doc Document, mode Mode, opts Options) (*Result, error)
}
