package grabbr

// Mode is a named filtering policy selecting which candidates survive.
type Mode string

// Supported modes. Any other value behaves as ModeFull.
const (
	ModeFull      Mode = "full"
	ModeSmart     Mode = "smart"
	ModeReviewer  Mode = "reviewer"
	ModeFlashcard Mode = "flashcard"
)

// Known reports whether m is one of the supported modes.
func (m Mode) Known() bool {
	switch m {
	case ModeFull, ModeSmart, ModeReviewer, ModeFlashcard:
		return true
	}
	return false
}

// Format selects the output shape of an extraction.
type Format string

// Output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures one extraction call. Values are read-only for the
// duration of the call.
type Options struct {
	RemoveDuplicates bool   `json:"removeDuplicates" yaml:"remove_duplicates"`
	KeepNumbering    bool   `json:"keepNumbering" yaml:"keep_numbering"`
	IgnoreTinyText   bool   `json:"ignoreTinyText" yaml:"ignore_tiny_text"`
	Format           Format `json:"format" yaml:"format"`

	// MergeBrokenSentences is accepted but reserved; it does not change output.
	MergeBrokenSentences bool `json:"mergeBrokenSentences" yaml:"merge_broken_sentences"`

	// IgnoreRepeatedHeaders is accepted but reserved; it does not change output.
	IgnoreRepeatedHeaders bool `json:"ignoreRepeatedHeaders" yaml:"ignore_repeated_headers"`
}

// DefaultOptions returns the options used when a caller supplies none.
func DefaultOptions() Options {
	return Options{
		IgnoreTinyText: true,
		Format:         FormatText,
	}
}

// OptionsOverride holds caller-supplied option values. Nil fields keep the
// value they are overlaid on.
type OptionsOverride struct {
	RemoveDuplicates      *bool   `json:"removeDuplicates,omitempty" yaml:"remove_duplicates"`
	KeepNumbering         *bool   `json:"keepNumbering,omitempty" yaml:"keep_numbering"`
	IgnoreTinyText        *bool   `json:"ignoreTinyText,omitempty" yaml:"ignore_tiny_text"`
	MergeBrokenSentences  *bool   `json:"mergeBrokenSentences,omitempty" yaml:"merge_broken_sentences"`
	IgnoreRepeatedHeaders *bool   `json:"ignoreRepeatedHeaders,omitempty" yaml:"ignore_repeated_headers"`
	Format                *Format `json:"format,omitempty" yaml:"format"`
}

// With returns a copy of o with every non-nil field of over applied.
func (o Options) With(over OptionsOverride) Options {
	if over.RemoveDuplicates != nil {
		o.RemoveDuplicates = *over.RemoveDuplicates
	}
	if over.KeepNumbering != nil {
		o.KeepNumbering = *over.KeepNumbering
	}
	if over.IgnoreTinyText != nil {
		o.IgnoreTinyText = *over.IgnoreTinyText
	}
	if over.MergeBrokenSentences != nil {
		o.MergeBrokenSentences = *over.MergeBrokenSentences
	}
	if over.IgnoreRepeatedHeaders != nil {
		o.IgnoreRepeatedHeaders = *over.IgnoreRepeatedHeaders
	}
	if over.Format != nil {
		o.Format = *over.Format
	}
	return o
}

// Validate returns an error if the options cannot be honored.
// An empty format means text.
func (o Options) Validate() error {
	switch o.Format {
	case "", FormatText, FormatJSON:
		return nil
	}
	return Errorf(EINVALID, "unsupported format %q", o.Format)
}
