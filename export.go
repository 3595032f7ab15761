package grabbr

import (
	"encoding/json"
	"io"
)

// Exporter writes structured items in a file format.
type Exporter interface {
	// Export writes items to w.
	Export(w io.Writer, items []Item) error

	// Extension returns the file extension for the format, including the dot.
	Extension() string
}

// MarkdownExporter writes items with FormatMarkdown.
type MarkdownExporter struct {
	Numbering bool
}

// Export writes the Markdown study sheet to w.
func (e MarkdownExporter) Export(w io.Writer, items []Item) error {
	_, err := io.WriteString(w, FormatMarkdown(items, e.Numbering))
	return err
}

// Extension returns ".md".
func (MarkdownExporter) Extension() string { return ".md" }

// JSONExporter writes items as an indented JSON array.
type JSONExporter struct{}

// Export encodes items to w.
func (JSONExporter) Export(w io.Writer, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// Extension returns ".json".
func (JSONExporter) Extension() string { return ".json" }

// PreviewExporter writes items with RenderPreview.
type PreviewExporter struct {
	Options PreviewOptions
}

// Export writes the preview text followed by a newline.
func (e PreviewExporter) Export(w io.Writer, items []Item) error {
	_, err := io.WriteString(w, RenderPreview(items, e.Options)+"\n")
	return err
}

// Extension returns ".txt".
func (PreviewExporter) Extension() string { return ".txt" }
