package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/grabbr"
	grabbrcsv "github.com/fwojciec/grabbr/csv"
	grabbretree "github.com/fwojciec/grabbr/etree"
	"github.com/fwojciec/grabbr/fs"
)

// exporterFor returns the exporter for a structured output format.
func exporterFor(format string, opts grabbr.Options, study bool) (grabbr.Exporter, error) {
	switch format {
	case "preview":
		return grabbr.PreviewExporter{Options: grabbr.PreviewOptions{Numbering: opts.KeepNumbering, Study: study}}, nil
	case "markdown":
		return grabbr.MarkdownExporter{Numbering: opts.KeepNumbering}, nil
	case "json":
		return grabbr.JSONExporter{}, nil
	case "csv":
		return grabbrcsv.Exporter{}, nil
	case "moodle":
		return grabbretree.MoodleExporter{}, nil
	}
	return nil, grabbr.Errorf(grabbr.EINVALID, "unknown export format %q", format)
}

// writeItems exports items to output, or to stdout when output is empty.
func writeItems(stdout io.Writer, output string, exporter grabbr.Exporter, items []grabbr.Item) error {
	if output == "" {
		return exporter.Export(stdout, items)
	}
	if err := fs.WriteFile(output, exporter, items); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	return nil
}

// filterItems applies a preview search when query is set.
func filterItems(items []grabbr.Item, query string) []grabbr.Item {
	if query == "" {
		return items
	}
	return grabbr.SearchItems(items, query)
}
