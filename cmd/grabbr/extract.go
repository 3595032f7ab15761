package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/grabbr"
	"github.com/fwojciec/grabbr/goquery"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	mode, opts, err := c.resolve(deps.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
		return err
	}
	study := c.Study || deps.Config.Study

	var exporter grabbr.Exporter
	if c.Format == "text" {
		opts.Format = grabbr.FormatText
	} else {
		opts.Format = grabbr.FormatJSON
		if exporter, err = exporterFor(c.Format, opts, study); err != nil {
			return err
		}
	}

	doc, err := openTarget(deps, c.Target)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: could not open %s: %v\n", c.Target, err)
		return err
	}
	defer grabbr.ReleaseDocument(doc)

	res, err := deps.Extractor.Extract(deps.Ctx, doc, mode, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grabbr.ErrorMessage(err))
		return err
	}

	if exporter == nil {
		return writeText(deps, c.Output, res.Text)
	}
	return writeItems(deps.Stdout, c.Output, exporter, filterItems(res.Items, c.Search))
}

// isURL reports whether target names a web page rather than a local file.
func isURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// openTarget opens a URL through the configured source or parses a local
// HTML file statically.
func openTarget(deps *Dependencies, target string) (grabbr.Document, error) {
	if isURL(target) {
		return deps.Source.Open(deps.Ctx, target)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.Parse(string(data))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeText(deps *Dependencies, output, text string) error {
	if output == "" {
		_, err := fmt.Fprintln(deps.Stdout, text)
		return err
	}
	return os.WriteFile(output, []byte(text+"\n"), 0644)
}
