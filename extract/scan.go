package extract

import (
	"context"
	"fmt"

	"github.com/fwojciec/grabbr"
)

// ScanResult holds the candidates found by Scan in document order.
type ScanResult struct {
	Candidates []grabbr.Candidate

	// Skipped counts nodes whose style or geometry could not be read.
	Skipped int
}

// Scan visits every text-bearing node of doc and returns a candidate for
// each node that survives the noise filter, the geometry gate, text
// normalization and structural pruning. Nodes that fail to report style or
// geometry are skipped and counted rather than failing the scan.
func Scan(ctx context.Context, doc grabbr.Document, opts grabbr.Options) (*ScanResult, error) {
	nodes, err := doc.Nodes(ctx, ScanTags)
	if err != nil {
		return nil, fmt.Errorf("listing nodes: %w", err)
	}

	result := &ScanResult{}
	for _, n := range nodes {
		c, ok, err := scanNode(n, opts)
		if err != nil {
			result.Skipped++
			continue
		}
		if ok {
			result.Candidates = append(result.Candidates, c)
		}
	}
	return result, nil
}

// scanNode returns the candidate for n, whether n produced one, and any
// environment error encountered while reading it.
func scanNode(n grabbr.Node, opts grabbr.Options) (grabbr.Candidate, bool, error) {
	style, err := n.Style()
	if err != nil {
		return grabbr.Candidate{}, false, err
	}

	if ShouldIgnore(n, style) {
		return grabbr.Candidate{}, false, nil
	}

	rect, err := n.Rect()
	if err != nil {
		return grabbr.Candidate{}, false, err
	}

	if !PassesGeometry(rect, style, opts.IgnoreTinyText) {
		return grabbr.Candidate{}, false, nil
	}

	text := VisibleText(n)
	if text == "" {
		return grabbr.Candidate{}, false, nil
	}

	if HasSignificantChildren(n) {
		return grabbr.Candidate{}, false, nil
	}

	role := Classify(n, text)
	return grabbr.Candidate{
		Text:           text,
		Role:           role,
		Position:       grabbr.Point{X: rect.X, Y: rect.Y},
		IsLikelyAnswer: IsLikelyAnswer(n, role, style),
		ImageCaption:   NearbyImageCaption(n),
	}, true, nil
}
