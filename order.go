package grabbr

import (
	"cmp"
	"math"
	"slices"
)

// RowBand is the vertical distance below which two candidates are treated
// as sitting on the same row and ordered left to right.
const RowBand = 10

// CompareReadingOrder orders a before b in natural reading order: top to
// bottom, then left to right for candidates within RowBand of each other.
func CompareReadingOrder(a, b Candidate) int {
	dy := a.Position.Y - b.Position.Y
	if math.Abs(dy) < RowBand {
		return cmp.Compare(a.Position.X, b.Position.X)
	}
	return cmp.Compare(a.Position.Y, b.Position.Y)
}

// SortReadingOrder sorts candidates in place into reading order.
// Candidates that compare equal keep their document order.
func SortReadingOrder(candidates []Candidate) {
	slices.SortStableFunc(candidates, CompareReadingOrder)
}
