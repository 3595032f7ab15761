// Package grabbr extracts structured study content (questions, choices,
// term/definition pairs and plain text) from rendered quiz and course pages
// without site-specific scrapers.
//
// This package contains domain types, interfaces and the pure,
// candidate-level stages of the pipeline (ordering, mode filtering,
// deduplication, grouping and formatting) following Ben Johnson's Standard
// Package Layout. Implementations that touch a document tree or an outside
// system live in subdirectories named after their primary dependency
// (e.g., goquery/, rod/, sqlite/).
package grabbr
