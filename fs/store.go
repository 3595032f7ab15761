package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/grabbr"
)

// ExportStore collects the exports of a batch run in a directory with
// all-or-nothing semantics. Files are saved under baseDir/name.tmp and the
// whole directory replaces baseDir/name on Commit.
type ExportStore struct {
	baseDir  string
	name     string
	exporter grabbr.Exporter
}

// NewExportStore creates a new ExportStore writing with exporter.
func NewExportStore(baseDir, name string, exporter grabbr.Exporter) *ExportStore {
	return &ExportStore{
		baseDir:  baseDir,
		name:     name,
		exporter: exporter,
	}
}

func (s *ExportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ExportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save exports the items extracted from pageURL into the temp directory.
// Safe for concurrent use with distinct URLs.
func (s *ExportStore) Save(ctx context.Context, pageURL string, items []grabbr.Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	relPath, err := URLToPath(pageURL, s.exporter.Extension())
	if err != nil {
		return err
	}

	return WriteFile(filepath.Join(s.tempDir(), relPath), s.exporter, items)
}

// Commit replaces the final directory with the saved exports.
func (s *ExportStore) Commit() error {
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}

	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	return os.Rename(s.tempDir(), s.finalDir())
}

// Abort discards the saved exports.
func (s *ExportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

// Dir returns the directory exports land in after Commit.
func (s *ExportStore) Dir() string {
	return s.finalDir()
}
