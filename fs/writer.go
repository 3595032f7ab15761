// Package fs writes exported study items to the local filesystem.
package fs

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fwojciec/grabbr"
)

// URLToPath converts a page URL to a relative file path with the given
// extension. Example: https://example.com/quiz/ch3 → quiz/ch3.json
func URLToPath(rawURL, ext string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	p := u.Path

	// Handle root or trailing slash → index
	if p == "" || p == "/" {
		return "index" + ext, nil
	}

	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("path traversal in URL %q", rawURL)
		}
	}

	p = strings.TrimPrefix(p, "/")

	if strings.HasSuffix(p, "/") {
		return p + "index" + ext, nil
	}

	// Drop an existing page extension so quiz.html becomes quiz.json.
	if e := path.Ext(p); e == ".html" || e == ".htm" || e == ".php" || e == ".aspx" {
		p = strings.TrimSuffix(p, e)
	}

	return p + ext, nil
}

// WriteFile exports items to name atomically: the export is written to a
// temporary file in the same directory and renamed over name only when it
// is complete.
func WriteFile(name string, exporter grabbr.Exporter, items []grabbr.Item) (err error) {
	dir := filepath.Dir(name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err := exporter.Export(tmp, items); err != nil {
		return fmt.Errorf("exporting %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}
