package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/contactcrawl"
)

var unsafeFilenameRE = regexp.MustCompile(`[^\w\-.]+`)

// SanitizeFilename replaces characters unsafe in filenames with underscores.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	return unsafeFilenameRE.ReplaceAllString(name, "_")
}

// ResultWriter writes finished batch artifacts as JSON files.
type ResultWriter struct {
	dir string
	now func() time.Time
}

// NewResultWriter creates a ResultWriter writing to dir.
func NewResultWriter(dir string) *ResultWriter {
	return &ResultWriter{dir: dir, now: time.Now}
}

// batchFile is the full-results file shape: the report first, then every
// site result.
type batchFile struct {
	Report  contactcrawl.Report        `json:"report"`
	Results []*contactcrawl.SiteResult `json:"results"`
}

// WriteBatch writes the complete results with their report and returns the
// file path.
func (w *ResultWriter) WriteBatch(results []*contactcrawl.SiteResult, report contactcrawl.Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(batchFile{Report: report, Results: results}, "", "  ")
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("scraping_results_%s.json", w.now().Format("20060102_150405"))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// WriteExport writes the simplified per-site records for one job and
// returns the file path. Export IDs are assigned by position, starting
// at 1.
func (w *ResultWriter) WriteExport(name, jobID string, results []*contactcrawl.SiteResult) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", err
	}

	exports := make([]contactcrawl.Export, 0, len(results))
	for i, result := range results {
		exports = append(exports, result.Export(i+1))
	}

	data, err := json.MarshalIndent(exports, "", "  ")
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("scraping_%s_%s.json", SanitizeFilename(name), SanitizeFilename(jobID))
	path := filepath.Join(w.dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
