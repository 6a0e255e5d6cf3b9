// Package persist writes the planning report and its summary to disk.
package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	timestampLayout = "20060102_150405"
	reportExt       = ".json"
	summarySuffix   = "_summary.md"
)

// ReportPath returns <dir>/<project>_plan_<YYYYMMDD_HHMMSS>.json, with hyphens
// in the project name replaced by underscores.
func ReportPath(dir, projectName string, at time.Time) string {
	stem := strings.ReplaceAll(projectName, "-", "_")
	return filepath.Join(dir, fmt.Sprintf("%s_plan_%s%s", stem, at.Format(timestampLayout), reportExt))
}

// SummaryPath derives the summary path from a report path.
func SummaryPath(reportPath string) string {
	return strings.TrimSuffix(reportPath, reportExt) + summarySuffix
}

// EncodeReport renders v as 2-space indented JSON. Non-ASCII text and HTML
// characters are written as-is. Keys of collaborator objects come out sorted.
func EncodeReport(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteReport encodes v and overwrites path with it.
func WriteReport(path string, v any) error {
	data, err := EncodeReport(v)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// WriteSummary overwrites path with the summary text.
func WriteSummary(path, summary string) error {
	return writeFile(path, []byte(summary))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
