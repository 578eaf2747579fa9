// Package export writes the day's state to files: the Markdown summary, a
// PDF report, CSV rows and a JSON document.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alixocracy/jast/internal/summary"
)

// Format names an export file type.
type Format string

const (
	Markdown Format = "md"
	PDF      Format = "pdf"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// Formats lists every format in menu order.
var Formats = []Format{Markdown, PDF, CSV, JSON}

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	if f == "markdown" {
		f = Markdown
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// FileName is the download name of d's export in format f.
func FileName(d summary.Day, f Format) string {
	return strings.TrimSuffix(summary.FileName(d), ".md") + "." + string(f)
}

// Write exports d into dir and returns the file path.
func Write(d summary.Day, f Format, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, FileName(d, f))

	var err error
	switch f {
	case Markdown:
		err = ToMarkdown(d, path)
	case PDF:
		err = ToPDF(d, path)
	case CSV:
		err = ToCSV(d, path)
	case JSON:
		err = ToJSON(d, path)
	default:
		return "", fmt.Errorf("unknown export format %q", f)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

// ToMarkdown writes the same text the summary copy action produces.
func ToMarkdown(d summary.Day, path string) error {
	if err := os.WriteFile(path, []byte(summary.Markdown(d)), 0o644); err != nil {
		return fmt.Errorf("write markdown file: %w", err)
	}
	return nil
}
