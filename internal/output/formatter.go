package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/obbbcalc/internal/domain"
)

// Formatter renders an estimate summary into a document
type Formatter interface {
	Name() string
	Format(summary *domain.EstimateSummary) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(summary *domain.EstimateSummary) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(summary *domain.EstimateSummary) ([]byte, error) {
	return f.F(summary)
}

var formatters = map[string]Formatter{
	"console": ConsoleFormatter{},
	"json":    JSONFormatter{Pretty: true},
	"csv":     CSVFormatter{},
	"html":    HTMLFormatter{},
	"pdf":     PDFFormatter{},
}

var aliases = map[string]string{
	"text":    "console",
	"summary": "console",
}

var extensions = map[string]string{
	"console": "txt",
	"json":    "json",
	"csv":     "csv",
	"html":    "html",
	"pdf":     "pdf",
}

// GetFormatterByName returns the formatter for a name or alias, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists the registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extension returns the file extension used for a formatter's output
func Extension(f Formatter) string {
	if ext, ok := extensions[f.Name()]; ok {
		return ext
	}
	return "txt"
}

// Stamp sets the reference ID and generation time on a summary that does
// not already carry them.
func Stamp(summary *domain.EstimateSummary, now time.Time) {
	if summary.Reference == "" {
		summary.Reference = uuid.NewString()
	}
	if summary.GeneratedAt.IsZero() {
		summary.GeneratedAt = now
	}
}

// WriteFormatted runs the formatter and writes a timestamped file into dir
// (the working directory when dir is empty). It returns the file path.
func WriteFormatted(f Formatter, summary *domain.EstimateSummary, dir, ext string) (string, error) {
	data, err := f.Format(summary)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("deduction_summary_%s.%s", time.Now().Format("20060102_150405"), ext)
	if dir != "" {
		filename = filepath.Join(dir, filename)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
