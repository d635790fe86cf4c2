// Package source turns uploaded documents into plain itinerary text, one
// logical line per line, ready for itinerary.Parse.
package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dgallion1/tripgest/internal/itinerary"
)

// Extractor converts raw document bytes into itinerary text.
type Extractor interface {
	Extract(r io.Reader, filename string) (string, error)
}

// Options tunes extractors that shell out or need fallbacks.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions that can be imported.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".csv":
		return &CSVExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Extensions returns the supported extensions in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(SupportedExtensions))
	for e := range SupportedExtensions {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}

// ExtractFile opens path and runs the matching extractor.
func ExtractFile(path string, opts Options) (string, error) {
	ex, err := ForFile(path, opts)
	if err != nil {
		return "", err
	}
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return ex.Extract(f, filepath.Base(path))
}

// lines accumulates trimmed, non-empty output lines.
type lines struct {
	out []string
}

func (l *lines) add(s string) {
	for _, part := range strings.Split(s, "\n") {
		if part = strings.TrimSpace(part); part != "" {
			l.out = append(l.out, part)
		}
	}
}

func (l *lines) bullet(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		return
	}
	first, rest, _ := strings.Cut(s, "\n")
	l.out = append(l.out, "* "+strings.TrimSpace(first))
	l.add(rest)
}

func (l *lines) String() string {
	return strings.Join(l.out, "\n")
}

var dayCellRe = regexp.MustCompile(`(?i)^(?:day\s*)?(\d{1,2})$`)

// rows renders tabular itineraries (CSV files, DOCX tables) as the bullet
// lines the itinerary parser reads. A row with a clock cell becomes
// "* <Period> (<HH:MM>): <other cells>"; a leading day number emits a
// "Day N" line whenever it changes. Other rows pass through as text.
type rows struct {
	lines
	day int
}

func (r *rows) add(cells []string) {
	var trimmed []string
	for _, c := range cells {
		if c = strings.TrimSpace(c); c != "" {
			trimmed = append(trimmed, c)
		}
	}
	if len(trimmed) == 0 {
		return
	}

	if m := dayCellRe.FindStringSubmatch(trimmed[0]); m != nil && len(trimmed) > 1 {
		if d, err := strconv.Atoi(m[1]); err == nil && d > 0 {
			if d != r.day {
				r.lines.add(fmt.Sprintf("Day %d", d))
				r.day = d
			}
			trimmed = trimmed[1:]
		}
	}

	for i, c := range trimmed {
		clock, ok := itinerary.ParseClock(c)
		if !ok || len(c) > 20 {
			continue
		}
		rest := append(append([]string{}, trimmed[:i]...), trimmed[i+1:]...)
		if len(rest) == 0 {
			break
		}
		r.lines.add(fmt.Sprintf("* %s (%s): %s", periodLabel(clock), clock, strings.Join(rest, ", ")))
		return
	}
	r.lines.add(strings.Join(trimmed, " | "))
}

func periodLabel(clock string) string {
	h, _ := strconv.Atoi(clock[:2])
	switch {
	case h < 12:
		return "Morning"
	case h < 17:
		return "Afternoon"
	default:
		return "Evening"
	}
}
