package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"kyclens/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row. Groups are exported in long form,
// one row per merged field, because field sets differ across document types.
var columns = []string{
	"Group ID",
	"Document Type",
	"Pages",
	"Field",
	"Value",
	"Confidence",
	"Field Kind",
}

// Writer wraps csv.Writer for exporting grouped extraction results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteGroups converts document groups to CSV rows and writes them.
// Fields within a group are emitted in sorted key order, canonical fields
// before extra fields, so repeated exports of the same result are identical.
func (w *Writer) WriteGroups(groups []domain.DocumentGroup) error {
	for i := range groups {
		for _, row := range groupToRows(&groups[i]) {
			if err := w.csv.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func groupToRows(g *domain.DocumentGroup) [][]string {
	pages := formatPages(g.PageIndices)

	rows := make([][]string, 0, len(g.MergedFields)+len(g.MergedExtraFields)+1)
	rows = append(rows, fieldRows(g, pages, g.MergedFields, "canonical")...)
	rows = append(rows, fieldRows(g, pages, g.MergedExtraFields, "extra")...)

	// A group with no extracted fields still gets one row so it is visible
	// in the export.
	if len(rows) == 0 {
		rows = append(rows, []string{strconv.Itoa(g.GroupID), g.DocType, pages, "", "", "", ""})
	}
	return rows
}

func fieldRows(g *domain.DocumentGroup, pages string, fields map[string]domain.FieldValue, kind string) [][]string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		fv := fields[k]
		rows = append(rows, []string{
			strconv.Itoa(g.GroupID),
			g.DocType,
			pages,
			k,
			fv.Value,
			strconv.FormatFloat(fv.Confidence, 'f', 2, 64),
			kind,
		})
	}
	return rows
}

// formatPages renders zero-based page indices as a 1-based display string,
// e.g. [0 1 2] -> "1;2;3".
func formatPages(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx + 1)
	}
	return strings.Join(parts, ";")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a source filename for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: {sanitized_source_name}_{YYYY-MM-DD}.csv
func BuildFilename(sourceName string) string {
	sanitized := SanitizeFilename(sourceName)
	if sanitized == "" {
		sanitized = "extraction"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.csv", sanitized, date)
}
