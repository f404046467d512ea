// Package csvcodec encodes and decodes lead records to the fixed-column CSV
// schema the frontend exchanges. Multi-value fields join with "|", the
// custom-field map is JSON-encoded, and decoding maps cells by header name
// so reordered columns still round-trip.
//
// The decoder is strictly line-based: a quoted field containing an embedded
// newline is not supported and will split across rows. This matches the
// export side, which never emits newlines inside fields.
package csvcodec

import (
	"strconv"
	"strings"
	"time"
)

const listSeparator = "|"

// escape wraps a value in double quotes when it contains a comma, quote, or
// newline, doubling any interior quotes.
func escape(value string) string {
	if !strings.ContainsAny(value, "\",\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// splitLine splits one CSV line into cells with a character scanner that
// tracks quote state: commas inside quoted spans do not split, and a
// doubled quote inside a quoted span becomes a literal quote.
func splitLine(line string) []string {
	var cells []string
	var buf strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				buf.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			cells = append(cells, buf.String())
			buf.Reset()
		default:
			buf.WriteByte(ch)
		}
	}
	cells = append(cells, buf.String())
	return cells
}

// document builds a header line plus escaped data rows. Template mode
// (no rows) yields exactly one header line.
func document(headers []string, rows [][]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	b.WriteString("\n")
	for i, row := range rows {
		escaped := make([]string, len(row))
		for j, cell := range row {
			escaped[j] = escape(cell)
		}
		b.WriteString(strings.Join(escaped, ","))
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// recordSet maps decoded cells back to their declared columns by header
// name, tolerating reordered or missing columns.
type recordSet struct {
	index map[string]int
	rows  [][]string
}

// parseDocument splits raw CSV text into a header index and data rows.
// Blank lines are skipped; fewer than two non-blank lines means no rows.
func parseDocument(input string) recordSet {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(input, "\r\n", "\n"), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	if len(lines) < 2 {
		return recordSet{}
	}

	index := make(map[string]int)
	for i, name := range splitLine(lines[0]) {
		index[name] = i
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, splitLine(line))
	}
	return recordSet{index: index, rows: rows}
}

// get returns the named cell of a row, or "" when the column is absent.
func (r recordSet) get(row []string, name string) string {
	idx, ok := r.index[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func joinList(values []string) string {
	return strings.Join(values, listSeparator)
}

// splitList splits a pipe-joined cell into trimmed entries.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(value, listSeparator) {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func toInt(value string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func toInt64Ptr(value string) *int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func toIntPtr(value string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &n
}

// toBool accepts common truthy spellings, including German "ja".
func toBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "y", "ja":
		return true
	}
	return false
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// toDate parses a timestamp cell, returning nil on anything unparseable.
func toDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatInt64Ptr(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func formatIntPtr(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
