package csvcodec

import (
	"strings"
	"testing"
	"time"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain value untouched", "hello", "hello"},
		{"comma quoted", "a,b", `"a,b"`},
		{"quote doubled", `say "hi"`, `"say ""hi"""`},
		{"newline quoted", "line1\nline2", "\"line1\nline2\""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escape(tt.input); got != tt.want {
				t.Errorf("escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain cells", "a,b,c", []string{"a", "b", "c"}},
		{"quoted comma kept", `a,"b,c",d`, []string{"a", "b,c", "d"}},
		{"doubled quote unescaped", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"trailing empty cell", "a,b,", []string{"a", "b", ""}},
		{"single cell", "only", []string{"only"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLine(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitLine(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("splitLine(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEscapeSplitRoundTrip(t *testing.T) {
	values := []string{"plain", "with,comma", `with "quotes"`, "", "tail"}

	escaped := make([]string, len(values))
	for i, v := range values {
		escaped[i] = escape(v)
	}
	got := splitLine(strings.Join(escaped, ","))

	if len(got) != len(values) {
		t.Fatalf("round trip produced %d cells, want %d", len(got), len(values))
	}
	for i := range values {
		if got[i] != values[i] {
			t.Errorf("round trip cell %d = %q, want %q", i, got[i], values[i])
		}
	}
}

func TestParseDocument(t *testing.T) {
	doc := parseDocument("b,a\n1,2\n\n3,4\n")
	if len(doc.rows) != 2 {
		t.Fatalf("rows = %d, want 2 (blank lines skipped)", len(doc.rows))
	}
	// Columns resolved by header name, not position.
	if got := doc.get(doc.rows[0], "a"); got != "2" {
		t.Errorf("get(a) = %q, want 2", got)
	}
	if got := doc.get(doc.rows[0], "b"); got != "1" {
		t.Errorf("get(b) = %q, want 1", got)
	}
	if got := doc.get(doc.rows[0], "missing"); got != "" {
		t.Errorf("get(missing) = %q, want empty", got)
	}
}

func TestParseDocument_HeaderOnly(t *testing.T) {
	doc := parseDocument("a,b,c\n")
	if len(doc.rows) != 0 {
		t.Errorf("rows = %d, want 0 for header-only input", len(doc.rows))
	}
}

func TestParseDocument_CRLF(t *testing.T) {
	doc := parseDocument("a,b\r\n1,2\r\n")
	if len(doc.rows) != 1 || doc.get(doc.rows[0], "b") != "2" {
		t.Errorf("CRLF input not normalized: %v", doc.rows)
	}
}

func TestToBool(t *testing.T) {
	truthy := []string{"true", "TRUE", "1", "yes", "Y", "ja", " Ja "}
	for _, v := range truthy {
		if !toBool(v) {
			t.Errorf("toBool(%q) = false, want true", v)
		}
	}
	falsy := []string{"false", "0", "no", "nein", ""}
	for _, v := range falsy {
		if toBool(v) {
			t.Errorf("toBool(%q) = true, want false", v)
		}
	}
}

func TestToDate(t *testing.T) {
	if got := toDate("2026-03-11"); got == nil || got.Year() != 2026 || got.Month() != time.March {
		t.Errorf("toDate(date-only) = %v", got)
	}
	if got := toDate("2026-03-11T08:30:00Z"); got == nil || got.Hour() != 8 {
		t.Errorf("toDate(RFC3339) = %v", got)
	}
	if got := toDate("11.03.2026"); got != nil {
		t.Errorf("toDate(unknown layout) = %v, want nil", got)
	}
	if got := toDate(""); got != nil {
		t.Errorf("toDate(empty) = %v, want nil", got)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" a | b ||c ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if got := splitList("  "); got != nil {
		t.Errorf("splitList(blank) = %v, want nil", got)
	}
}
