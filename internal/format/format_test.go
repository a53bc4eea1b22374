package format

import (
	"strings"
	"testing"
)

func TestWriteJSONCompactAndPretty(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, map[string]any{"a": 1}, "json", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := sb.String(); got != "{\"a\":1}\n" {
		t.Fatalf("compact = %q", got)
	}

	sb.Reset()
	if err := Write(&sb, map[string]any{"a": 1}, "", true); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(sb.String(), "\n  \"a\": 1\n") {
		t.Fatalf("pretty = %q", sb.String())
	}
}

func TestWriteTable(t *testing.T) {
	var sb strings.Builder
	tbl := Table{
		Headers: []string{"PROJECT", "TOTAL"},
		Rows:    [][]string{{"Alpha", "3.30"}, {"Beta", "1.00"}},
	}
	if err := Write(&sb, tbl, "table", false); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"PROJECT", "Alpha", "3.30", "Beta"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, 1, "xml", false); err == nil {
		t.Fatalf("expected an error for unknown format")
	}
}
