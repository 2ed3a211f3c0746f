package formatter

import (
	"strings"
	"testing"
)

func TestTableOutput(t *testing.T) {
	var sb strings.Builder
	table := NewTable(&sb, "NAME", "COUNT")
	table.Row("alpha", "1")
	table.Row("beta", "22")
	if err := table.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + separator + 2 rows:\n%s", len(lines), sb.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "COUNT") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "----") {
		t.Errorf("separator = %q", lines[1])
	}
	if !strings.Contains(lines[2], "alpha") || !strings.Contains(lines[3], "beta") {
		t.Errorf("rows = %q, %q", lines[2], lines[3])
	}
}

func TestTableCellCountMismatch(t *testing.T) {
	var sb strings.Builder
	table := NewTable(&sb, "A", "B", "C")
	table.Row("only-one")
	table.Row("one", "two", "three", "dropped")
	if err := table.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	if strings.Contains(sb.String(), "dropped") {
		t.Error("extra cell was not dropped")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly-ten", 11, "exactly-ten"},
		{"a longer string here", 10, "a longe..."},
		{"abc", 2, "ab"},
		{"anything", 0, "anything"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestJSON(t *testing.T) {
	var sb strings.Builder
	err := JSON(&sb, map[string]string{"query": "a<b"})
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	got := sb.String()
	if !strings.Contains(got, `"query": "a<b"`) {
		t.Errorf("JSON output = %q, want unescaped indented field", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("JSON output missing trailing newline")
	}
}
