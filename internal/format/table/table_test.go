package table

import (
	"strings"
	"testing"
)

func TestFormatPadsColumns(t *testing.T) {
	rows := [][]string{
		{"NAME", "KIND"},
		{"cpu", "configurable"},
		{"workspaces", "builtin"},
	}
	got := Format(rows, nil)
	want := []string{
		"NAME        KIND",
		"cpu         configurable",
		"workspaces  builtin",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected table:\n%s", strings.Join(got, "\n"))
	}
}

func TestFormatRightAlignment(t *testing.T) {
	got := Format([][]string{{"a", "1"}, {"b", "100"}}, []Alignment{AlignLeft, AlignRight})
	if got[0] != "a    1" || got[1] != "b  100" {
		t.Fatalf("unexpected rows %q", got)
	}
}

func TestFormatMeasuresCells(t *testing.T) {
	got := Format([][]string{{"日本", "x"}, {"ab", "y"}}, nil)
	if got[0] != "日本  x" || got[1] != "ab    y" {
		t.Fatalf("unexpected rows %q", got)
	}
}

func TestWriteIncludesHeader(t *testing.T) {
	var b strings.Builder
	if err := Write(&b, []string{"NAME"}, [][]string{{"time"}}, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if b.String() != "NAME\ntime\n" {
		t.Fatalf("unexpected output %q", b.String())
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
