package export

import (
	"strings"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	var sb strings.Builder
	err := WriteCSV(&sb, []string{"a", "b"}, [][]string{{"1", "x"}, {"2", ""}})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "a,b\n1,x\n2,\n"
	if sb.String() != want {
		t.Fatalf("expected %q got %q", want, sb.String())
	}
}

func TestFloat(t *testing.T) {
	if got := Float(0.8); got != "0.8" {
		t.Fatalf("expected 0.8 got %s", got)
	}
	if got := Float(2000); got != "2000" {
		t.Fatalf("expected 2000 got %s", got)
	}
}
