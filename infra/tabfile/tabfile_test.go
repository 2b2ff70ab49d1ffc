package tabfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTab(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.tab")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestRead_Select(t *testing.T) {
	path := writeTab(t, "Period\tEnergy_Source\tMax_Curtailment_Rate\n2030\tSolar\t0.2\n2030\tWind\t.\n")
	tab, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if tab.Len() != 2 {
		t.Fatalf("expected 2 rows got %d", tab.Len())
	}
	rows, err := tab.Select("Max_Curtailment_Rate", "Period")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if rows[0][0] != "0.2" || rows[0][1] != "2030" {
		t.Fatalf("unexpected row: %v", rows[0])
	}
	if rows[1][0] != Missing {
		t.Fatalf("expected missing marker got %q", rows[1][0])
	}
}

func TestRead_SpacesAndComments(t *testing.T) {
	path := writeTab(t, "# generated\n\na b\n1 2\n")
	tab, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	rows, err := tab.Select("b")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "2" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.tab"))
	if !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error got %v", err)
	}
}

func TestRead_RaggedRow(t *testing.T) {
	path := writeTab(t, "a\tb\n1\n")
	if _, err := Read(path); err == nil {
		t.Fatalf("expected field count error")
	}
}

func TestRead_EmptyFile(t *testing.T) {
	path := writeTab(t, "")
	if _, err := Read(path); err == nil {
		t.Fatalf("expected missing header error")
	}
}

func TestSelect_MissingColumn(t *testing.T) {
	path := writeTab(t, "a\n1\n")
	tab, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := tab.Select("missing"); err == nil {
		t.Fatalf("expected missing column error")
	}
}

func TestFloatAndBool(t *testing.T) {
	if v, err := Float("0.25"); err != nil || v != 0.25 {
		t.Fatalf("float parse: %v %v", v, err)
	}
	if _, err := Float("x"); err == nil {
		t.Fatalf("expected float error")
	}
	if b, err := Bool("1"); err != nil || !b {
		t.Fatalf("bool parse: %v %v", b, err)
	}
	if _, err := Bool("yes"); err == nil {
		t.Fatalf("expected bool error")
	}
}
