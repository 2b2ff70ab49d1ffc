// Package tabfile reads the whitespace-delimited .tab input tables used by
// the model. The first non-comment line is the header; fields are separated
// by tabs or spaces and a "." marks a missing value.
package tabfile

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Missing is the placeholder for an absent value.
const Missing = "."

// Table is an in-memory table with named columns.
type Table struct {
	path string
	cols map[string]int
	rows [][]string
}

// Read parses the table at path. A missing file is returned as the
// underlying *PathError so callers can distinguish absence from corruption.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t := &Table{path: path, cols: make(map[string]int)}
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(t.cols) == 0 {
			for i, name := range fields {
				if _, dup := t.cols[name]; dup {
					return nil, fmt.Errorf("%s: duplicate column %s", path, name)
				}
				t.cols[name] = i
			}
			continue
		}
		if len(fields) != len(t.cols) {
			return nil, fmt.Errorf("%s:%d: expected %d fields, got %d", path, line, len(t.cols), len(fields))
		}
		t.rows = append(t.rows, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(t.cols) == 0 {
		return nil, fmt.Errorf("%s: missing header", path)
	}
	return t, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

// Select returns the named columns for every row, in the requested order.
func (t *Table) Select(names ...string) ([][]string, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		j, ok := t.cols[name]
		if !ok {
			return nil, fmt.Errorf("%s: missing column %s", t.path, name)
		}
		idx[i] = j
	}
	out := make([][]string, len(t.rows))
	for r, row := range t.rows {
		sel := make([]string, len(idx))
		for i, j := range idx {
			sel[i] = row[j]
		}
		out[r] = sel
	}
	return out, nil
}

// Float parses a numeric field.
func Float(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", s, err)
	}
	return v, nil
}

// Bool parses a 0/1 flag field.
func Bool(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("parse flag %q: want 0 or 1", s)
	}
}
