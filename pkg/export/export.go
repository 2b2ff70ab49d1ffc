// Package export serializes report tables.
package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes a header and rows to w in CSV format.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Float formats a numeric field.
func Float(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
