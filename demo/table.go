package demo

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xuri/excelize/v2"
)

// Decoding errors reported with their own response detail.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrLegacyExcel     = errors.New("legacy .xls workbook")
)

// table is a header row plus data rows read from an uploaded dataset.
type table struct {
	headers []string
	rows    [][]string
}

// column returns the values of the named column, one per data row. Rows
// shorter than the header yield an empty value.
func (t table) column(name string) ([]string, bool) {
	idx := -1
	for i, h := range t.headers {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(t.rows))
	for i, row := range t.rows {
		if idx < len(row) {
			values[i] = row[idx]
		}
	}
	return values, true
}

// readTable decodes a dataset by file extension.
func readTable(name string, data []byte) (table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return readCSV(bytes.NewReader(data))
	case ".xlsx":
		return readExcel(bytes.NewReader(data))
	case ".xls":
		// Only .xls files that are really OOXML workbooks decode.
		tbl, err := readExcel(bytes.NewReader(data))
		if err != nil {
			return table{}, fmt.Errorf("%w: %v", ErrLegacyExcel, err)
		}
		return tbl, nil
	default:
		return table{}, ErrUnsupportedType
	}
}

func readCSV(r io.Reader) (table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return table{}, eris.Wrap(err, "demo: read csv")
	}
	if len(rows) == 0 {
		return table{}, eris.New("demo: empty csv")
	}
	return table{headers: trimHeaders(rows[0]), rows: rows[1:]}, nil
}

func readExcel(r io.Reader) (table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return table{}, eris.Wrap(err, "demo: open workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return table{}, eris.New("demo: workbook has no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return table{}, eris.Wrapf(err, "demo: read sheet %s", sheet)
	}
	if len(rows) == 0 {
		return table{}, eris.New("demo: empty sheet")
	}
	return table{headers: trimHeaders(rows[0]), rows: rows[1:]}, nil
}

func trimHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		// Drop a UTF-8 BOM left by spreadsheet exports.
		out[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}
	return out
}
