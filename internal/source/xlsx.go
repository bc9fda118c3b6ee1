package source

import (
	"bytes"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"smartmentor/internal"
)

func appendXLSX(doc *internal.RawDocument, path string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	tables, err := tablesFromXLSX(blob)
	if err != nil {
		return err
	}
	for _, t := range tables {
		t.appendTo(doc)
	}
	return nil
}

// tablesFromXLSX reads every sheet as one table: first non-empty row is the
// header, the rest are data rows.
func tablesFromXLSX(blob []byte) ([]table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []table
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}

		t := table{}
		for _, row := range rows {
			if emptyRow(row) {
				continue
			}
			if t.headers == nil {
				t.headers = row
				continue
			}
			t.rows = append(t.rows, row)
		}
		if t.headers != nil {
			out = append(out, t)
		}
	}
	return out, nil
}

func emptyRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
