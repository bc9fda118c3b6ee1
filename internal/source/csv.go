package source

import (
	"encoding/csv"
	"os"

	"smartmentor/internal"
)

// appendCSV reads one scraped CSV file as a single table. No example in the
// scraped corpus mixes kinds inside one CSV, so the whole file classifies as
// one entity kind.
func appendCSV(doc *internal.RawDocument, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	t := table{headers: records[0]}
	for _, row := range records[1:] {
		if emptyRow(row) {
			continue
		}
		t.rows = append(t.rows, row)
	}
	t.appendTo(doc)
	return nil
}
