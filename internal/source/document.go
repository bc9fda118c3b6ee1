// Package source is the raw record acquisition side of the pipeline. It
// decodes snapshot documents and rebuilds them from scraped files (xlsx, csv,
// html tables, pdf datasheets). The transform stages never read files
// themselves; they consume the RawDocument this package produces.
package source

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"smartmentor/internal"
)

// LoadDocument decodes a raw snapshot document from disk.
func LoadDocument(path string) (internal.RawDocument, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return internal.RawDocument{}, fmt.Errorf("read input document: %w", err)
	}
	var doc internal.RawDocument
	if err := json.Unmarshal(blob, &doc); err != nil {
		return internal.RawDocument{}, fmt.Errorf("decode input document %s: %w", path, err)
	}
	return doc, nil
}

// LatestDocument finds the newest timestamp-named *.json snapshot in dir.
// Snapshot names sort lexicographically by timestamp, so the last name wins.
func LatestDocument(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no snapshot documents in %s", dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

// BuildDocument merges every supported scraped file in dir into one raw
// document. Files are visited in name order so record positions, and with
// them raw identities, are stable across runs.
func BuildDocument(dir string) (internal.RawDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return internal.RawDocument{}, fmt.Errorf("read scrape dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	doc := internal.RawDocument{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".xls":
			if err := appendXLSX(&doc, path); err != nil {
				return internal.RawDocument{}, fmt.Errorf("parse %s: %w", name, err)
			}
		case ".csv":
			if err := appendCSV(&doc, path); err != nil {
				return internal.RawDocument{}, fmt.Errorf("parse %s: %w", name, err)
			}
		case ".html", ".htm":
			if err := appendHTML(&doc, path); err != nil {
				return internal.RawDocument{}, fmt.Errorf("parse %s: %w", name, err)
			}
		case ".pdf":
			if err := appendPDF(&doc, path); err != nil {
				return internal.RawDocument{}, fmt.Errorf("parse %s: %w", name, err)
			}
		}
	}
	return doc, nil
}
