package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// OutputPaths names the three run outputs.
type OutputPaths struct {
	Structured string
	SQL        string
	Summary    string
}

// DefaultOutputPaths places the structured document under the processed dir
// and the SQL script plus summary under the output dir.
func DefaultOutputPaths(processedDir, outputDir string) OutputPaths {
	return OutputPaths{
		Structured: filepath.Join(processedDir, "cleaned_data.json"),
		SQL:        filepath.Join(outputDir, "database_inserts.sql"),
		Summary:    filepath.Join(outputDir, "cleaning_summary.json"),
	}
}

// WriteOutputs persists all three outputs, staging each to a temp file in its
// destination directory and renaming only after every write succeeded, so a
// failed run never leaves output claiming success.
func WriteOutputs(result Result, paths OutputPaths) error {
	structuredJSON, err := json.MarshalIndent(result.Dataset, "", "  ")
	if err != nil {
		return fmt.Errorf("encode structured document: %w", err)
	}
	summaryJSON, err := json.MarshalIndent(result.Summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	files := []struct {
		path string
		blob []byte
	}{
		{paths.Structured, structuredJSON},
		{paths.SQL, []byte(result.SQL)},
		{paths.Summary, summaryJSON},
	}

	staged := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}()

	for _, f := range files {
		tmp, err := stageFile(f.path, f.blob)
		if err != nil {
			return err
		}
		staged = append(staged, tmp)
	}

	for i, f := range files {
		if err := os.Rename(staged[i], f.path); err != nil {
			return fmt.Errorf("finalize %s: %w", f.path, err)
		}
	}
	staged = nil
	return nil
}

func stageFile(finalPath string, blob []byte) (string, error) {
	dir := filepath.Dir(finalPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(finalPath)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("stage %s: %w", finalPath, err)
	}
	if _, err := tmp.Write(blob); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("write %s: %w", finalPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("close %s: %w", finalPath, err)
	}
	return tmp.Name(), nil
}
