package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"smartmentor/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	// foreign_keys is per connection, so it rides the DSN and applies to
	// every connection the pool opens.
	conn, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS Devices (
  DeviceID INTEGER PRIMARY KEY,
  DeviceName TEXT NOT NULL,
  DeviceType TEXT,
  ImageURL TEXT
);

CREATE TABLE IF NOT EXISTS Components (
  ComponentID INTEGER PRIMARY KEY,
  DeviceID INTEGER NOT NULL,
  ComponentName TEXT NOT NULL,
  Description TEXT,
  FOREIGN KEY(DeviceID) REFERENCES Devices(DeviceID) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_components_device ON Components(DeviceID);

CREATE TABLE IF NOT EXISTS Guides (
  GuideID INTEGER PRIMARY KEY,
  DeviceID INTEGER NOT NULL,
  Title TEXT NOT NULL,
  DateCreated TEXT,
  GuideURL TEXT,
  FOREIGN KEY(DeviceID) REFERENCES Devices(DeviceID) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_guides_device ON Guides(DeviceID);

CREATE TABLE IF NOT EXISTS Steps (
  StepID INTEGER PRIMARY KEY,
  GuideID INTEGER NOT NULL,
  StepNumber INTEGER NOT NULL,
  Description TEXT NOT NULL,
  UNIQUE(GuideID, StepNumber),
  FOREIGN KEY(GuideID) REFERENCES Guides(GuideID) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  runId TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// ReplaceDataset loads a mapped dataset transactionally, replacing whatever
// snapshot is currently stored. Parents are inserted before children so the
// foreign keys hold at every point inside the transaction.
func (d *DB) ReplaceDataset(ds internal.Dataset) error {
	tx, err := d.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Child tables cascade from Devices; Steps cascade from Guides.
	if _, err := tx.Exec(`DELETE FROM Devices`); err != nil {
		return err
	}

	devStmt, err := tx.Prepare(`INSERT INTO Devices (DeviceID, DeviceName, DeviceType, ImageURL) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer devStmt.Close()
	for _, dev := range ds.Devices {
		if _, err := devStmt.Exec(dev.DeviceID, dev.DeviceName, dev.DeviceType, dev.ImageURL); err != nil {
			return err
		}
	}

	compStmt, err := tx.Prepare(`INSERT INTO Components (ComponentID, DeviceID, ComponentName, Description) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer compStmt.Close()
	for _, comp := range ds.Components {
		if _, err := compStmt.Exec(comp.ComponentID, comp.DeviceID, comp.ComponentName, comp.Description); err != nil {
			return err
		}
	}

	guideStmt, err := tx.Prepare(`INSERT INTO Guides (GuideID, DeviceID, Title, DateCreated, GuideURL) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer guideStmt.Close()
	for _, guide := range ds.Guides {
		if _, err := guideStmt.Exec(guide.GuideID, guide.DeviceID, guide.Title, guide.DateCreated, guide.GuideURL); err != nil {
			return err
		}
	}

	stepStmt, err := tx.Prepare(`INSERT INTO Steps (StepID, GuideID, StepNumber, Description) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stepStmt.Close()
	for _, step := range ds.Steps {
		if _, err := stepStmt.Exec(step.StepID, step.GuideID, step.StepNumber, step.Description); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// TableCounts reports row counts for the four entity tables.
func (d *DB) TableCounts() (map[string]int, error) {
	out := map[string]int{}
	for _, table := range []string{"Devices", "Components", "Guides", "Steps"} {
		var count int
		if err := d.conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = count
	}
	return out, nil
}

func (d *DB) InsertRun(runID string, summary internal.Summary) error {
	countsJSON, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	_, err = d.conn.Exec(`INSERT INTO runs (runId, countsJson) VALUES (?, ?)`, runID, string(countsJSON))
	return err
}

type RunRow struct {
	ID        int
	RunID     string
	Counts    internal.Summary
	CreatedAt string
}

func (d *DB) ListRuns(limit int) ([]RunRow, error) {
	rows, err := d.conn.Query(`SELECT id, runId, countsJson, createdAt FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		var countsJSON string
		if err := rows.Scan(&row.ID, &row.RunID, &countsJSON, &row.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(countsJSON), &row.Counts)
		out = append(out, row)
	}
	return out, rows.Err()
}
