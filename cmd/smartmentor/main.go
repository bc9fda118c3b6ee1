package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"smartmentor/internal"
	"smartmentor/internal/config"
	"smartmentor/internal/logger"
	"smartmentor/internal/pipeline"
	"smartmentor/internal/source"
	"smartmentor/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)
	log := logger.New(cfg.LogLevel)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "source:build":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dir := fs.String("dir", cfg.RawDataDir, "directory of scraped files (xlsx/csv/html/pdf)")
		out := fs.String("out", "", "output snapshot path (default: timestamped file in --dir)")
		_ = fs.Parse(os.Args[2:])

		doc, err := source.BuildDocument(*dir)
		must(err)

		target := *out
		if strings.TrimSpace(target) == "" {
			target = filepath.Join(*dir, time.Now().Format("20060102_150405")+"_snapshot.json")
		}
		must(writeSnapshot(doc, target))
		fmt.Printf("snapshot built: devices=%d components=%d guides=%d steps=%d file=%s\n",
			len(doc.Devices), len(doc.Components), len(doc.Guides), len(doc.Steps), target)

	case "run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "raw snapshot document (default: latest in raw data dir)")
		dbPath := fs.String("db", "", "also apply the result to this sqlite database")
		_ = fs.Parse(os.Args[2:])

		path := *input
		if strings.TrimSpace(path) == "" {
			latest, err := source.LatestDocument(cfg.RawDataDir)
			must(err)
			path = latest
		}
		doc, err := source.LoadDocument(path)
		must(err)

		svc := pipeline.NewService(cfg, log)
		result, err := svc.Run(doc)
		must(err)

		paths := pipeline.DefaultOutputPaths(cfg.ProcessedDir, cfg.OutputDir)
		must(pipeline.WriteOutputs(result, paths))

		target := *dbPath
		if target == "" && cfg.ApplyToDB {
			target = cfg.DBPath
		}
		if target != "" {
			must(applyDataset(result, target))
		}

		fmt.Printf("run %s complete: devices=%d components=%d guides=%d steps=%d dropped=%d\n",
			result.RunID,
			result.Summary.Devices, result.Summary.Components, result.Summary.Guides, result.Summary.Steps,
			result.Summary.DroppedMalformed+result.Summary.DroppedOrphaned)

	case "db:apply":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", filepath.Join(cfg.ProcessedDir, "cleaned_data.json"), "structured document to load")
		dbPath := fs.String("db", cfg.DBPath, "sqlite database path")
		_ = fs.Parse(os.Args[2:])

		blob, err := os.ReadFile(*input)
		must(err)
		var ds internal.Dataset
		must(json.Unmarshal(blob, &ds))

		db, err := storage.Open(*dbPath)
		must(err)
		defer db.Close()
		must(db.ReplaceDataset(ds))
		fmt.Printf("dataset applied to %s\n", *dbPath)

	case "db:stats":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		dbPath := fs.String("db", cfg.DBPath, "sqlite database path")
		runs := fs.Int("runs", 5, "recent runs to show")
		_ = fs.Parse(os.Args[2:])

		db, err := storage.Open(*dbPath)
		must(err)
		defer db.Close()

		counts, err := db.TableCounts()
		must(err)
		for _, t := range []string{"Devices", "Components", "Guides", "Steps"} {
			fmt.Printf("%-10s %d\n", t, counts[t])
		}

		rows, err := db.ListRuns(*runs)
		must(err)
		for _, row := range rows {
			fmt.Printf("run %s at %s: devices=%d components=%d guides=%d steps=%d\n",
				row.RunID, row.CreatedAt, row.Counts.Devices, row.Counts.Components, row.Counts.Guides, row.Counts.Steps)
		}

	default:
		usage()
		os.Exit(1)
	}
}

func writeSnapshot(doc internal.RawDocument, path string) error {
	blob, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0o644)
}

func applyDataset(result pipeline.Result, dbPath string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.ReplaceDataset(result.Dataset); err != nil {
		return err
	}
	return db.InsertRun(result.RunID, result.Summary)
}

func usage() {
	fmt.Println("usage: smartmentor <command>")
	fmt.Println("commands:")
	fmt.Println("  source:build [--dir=...] [--out=...]")
	fmt.Println("  run [--input=...] [--db=...]")
	fmt.Println("  db:apply [--input=...] [--db=...]")
	fmt.Println("  db:stats [--db=...] [--runs=5]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
