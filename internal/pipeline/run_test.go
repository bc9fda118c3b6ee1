package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"smartmentor/internal"
	"smartmentor/internal/config"
)

func scenarioDocument() internal.RawDocument {
	// 2 devices, 5 components (2 orphaned to a device that does not exist),
	// 1 guide, 4 steps.
	return internal.RawDocument{
		Devices: []internal.RawDevice{
			{DeviceName: "Arduino UNO R3", DeviceType: strPtr("Microcontroller Board")},
			{DeviceName: "Arduino Mega 2560", DeviceType: strPtr("Microcontroller Board")},
		},
		Components: []internal.RawComponent{
			{DeviceID: 1, ComponentName: "Digital I/O Pins", Description: strPtr("General purpose digital input/output")},
			{DeviceID: 1, ComponentName: "USB Port", Description: strPtr("For programming and power")},
			{DeviceID: 2, ComponentName: "Reset Button"},
			{DeviceID: 9, ComponentName: "Phantom Header"},
			{DeviceID: 9, ComponentName: "Phantom Socket"},
		},
		Guides: []internal.RawGuide{
			{DeviceID: 1, Title: "Getting Started with Arduino UNO", GuideURL: strPtr("https://docs.arduino.cc/tutorials/uno-rev3/getting-started/")},
		},
		Steps: []internal.RawStep{
			{GuideID: 1, StepNumber: 1, Description: "Connect the USB cable to your Arduino UNO board"},
			{GuideID: 1, StepNumber: 2, Description: "Download and install the Arduino IDE"},
			{GuideID: 1, StepNumber: 3, Description: "Select your board type"},
			{GuideID: 1, StepNumber: 4, Description: "Upload the first sketch"},
		},
	}
}

func strPtr(v string) *string { return &v }

func TestRunCountsAndSummary(t *testing.T) {
	cfg, _ := config.Load()
	svc := NewService(cfg, testLogger())

	result, err := svc.Run(scenarioDocument())
	if err != nil {
		t.Fatal(err)
	}

	s := result.Summary
	if s.Devices != 2 || s.Components != 3 || s.Guides != 1 || s.Steps != 4 {
		t.Fatalf("summary counts devices=%d components=%d guides=%d steps=%d, want 2/3/1/4",
			s.Devices, s.Components, s.Guides, s.Steps)
	}
	if s.TotalRecords != 10 {
		t.Fatalf("total=%d, want 10", s.TotalRecords)
	}
	if s.DroppedOrphaned != 2 {
		t.Fatalf("orphaned=%d, want 2", s.DroppedOrphaned)
	}
	if s.DroppedMalformed != 0 {
		t.Fatalf("malformed=%d, want 0", s.DroppedMalformed)
	}
	if _, err := time.Parse(time.RFC3339, s.GeneratedAt); err != nil {
		t.Fatalf("generated_at %q is not RFC3339: %v", s.GeneratedAt, err)
	}
	if result.RunID == "" {
		t.Fatal("missing run id")
	}
}

func TestRunOrphanAbsentFromAllOutputs(t *testing.T) {
	doc := scenarioDocument()
	doc.Steps = append(doc.Steps, internal.RawStep{GuideID: 7, StepNumber: 1, Description: "Orphan step"})

	cfg, _ := config.Load()
	result, err := NewService(cfg, testLogger()).Run(doc)
	if err != nil {
		t.Fatal(err)
	}

	for _, step := range result.Dataset.Steps {
		if step.Description == "Orphan step" {
			t.Fatal("orphan step present in structured output")
		}
	}
	if result.Summary.Steps != 4 {
		t.Fatalf("summary steps=%d, want 4", result.Summary.Steps)
	}
	if strings.Contains(result.SQL, "Orphan step") {
		t.Fatal("orphan step present in SQL output")
	}
}

func TestWriteOutputs(t *testing.T) {
	tmp := t.TempDir()
	cfg, _ := config.Load()
	result, err := NewService(cfg, testLogger()).Run(scenarioDocument())
	if err != nil {
		t.Fatal(err)
	}

	paths := DefaultOutputPaths(filepath.Join(tmp, "processed"), filepath.Join(tmp, "outputs"))
	if err := WriteOutputs(result, paths); err != nil {
		t.Fatal(err)
	}

	blob, err := os.ReadFile(paths.Structured)
	if err != nil {
		t.Fatal(err)
	}
	var ds internal.Dataset
	if err := json.Unmarshal(blob, &ds); err != nil {
		t.Fatal(err)
	}
	if len(ds.Devices) != 2 || len(ds.Components) != 3 {
		t.Fatalf("structured document devices=%d components=%d, want 2/3", len(ds.Devices), len(ds.Components))
	}

	blob, err = os.ReadFile(paths.Summary)
	if err != nil {
		t.Fatal(err)
	}
	var summary internal.Summary
	if err := json.Unmarshal(blob, &summary); err != nil {
		t.Fatal(err)
	}
	if summary != result.Summary {
		t.Fatalf("summary on disk %+v != in memory %+v", summary, result.Summary)
	}

	sqlBlob, err := os.ReadFile(paths.SQL)
	if err != nil {
		t.Fatal(err)
	}
	if len(sqlBlob) == 0 {
		t.Fatal("empty SQL output")
	}

	// No stray temp files may remain after a successful write.
	for _, dir := range []string{filepath.Dir(paths.Structured), filepath.Dir(paths.SQL)} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		for _, e := range entries {
			if strings.Contains(e.Name(), ".tmp-") {
				t.Fatalf("leftover temp file: %s", e.Name())
			}
		}
	}
}
