package source

import (
	"testing"

	"smartmentor/internal"
)

func TestClassifyTables(t *testing.T) {
	cases := []struct {
		name    string
		headers []string
		want    recordKind
	}{
		{name: "devices", headers: []string{"Device Name", "Device Type", "Image URL"}, want: kindDevice},
		{name: "components", headers: []string{"DeviceID", "Component Name", "Description"}, want: kindComponent},
		{name: "guides", headers: []string{"DeviceID", "Title", "Date Created", "Guide URL"}, want: kindGuide},
		{name: "steps", headers: []string{"GuideID", "Step Number", "Description"}, want: kindStep},
		{name: "unknown", headers: []string{"voltage", "current"}, want: kindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := table{headers: tc.headers}.classify()
			if got != tc.want {
				t.Fatalf("classified as %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTableAppendDevices(t *testing.T) {
	tbl := table{
		headers: []string{"Device Name", "Device Type", "Image URL"},
		rows: [][]string{
			{"Arduino UNO R3", "Microcontroller Board", ""},
			{"", "ignored", ""},
		},
	}

	doc := internal.RawDocument{}
	tbl.appendTo(&doc)
	if len(doc.Devices) != 1 {
		t.Fatalf("devices=%d, want 1", len(doc.Devices))
	}
	dev := doc.Devices[0]
	if dev.DeviceName != "Arduino UNO R3" {
		t.Fatalf("name=%q", dev.DeviceName)
	}
	if dev.DeviceType == nil || *dev.DeviceType != "Microcontroller Board" {
		t.Fatalf("type=%v", dev.DeviceType)
	}
	if dev.ImageURL != nil {
		t.Fatalf("empty image cell should stay nil, got %v", *dev.ImageURL)
	}
}

func TestTableAppendStepsLenientReferences(t *testing.T) {
	tbl := table{
		headers: []string{"GuideID", "Step Number", "Description"},
		rows: [][]string{
			{"1", "1", "Plug in"},
			{"not-a-number", "2", "Kept with zero reference for later filtering"},
			{"2.0", "3", "Float cell"},
		},
	}

	doc := internal.RawDocument{}
	tbl.appendTo(&doc)
	if len(doc.Steps) != 3 {
		t.Fatalf("steps=%d, want 3", len(doc.Steps))
	}
	if doc.Steps[0].GuideID != 1 || doc.Steps[1].GuideID != 0 || doc.Steps[2].GuideID != 2 {
		t.Fatalf("guide refs=%d/%d/%d, want 1/0/2", doc.Steps[0].GuideID, doc.Steps[1].GuideID, doc.Steps[2].GuideID)
	}
}
