package pipeline

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"smartmentor/internal"
	"smartmentor/internal/util"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDedupeExactDuplicateDevices(t *testing.T) {
	doc := internal.RawDocument{
		Devices: []internal.RawDevice{
			{DeviceName: "Arduino Uno", DeviceType: util.StringPtr("Board")},
			{DeviceName: "Arduino Uno", DeviceType: util.StringPtr("Board")},
		},
	}

	out, drops := NewDeduplicator(testLogger()).Dedupe(doc)
	if len(out.Devices) != 1 {
		t.Fatalf("devices=%d, want 1", len(out.Devices))
	}
	if drops.Malformed != 0 {
		t.Fatalf("malformed=%d, want 0", drops.Malformed)
	}

	ds, err := NewMapper().Map(out)
	if err != nil {
		t.Fatal(err)
	}
	if ds.Devices[0].DeviceID != 1 {
		t.Fatalf("surrogate id=%d, want 1", ds.Devices[0].DeviceID)
	}
}

func TestDedupeIdentityKeyIncludesType(t *testing.T) {
	doc := internal.RawDocument{
		Devices: []internal.RawDevice{
			{DeviceName: "Arduino Uno", DeviceType: util.StringPtr("Board")},
			{DeviceName: "Arduino Uno", DeviceType: util.StringPtr("Kit")},
			{DeviceName: "Arduino Uno"},
		},
	}

	out, _ := NewDeduplicator(testLogger()).Dedupe(doc)
	if len(out.Devices) != 3 {
		t.Fatalf("devices=%d, want 3 (type is part of the identity key)", len(out.Devices))
	}
}

func TestDedupeMalformedRecords(t *testing.T) {
	cases := []struct {
		name string
		doc  internal.RawDocument
	}{
		{name: "device without name", doc: internal.RawDocument{Devices: []internal.RawDevice{{DeviceName: "  "}}}},
		{name: "component without name", doc: internal.RawDocument{Components: []internal.RawComponent{{DeviceID: 1}}}},
		{name: "component without device", doc: internal.RawDocument{Components: []internal.RawComponent{{ComponentName: "LED"}}}},
		{name: "guide without title", doc: internal.RawDocument{Guides: []internal.RawGuide{{DeviceID: 1}}}},
		{name: "step with zero number", doc: internal.RawDocument{Steps: []internal.RawStep{{GuideID: 1, StepNumber: 0, Description: "x"}}}},
		{name: "step with empty description", doc: internal.RawDocument{Steps: []internal.RawStep{{GuideID: 1, StepNumber: 1, Description: ""}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, drops := NewDeduplicator(testLogger()).Dedupe(tc.doc)
			total := len(out.Devices) + len(out.Components) + len(out.Guides) + len(out.Steps)
			if total != 0 {
				t.Fatalf("survivors=%d, want 0", total)
			}
			if drops.Malformed != 1 {
				t.Fatalf("malformed=%d, want 1", drops.Malformed)
			}
		})
	}
}

func TestDedupePreservesFirstSeenOrder(t *testing.T) {
	doc := internal.RawDocument{
		Devices: []internal.RawDevice{
			{DeviceName: "Uno"},
			{DeviceName: "Mega"},
			{DeviceName: "Uno"},
			{DeviceName: "Nano"},
		},
	}

	out, _ := NewDeduplicator(testLogger()).Dedupe(doc)
	got := []string{}
	for _, dev := range out.Devices {
		got = append(got, dev.DeviceName)
	}
	want := []string{"Uno", "Mega", "Nano"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order=%v, want %v", got, want)
	}
}

func TestDedupeIdempotent(t *testing.T) {
	doc := internal.RawDocument{
		Devices: []internal.RawDevice{
			{DeviceName: "Uno", DeviceType: util.StringPtr("Board")},
			{DeviceName: "Uno", DeviceType: util.StringPtr("Board")},
			{DeviceName: "Mega"},
		},
		Components: []internal.RawComponent{
			{DeviceID: 1, ComponentName: "LED"},
			{DeviceID: 1, ComponentName: "LED"},
			{DeviceID: 2, ComponentName: "LED"},
		},
		Guides: []internal.RawGuide{
			{DeviceID: 1, Title: "Getting Started"},
		},
		Steps: []internal.RawStep{
			{GuideID: 1, StepNumber: 1, Description: "Plug in the board"},
			{GuideID: 1, StepNumber: 1, Description: "Plug in the board again"},
		},
	}

	d := NewDeduplicator(testLogger())
	once, _ := d.Dedupe(doc)
	twice, drops := d.Dedupe(once)

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second pass changed the document:\nonce:  %+v\ntwice: %+v", once, twice)
	}
	if drops != (internal.DropCounts{}) {
		t.Fatalf("second pass dropped records: %+v", drops)
	}
}
