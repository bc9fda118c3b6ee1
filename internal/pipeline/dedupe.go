package pipeline

import (
	"log/slog"
	"strings"

	"smartmentor/internal"
)

// Identity keys per kind. Components and guides key on the raw, pre-remap
// device identifier; steps on the raw guide identifier.
type deviceKey struct {
	name       string
	deviceType string
}

type componentKey struct {
	deviceID int64
	name     string
}

type guideKey struct {
	deviceID int64
	title    string
}

type stepKey struct {
	guideID int64
	number  int
}

// Deduplicator collapses raw records into one canonical record per identity
// key, keeping the first occurrence and its position in the input.
type Deduplicator struct {
	log *slog.Logger
}

func NewDeduplicator(log *slog.Logger) *Deduplicator {
	return &Deduplicator{log: log}
}

// Dedupe returns a new document with duplicates and malformed records removed.
// Malformed records (missing identity fields) are dropped with a warning and
// counted; the run continues.
func (d *Deduplicator) Dedupe(doc internal.RawDocument) (internal.RawDocument, internal.DropCounts) {
	out := internal.RawDocument{
		Devices:    make([]internal.RawDevice, 0, len(doc.Devices)),
		Components: make([]internal.RawComponent, 0, len(doc.Components)),
		Guides:     make([]internal.RawGuide, 0, len(doc.Guides)),
		Steps:      make([]internal.RawStep, 0, len(doc.Steps)),
	}
	drops := internal.DropCounts{}

	seenDevices := map[deviceKey]struct{}{}
	for i, dev := range doc.Devices {
		if dev.DeviceID == 0 {
			dev.DeviceID = int64(i + 1)
		}
		if strings.TrimSpace(dev.DeviceName) == "" {
			drops.Malformed++
			d.log.Warn("malformed device dropped", "position", i+1, "reason", "empty DeviceName")
			continue
		}
		key := deviceKey{name: dev.DeviceName, deviceType: derefString(dev.DeviceType)}
		if _, dup := seenDevices[key]; dup {
			continue
		}
		seenDevices[key] = struct{}{}
		out.Devices = append(out.Devices, dev)
	}

	seenComponents := map[componentKey]struct{}{}
	for i, comp := range doc.Components {
		if comp.DeviceID == 0 || strings.TrimSpace(comp.ComponentName) == "" {
			drops.Malformed++
			d.log.Warn("malformed component dropped", "position", i+1, "deviceId", comp.DeviceID, "name", comp.ComponentName)
			continue
		}
		key := componentKey{deviceID: comp.DeviceID, name: comp.ComponentName}
		if _, dup := seenComponents[key]; dup {
			continue
		}
		seenComponents[key] = struct{}{}
		out.Components = append(out.Components, comp)
	}

	seenGuides := map[guideKey]struct{}{}
	for i, guide := range doc.Guides {
		if guide.GuideID == 0 {
			guide.GuideID = int64(i + 1)
		}
		if guide.DeviceID == 0 || strings.TrimSpace(guide.Title) == "" {
			drops.Malformed++
			d.log.Warn("malformed guide dropped", "position", i+1, "deviceId", guide.DeviceID, "title", guide.Title)
			continue
		}
		key := guideKey{deviceID: guide.DeviceID, title: guide.Title}
		if _, dup := seenGuides[key]; dup {
			continue
		}
		seenGuides[key] = struct{}{}
		out.Guides = append(out.Guides, guide)
	}

	seenSteps := map[stepKey]struct{}{}
	for i, step := range doc.Steps {
		if step.GuideID == 0 || step.StepNumber <= 0 || strings.TrimSpace(step.Description) == "" {
			drops.Malformed++
			d.log.Warn("malformed step dropped", "position", i+1, "guideId", step.GuideID, "stepNumber", step.StepNumber)
			continue
		}
		key := stepKey{guideID: step.GuideID, number: step.StepNumber}
		if _, dup := seenSteps[key]; dup {
			continue
		}
		seenSteps[key] = struct{}{}
		out.Steps = append(out.Steps, step)
	}

	return out, drops
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
