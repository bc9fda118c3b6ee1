package pipeline

import (
	"log/slog"

	"smartmentor/internal"
)

// Validator drops child records whose parent did not survive deduplication.
// Devices gate components and guides; surviving guides gate steps, so guide
// filtering must complete before step filtering.
type Validator struct {
	log *slog.Logger
}

func NewValidator(log *slog.Logger) *Validator {
	return &Validator{log: log}
}

// Validate returns a referentially closed document. Orphans are logged and
// counted, never fatal.
func (v *Validator) Validate(doc internal.RawDocument) (internal.RawDocument, internal.DropCounts) {
	out := internal.RawDocument{
		Devices:    doc.Devices,
		Components: make([]internal.RawComponent, 0, len(doc.Components)),
		Guides:     make([]internal.RawGuide, 0, len(doc.Guides)),
		Steps:      make([]internal.RawStep, 0, len(doc.Steps)),
	}
	drops := internal.DropCounts{}

	deviceIDs := make(map[int64]struct{}, len(doc.Devices))
	for _, dev := range doc.Devices {
		deviceIDs[dev.DeviceID] = struct{}{}
	}

	for _, comp := range doc.Components {
		if _, ok := deviceIDs[comp.DeviceID]; !ok {
			drops.Orphaned++
			v.log.Warn("orphan component dropped", "name", comp.ComponentName, "deviceId", comp.DeviceID)
			continue
		}
		out.Components = append(out.Components, comp)
	}

	for _, guide := range doc.Guides {
		if _, ok := deviceIDs[guide.DeviceID]; !ok {
			drops.Orphaned++
			v.log.Warn("orphan guide dropped", "title", guide.Title, "deviceId", guide.DeviceID)
			continue
		}
		out.Guides = append(out.Guides, guide)
	}

	guideIDs := make(map[int64]struct{}, len(out.Guides))
	for _, guide := range out.Guides {
		guideIDs[guide.GuideID] = struct{}{}
	}

	for _, step := range doc.Steps {
		if _, ok := guideIDs[step.GuideID]; !ok {
			drops.Orphaned++
			v.log.Warn("orphan step dropped", "stepNumber", step.StepNumber, "guideId", step.GuideID)
			continue
		}
		out.Steps = append(out.Steps, step)
	}

	return out, drops
}
