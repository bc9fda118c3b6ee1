package pipeline

import (
	"fmt"

	"smartmentor/internal"
)

// UnresolvedReferenceError reports a parent lookup that failed after
// validation. Validation guarantees every reference resolves, so hitting this
// means the working set is inconsistent and the run must abort rather than
// emit broken SQL.
type UnresolvedReferenceError struct {
	Kind  string
	RefID int64
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("%s references unknown parent id %d after validation", e.Kind, e.RefID)
}

// Mapper assigns dense surrogate identifiers per kind, in survival order,
// starting at 1, and rewrites child foreign keys through the raw identity.
type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

func (m *Mapper) Map(doc internal.RawDocument) (internal.Dataset, error) {
	ds := internal.Dataset{
		Devices:    make([]internal.Device, 0, len(doc.Devices)),
		Components: make([]internal.Component, 0, len(doc.Components)),
		Guides:     make([]internal.Guide, 0, len(doc.Guides)),
		Steps:      make([]internal.Step, 0, len(doc.Steps)),
	}

	deviceByRawID := make(map[int64]int64, len(doc.Devices))
	for i, dev := range doc.Devices {
		id := int64(i + 1)
		deviceByRawID[dev.DeviceID] = id
		ds.Devices = append(ds.Devices, internal.Device{
			DeviceID:   id,
			DeviceName: dev.DeviceName,
			DeviceType: dev.DeviceType,
			ImageURL:   dev.ImageURL,
		})
	}

	for i, comp := range doc.Components {
		deviceID, ok := deviceByRawID[comp.DeviceID]
		if !ok {
			return internal.Dataset{}, &UnresolvedReferenceError{Kind: "component", RefID: comp.DeviceID}
		}
		ds.Components = append(ds.Components, internal.Component{
			ComponentID:   int64(i + 1),
			DeviceID:      deviceID,
			ComponentName: comp.ComponentName,
			Description:   comp.Description,
		})
	}

	guideByRawID := make(map[int64]int64, len(doc.Guides))
	for i, guide := range doc.Guides {
		deviceID, ok := deviceByRawID[guide.DeviceID]
		if !ok {
			return internal.Dataset{}, &UnresolvedReferenceError{Kind: "guide", RefID: guide.DeviceID}
		}
		id := int64(i + 1)
		guideByRawID[guide.GuideID] = id
		ds.Guides = append(ds.Guides, internal.Guide{
			GuideID:     id,
			DeviceID:    deviceID,
			Title:       guide.Title,
			DateCreated: guide.DateCreated,
			GuideURL:    guide.GuideURL,
		})
	}

	for i, step := range doc.Steps {
		guideID, ok := guideByRawID[step.GuideID]
		if !ok {
			return internal.Dataset{}, &UnresolvedReferenceError{Kind: "step", RefID: step.GuideID}
		}
		ds.Steps = append(ds.Steps, internal.Step{
			StepID:      int64(i + 1),
			GuideID:     guideID,
			StepNumber:  step.StepNumber,
			Description: step.Description,
		})
	}

	return ds, nil
}
