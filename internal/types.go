package internal

// RawDocument is the snapshot produced by the raw record source: four ordered
// sequences of scraped records, still carrying raw parent references.
type RawDocument struct {
	Devices    []RawDevice    `json:"devices"`
	Components []RawComponent `json:"components"`
	Guides     []RawGuide     `json:"guides"`
	Steps      []RawStep      `json:"steps"`
}

// RawDevice is a scraped device row. DeviceID is optional in the input; when
// absent, the record's 1-based position in the sequence is its raw identity.
type RawDevice struct {
	DeviceID   int64   `json:"DeviceID,omitempty"`
	DeviceName string  `json:"DeviceName"`
	DeviceType *string `json:"DeviceType"`
	ImageURL   *string `json:"ImageURL"`
}

type RawComponent struct {
	DeviceID      int64   `json:"DeviceID"`
	ComponentName string  `json:"ComponentName"`
	Description   *string `json:"Description"`
}

// RawGuide may carry its own GuideID the same way RawDevice does; steps
// reference it through their raw GuideID.
type RawGuide struct {
	GuideID     int64   `json:"GuideID,omitempty"`
	DeviceID    int64   `json:"DeviceID"`
	Title       string  `json:"Title"`
	DateCreated *string `json:"DateCreated"`
	GuideURL    *string `json:"GuideURL"`
}

type RawStep struct {
	GuideID     int64  `json:"GuideID"`
	StepNumber  int    `json:"StepNumber"`
	Description string `json:"Description"`
}

// Device through Step are the mapped records: surrogate identifiers assigned,
// parent references rewritten. Their fields match the target schema columns.
type Device struct {
	DeviceID   int64   `json:"DeviceID"`
	DeviceName string  `json:"DeviceName"`
	DeviceType *string `json:"DeviceType"`
	ImageURL   *string `json:"ImageURL"`
}

type Component struct {
	ComponentID   int64   `json:"ComponentID"`
	DeviceID      int64   `json:"DeviceID"`
	ComponentName string  `json:"ComponentName"`
	Description   *string `json:"Description"`
}

type Guide struct {
	GuideID     int64   `json:"GuideID"`
	DeviceID    int64   `json:"DeviceID"`
	Title       string  `json:"Title"`
	DateCreated *string `json:"DateCreated"`
	GuideURL    *string `json:"GuideURL"`
}

type Step struct {
	StepID      int64  `json:"StepID"`
	GuideID     int64  `json:"GuideID"`
	StepNumber  int    `json:"StepNumber"`
	Description string `json:"Description"`
}

// Dataset is the final relational document written as structured output and
// loaded into the database.
type Dataset struct {
	Devices    []Device    `json:"devices"`
	Components []Component `json:"components"`
	Guides     []Guide     `json:"guides"`
	Steps      []Step      `json:"steps"`
}

// DropCounts accumulates recoverable drops across a run.
type DropCounts struct {
	Malformed int `json:"malformed"`
	Orphaned  int `json:"orphaned"`
}

func (d DropCounts) Add(other DropCounts) DropCounts {
	return DropCounts{
		Malformed: d.Malformed + other.Malformed,
		Orphaned:  d.Orphaned + other.Orphaned,
	}
}

// Summary is the audit document for one run.
type Summary struct {
	Devices          int    `json:"devices"`
	Components       int    `json:"components"`
	Guides           int    `json:"guides"`
	Steps            int    `json:"steps"`
	TotalRecords     int    `json:"total_records"`
	DroppedMalformed int    `json:"dropped_malformed"`
	DroppedOrphaned  int    `json:"dropped_orphaned"`
	GeneratedAt      string `json:"generated_at"`
}
