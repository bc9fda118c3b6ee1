package pipeline

import (
	"time"

	"smartmentor/internal"
)

// BuildSummary counts surviving records per kind and records the recoverable
// drops for the run. Observational only.
func BuildSummary(ds internal.Dataset, drops internal.DropCounts, now time.Time) internal.Summary {
	return internal.Summary{
		Devices:          len(ds.Devices),
		Components:       len(ds.Components),
		Guides:           len(ds.Guides),
		Steps:            len(ds.Steps),
		TotalRecords:     len(ds.Devices) + len(ds.Components) + len(ds.Guides) + len(ds.Steps),
		DroppedMalformed: drops.Malformed,
		DroppedOrphaned:  drops.Orphaned,
		GeneratedAt:      now.UTC().Format(time.RFC3339),
	}
}
