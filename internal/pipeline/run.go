package pipeline

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"smartmentor/internal"
	"smartmentor/internal/config"
)

// Service runs the full transform: dedupe, validate, remap, render. Each
// stage takes the previous stage's output as an explicit value and returns a
// new one; nothing is mutated across stage boundaries.
type Service struct {
	cfg config.Config
	log *slog.Logger
}

func NewService(cfg config.Config, log *slog.Logger) *Service {
	return &Service{cfg: cfg, log: log}
}

type Result struct {
	RunID   string
	Dataset internal.Dataset
	SQL     string
	Summary internal.Summary
}

func (s *Service) Run(doc internal.RawDocument) (Result, error) {
	start := time.Now()

	deduped, malformed := NewDeduplicator(s.log).Dedupe(doc)
	validated, orphaned := NewValidator(s.log).Validate(deduped)
	drops := malformed.Add(orphaned)

	ds, err := NewMapper().Map(validated)
	if err != nil {
		return Result{}, err
	}

	summary := BuildSummary(ds, drops, time.Now())
	result := Result{
		RunID:   uuid.NewString(),
		Dataset: ds,
		SQL:     RenderSQL(ds),
		Summary: summary,
	}

	s.log.Info("pipeline run complete",
		"runId", result.RunID,
		"devices", summary.Devices,
		"components", summary.Components,
		"guides", summary.Guides,
		"steps", summary.Steps,
		"droppedMalformed", summary.DroppedMalformed,
		"droppedOrphaned", summary.DroppedOrphaned,
		"totalMs", time.Since(start).Milliseconds(),
	)

	return result, nil
}
