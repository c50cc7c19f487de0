package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-pipeline/internal/observability"
	"github.com/jonathan/career-pipeline/internal/pipeline/steps"
)

// Outcome is the result of one stage.
type Outcome struct {
	Stage    steps.Stage
	Status   steps.Status
	Message  string
	Err      error
	Duration time.Duration
}

// Summary describes a finished run.
type Summary struct {
	RunID    uuid.UUID
	Outcomes []Outcome

	// Aborted is set when a fatal stage failed, required input was missing or the run was
	// interrupted. Stages after the abort point are not_run.
	Aborted     bool
	AbortReason string
	Interrupted bool

	// ReportPath is set only when the report was written.
	ReportPath string

	started bool
}

// Outcome returns the outcome recorded for stage.
func (s *Summary) Outcome(stage steps.Stage) (Outcome, bool) {
	for _, o := range s.Outcomes {
		if o.Stage == stage {
			return o, true
		}
	}
	return Outcome{}, false
}

// Status returns the status of stage, or not_run when it has no outcome.
func (s *Summary) Status(stage steps.Stage) steps.Status {
	if o, ok := s.Outcome(stage); ok {
		return o.Status
	}
	return steps.StatusNotRun
}

// Lines maps stage statuses onto the final console summary. Failures of the optional
// engagement stages are shown as skipped.
func (s *Summary) Lines() []observability.SummaryLine {
	shown := []steps.Stage{steps.StageIngest, steps.StageDiscover, steps.StageRecordFavorite, steps.StageAdvise}

	lines := make([]observability.SummaryLine, 0, len(shown))
	for _, stage := range shown {
		def := steps.Registry[stage]
		mark := observability.MarkFailed
		switch {
		case s.Status(stage) == steps.StatusSucceeded:
			mark = observability.MarkSuccess
		case def.Category == steps.CategoryEngagement:
			mark = observability.MarkSkipped
		}
		lines = append(lines, observability.SummaryLine{Label: def.Label, Mark: mark})
	}
	return lines
}

func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
}

func (s *Summary) abort(reason string) {
	if s.Aborted {
		return
	}
	s.Aborted = true
	s.AbortReason = reason
}

func (s *Summary) interrupt() {
	s.Interrupted = true
	s.abort("interrupted")
}

// fillNotRun records not_run for every stage without an outcome.
func (s *Summary) fillNotRun() {
	for _, stage := range steps.Order {
		if _, ok := s.Outcome(stage); !ok {
			s.add(Outcome{Stage: stage, Status: steps.StatusNotRun})
		}
	}
}
