// Package pipeline orchestrates a full harness run against the career backend.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-pipeline/internal/input"
	"github.com/jonathan/career-pipeline/internal/observability"
	"github.com/jonathan/career-pipeline/internal/pipeline/steps"
	"github.com/jonathan/career-pipeline/internal/types"
)

// Authenticator obtains a session for a test identity.
type Authenticator interface {
	Bootstrap(ctx context.Context, identity types.TestIdentity) (types.Session, error)
}

// DocumentUploader submits a document for extraction.
type DocumentUploader interface {
	Upload(ctx context.Context, path, token string) (*types.ExtractionResult, error)
}

// JobSearcher runs a job search for a city.
type JobSearcher interface {
	Search(ctx context.Context, city string, maxPages int) (*types.JobSearchResult, error)
}

// FavoriteSaver stores a job as a favorite.
type FavoriteSaver interface {
	Save(ctx context.Context, job types.Job, token string) (*types.FavoriteRecord, error)
}

// CareerAdvisor answers a career question.
type CareerAdvisor interface {
	Ask(ctx context.Context, question, token string) (string, error)
}

// RunRecorder persists run history. Errors returned by a recorder are logged and never
// change the outcome of a run.
type RunRecorder interface {
	StartRun(ctx context.Context, runID uuid.UUID, username, documentPath string) error
	RecordStage(ctx context.Context, runID uuid.UUID, stage, category, status, message string, duration time.Duration) error
	SaveReport(ctx context.Context, runID uuid.UUID, report *types.PipelineReport) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
}

// Run statuses handed to RunRecorder.CompleteRun.
const (
	RunStatusCompleted = "completed"
	RunStatusAborted   = "aborted"
)

// Options holds the per-run settings of a Harness.
type Options struct {
	Identity    types.TestIdentity
	Question    string
	ReportPath  string
	SettleDelay time.Duration
	BaseURL     string // only used in messages
}

// Dependencies are the collaborators a Harness drives. Recorder may be nil.
type Dependencies struct {
	Auth      Authenticator
	Ingestor  DocumentUploader
	Discovery JobSearcher
	Favorites FavoriteSaver
	Advisor   CareerAdvisor
	Recorder  RunRecorder

	Input   input.Provider
	Printer *observability.Printer
	Logger  *log.Logger
}

// Harness runs the staged pipeline.
type Harness struct {
	opts Options
	deps Dependencies
	now  func() time.Time
}

// RunInput carries per-invocation arguments.
type RunInput struct {
	// DocumentPath is prompted for when empty.
	DocumentPath string
}

// NewHarness creates a Harness.
func NewHarness(opts Options, deps Dependencies) *Harness {
	if deps.Logger == nil {
		deps.Logger = log.Default()
	}
	return &Harness{opts: opts, deps: deps, now: time.Now}
}

// runState carries stage outputs forward within one run.
type runState struct {
	runID        uuid.UUID
	documentPath string
	session      types.Session
	extraction   *types.ExtractionResult
	jobs         *types.JobSearchResult
	favorites    *types.FavoriteRecord
	chatAnswer   *string
	reportPath   string
}

// errSkip marks a stage that chose not to run; it is recorded as skipped, not failed.
type errSkip struct {
	reason string
}

func (e *errSkip) Error() string { return e.reason }

// Run executes every stage in order and returns the run summary. It never panics on stage
// failures; every failure is captured as an Outcome.
func (h *Harness) Run(ctx context.Context, in RunInput) *Summary {
	printer := h.deps.Printer
	summary := &Summary{RunID: uuid.New()}
	state := &runState{runID: summary.RunID}

	printer.Section("FULL PIPELINE TESTING SCRIPT (AUTH + PDF + JOBS + FAVORITES + CHAT)")

	path, err := h.resolveDocument(ctx, in)
	if err != nil && ctx.Err() != nil {
		summary.interrupt()
		summary.fillNotRun()
		h.finish(ctx, summary)
		return summary
	}
	if err != nil {
		printer.Fail("PDF path is required!")
		summary.abort(fmt.Sprintf("document path: %v", err))
		summary.fillNotRun()
		h.finish(ctx, summary)
		return summary
	}
	state.documentPath = path

	h.record(ctx, summary.RunID, func(ctx context.Context, r RunRecorder) error {
		return r.StartRun(ctx, summary.RunID, h.opts.Identity.Username, path)
	})
	summary.started = true

	statuses := make(map[steps.Stage]steps.Status, len(steps.Order))
	for _, stage := range steps.Order {
		def := steps.Registry[stage]

		if summary.Aborted {
			summary.add(Outcome{Stage: stage, Status: steps.StatusNotRun})
			continue
		}
		if ctx.Err() != nil {
			summary.interrupt()
			summary.add(Outcome{Stage: stage, Status: steps.StatusNotRun})
			continue
		}

		outcome := h.runStage(ctx, def, statuses, state)
		statuses[stage] = outcome.Status
		summary.add(outcome)

		switch {
		case outcome.Status != steps.StatusFailed:
		case ctx.Err() != nil:
			summary.interrupt()
		case def.Fatal:
			printer.Fail("%s", fatalMessage(stage))
			summary.abort(fmt.Sprintf("%s failed: %v", stage, outcome.Err))
		case isUserInputError(outcome.Err):
			printer.Fail("%s", outcome.Err)
			summary.abort(fmt.Sprintf("%s: %v", stage, outcome.Err))
		default:
			if blocked := steps.BlockedStages(statuses); len(blocked) > 0 && printer.Verbose() {
				printer.Info("   Stages blocked by this failure: %v", blocked)
			}
		}

		if !summary.Interrupted {
			h.record(ctx, summary.RunID, func(ctx context.Context, r RunRecorder) error {
				return r.RecordStage(ctx, summary.RunID, string(stage), def.Category, string(outcome.Status), outcome.Message, outcome.Duration)
			})
		}

		if stage == steps.StageIngest && outcome.Status == steps.StatusSucceeded {
			if err := h.settle(ctx); err != nil {
				summary.interrupt()
			}
		}
	}

	summary.ReportPath = state.reportPath
	h.finish(ctx, summary)
	return summary
}

// runStage validates dependencies and runs the stage handler, timing it.
func (h *Harness) runStage(ctx context.Context, def steps.StageDefinition, statuses map[steps.Stage]steps.Status, state *runState) Outcome {
	outcome := Outcome{Stage: def.Name}

	if err := steps.ValidateDependencies(def.Name, statuses); err != nil {
		outcome.Status = steps.StatusSkipped
		outcome.Err = err
		outcome.Message = err.Error()
		h.deps.Logger.Printf("Skipping %s: %v", def.Name, err)
		return outcome
	}

	start := time.Now()
	message, err := h.handler(def.Name)(ctx, state)
	outcome.Duration = time.Since(start)

	var skip *errSkip
	switch {
	case err == nil:
		outcome.Status = steps.StatusSucceeded
		outcome.Message = message
	case errors.As(err, &skip):
		outcome.Status = steps.StatusSkipped
		outcome.Message = skip.reason
	default:
		outcome.Status = steps.StatusFailed
		outcome.Err = err
		outcome.Message = err.Error()
	}
	return outcome
}

func (h *Harness) resolveDocument(ctx context.Context, in RunInput) (string, error) {
	if in.DocumentPath != "" {
		return in.DocumentPath, nil
	}
	return input.Required(ctx, h.deps.Input, input.KeyDocument, "📄 Enter path to PDF file: ")
}

// settle gives the backend time to commit extraction data before it is searched.
func (h *Harness) settle(ctx context.Context) error {
	if h.opts.SettleDelay <= 0 {
		return nil
	}
	h.deps.Printer.Info("\n⏳ Waiting %s for database to update...", h.opts.SettleDelay)

	timer := time.NewTimer(h.opts.SettleDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// finish records the final status and prints the summary.
func (h *Harness) finish(ctx context.Context, summary *Summary) {
	if summary.started && !summary.Interrupted {
		status := RunStatusCompleted
		if summary.Aborted {
			status = RunStatusAborted
		}
		h.record(ctx, summary.RunID, func(ctx context.Context, r RunRecorder) error {
			return r.CompleteRun(ctx, summary.RunID, status)
		})
	}

	printer := h.deps.Printer
	if summary.Interrupted {
		printer.Warn("Test interrupted by user.")
		return
	}

	printer.PrintSummary(summary.Lines())
	if summary.AbortReason != "" && printer.Verbose() {
		printer.Info("Aborted: %s", summary.AbortReason)
	}
	printer.PrintCompletion("Testing completed!")
}

// record invokes the optional recorder, logging failures.
func (h *Harness) record(ctx context.Context, runID uuid.UUID, fn func(context.Context, RunRecorder) error) {
	if h.deps.Recorder == nil {
		return
	}
	if err := fn(ctx, h.deps.Recorder); err != nil {
		h.deps.Logger.Printf("Warning: failed to record run %s: %v", runID, err)
	}
}

func fatalMessage(stage steps.Stage) string {
	switch stage {
	case steps.StageRegisterLogin:
		return "Could not obtain access token, aborting test"
	case steps.StageIngest:
		return "PDF upload failed. Cannot continue with job scraping."
	default:
		return fmt.Sprintf("%s failed, aborting test", stage)
	}
}

func isUserInputError(err error) bool {
	var inputErr *input.UserInputError
	return errors.As(err, &inputErr)
}
