package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/career-pipeline/internal/apiclient"
	"github.com/jonathan/career-pipeline/internal/discovery"
	"github.com/jonathan/career-pipeline/internal/favorites"
	"github.com/jonathan/career-pipeline/internal/ingestion"
	"github.com/jonathan/career-pipeline/internal/input"
	"github.com/jonathan/career-pipeline/internal/pipeline/steps"
	"github.com/jonathan/career-pipeline/internal/report"
	"github.com/jonathan/career-pipeline/internal/session"
)

// stageHandler performs one stage and returns a short success message.
type stageHandler func(ctx context.Context, state *runState) (string, error)

func (h *Harness) handler(stage steps.Stage) stageHandler {
	switch stage {
	case steps.StageRegisterLogin:
		return h.registerLogin
	case steps.StageIngest:
		return h.ingest
	case steps.StageDiscover:
		return h.discover
	case steps.StageRecordFavorite:
		return h.recordFavorite
	case steps.StageAdvise:
		return h.advise
	case steps.StageAggregate:
		return h.aggregate
	default:
		return func(context.Context, *runState) (string, error) {
			return "", fmt.Errorf("no handler for stage %s", stage)
		}
	}
}

func (h *Harness) registerLogin(ctx context.Context, state *runState) (string, error) {
	p := h.deps.Printer
	p.Section("STEP 0: USER REGISTRATION & LOGIN")
	p.Info("📝 Registering user: %s", h.opts.Identity.Username)

	s, err := h.deps.Auth.Bootstrap(ctx, h.opts.Identity)
	if err != nil {
		h.printFailure(err)
		return "", err
	}
	state.session = s

	p.Success("Login successful, got access token")
	p.PrintTokenInfo(session.DescribeToken(s.Token()))
	return fmt.Sprintf("logged in as %s", s.Identity.Username), nil
}

func (h *Harness) ingest(ctx context.Context, state *runState) (string, error) {
	p := h.deps.Printer
	p.Section("STEP 1: PDF UPLOAD & CAREER FIELD EXTRACTION")
	p.Info("📄 Uploading PDF: %s", state.documentPath)

	result, err := h.deps.Ingestor.Upload(ctx, state.documentPath, state.session.Token())
	if err != nil {
		h.printFailure(err)
		return "", err
	}
	state.extraction = result

	p.Success("PDF uploaded and processed successfully!")
	p.PrintExtraction(result)
	return fmt.Sprintf("extracted %d career fields", len(result.CareerFields)), nil
}

func (h *Harness) discover(ctx context.Context, state *runState) (string, error) {
	p := h.deps.Printer

	city, err := input.Required(ctx, h.deps.Input, input.KeyCity, "\n📍 Enter city for job search (e.g., 'New York', 'London'): ")
	if err != nil {
		return "", err
	}
	pagesAnswer, err := h.deps.Input.Prompt(ctx, input.KeyPages, "📄 Number of pages to scrape (default: 1, max: 3): ")
	if err != nil {
		return "", err
	}
	pages := discovery.ParsePages(pagesAnswer)

	p.Section("STEP 2: JOB SCRAPING")
	p.Info("🔍 Scraping jobs for city: %s", city)
	p.Info("📄 Max pages: %d", pages)
	p.Info("\n⏳ This may take a while (30-60 seconds)...")

	result, err := h.deps.Discovery.Search(ctx, city, pages)
	if err != nil {
		h.printFailure(err)
		return "", err
	}
	state.jobs = result

	p.Success("Job scraping completed in %.2f seconds!", result.Elapsed.Seconds())
	p.PrintJobSearch(result)
	return fmt.Sprintf("found %d jobs in %s", result.TotalJobs, result.City), nil
}

func (h *Harness) recordFavorite(ctx context.Context, state *runState) (string, error) {
	p := h.deps.Printer
	p.Section("STEP 3: FAVORITES (SAVE & LIST)")

	job, ok := favorites.PickCandidate(*state.jobs)
	if !ok {
		p.Warn("No jobs available to save as favorite")
		return "", &errSkip{reason: "no jobs available to save as favorite"}
	}

	p.Info("💾 Saving favorite job: %s", job.Title)
	record, err := h.deps.Favorites.Save(ctx, job, state.session.Token())
	if err != nil {
		h.printFailure(err)
		return "", err
	}
	state.favorites = record

	p.Success("Favorite saved")
	p.PrintFavorites(record)
	return fmt.Sprintf("saved %q", record.Saved.Title), nil
}

func (h *Harness) advise(ctx context.Context, state *runState) (string, error) {
	p := h.deps.Printer
	p.Section("STEP 4: CAREER CHAT WITH LLM")
	p.Info("🧠 Asking LLM: %s", h.opts.Question)

	answer, err := h.deps.Advisor.Ask(ctx, h.opts.Question, state.session.Token())
	if err != nil {
		h.printFailure(err)
		return "", err
	}
	state.chatAnswer = &answer

	p.PrintChatAnswer(answer)
	return fmt.Sprintf("answer of %d characters", len([]rune(answer))), nil
}

func (h *Harness) aggregate(ctx context.Context, state *runState) (string, error) {
	r, err := report.Build(h.now(), state.extraction, state.jobs, state.favorites, state.chatAnswer)
	if err != nil {
		return "", err
	}
	if err := report.Write(h.opts.ReportPath, r); err != nil {
		h.deps.Printer.Fail("Could not save results: %v", err)
		return "", err
	}
	state.reportPath = h.opts.ReportPath

	h.deps.Printer.Info("\n💾 Full results saved to: %s", h.opts.ReportPath)
	h.record(ctx, state.runID, func(ctx context.Context, rec RunRecorder) error {
		return rec.SaveReport(ctx, state.runID, r)
	})
	return "report written to " + h.opts.ReportPath, nil
}

// printFailure reports a stage error the way a user needs to act on it.
func (h *Harness) printFailure(err error) {
	p := h.deps.Printer

	var (
		netErr   *apiclient.NetworkError
		noData   *discovery.NoExtractionDataError
		docErr   *ingestion.DocumentError
		protoErr *apiclient.ProtocolError
	)
	switch {
	case errors.As(err, &noData):
		p.Fail("Error: %s", valueOr(noData.Detail, "No data found in database"))
		p.Info("   Please upload PDFs first to generate career fields and skills!")
	case errors.As(err, &docErr):
		p.Fail("Error: PDF file not found: %s", docErr.Path)
	case errors.As(err, &netErr) && netErr.Timeout:
		p.Fail("Error: request to %s timed out", netErr.URL)
	case errors.As(err, &netErr):
		p.Fail("Error: Cannot connect to API at %s", h.opts.BaseURL)
		p.Info("   Make sure the backend server is running!")
	case errors.As(err, &protoErr):
		p.Fail("Error: %v", protoErr)
	default:
		p.Fail("Error: %v", err)
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
