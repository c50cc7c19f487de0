// Package observability provides formatted console output for pipeline runs.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/career-pipeline/internal/session"
	"github.com/jonathan/career-pipeline/internal/types"
)

const (
	// sectionWidth is the width of section rules
	sectionWidth = 80
	// boxWidth is the width of verbose detail boxes
	boxWidth = 60
	// maxJobsToShow is the number of jobs displayed per search bucket
	maxJobsToShow = 3
	// maxSkillsToShow is the number of skills displayed per career field
	maxSkillsToShow = 5

	fieldSummaryChars   = 100
	overallSummaryChars = 200
	answerPreviewChars  = 500
	descriptionChars    = 120
)

// Printer handles formatted output for a pipeline run.
type Printer struct {
	out     io.Writer
	verbose bool

	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	heading lipgloss.Style
}

// NewPrinter creates a new Printer that writes to the given writer. Styling is
// only applied when the writer is a color-capable terminal.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	r := lipgloss.NewRenderer(out)
	return &Printer{
		out:     out,
		verbose: verbose,
		success: r.NewStyle().Foreground(lipgloss.Color("#3FB950")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#D29922")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")),
	}
}

// Verbose reports whether detail boxes are printed.
func (p *Printer) Verbose() bool { return p.verbose }

// Section prints a full-width titled rule.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Section(title string) {
	rule := strings.Repeat("=", sectionWidth)
	fmt.Fprintf(p.out, "\n%s\n  %s\n%s\n\n", rule, p.heading.Render(title), rule)
}

// Info prints a plain progress line.
//
//nolint:errcheck
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success prints a line marked as succeeded.
func (p *Printer) Success(format string, args ...any) {
	p.mark("✅", p.success, format, args...)
}

// Warn prints a line marked as a recoverable problem.
func (p *Printer) Warn(format string, args ...any) {
	p.mark("⚠️ ", p.warning, format, args...)
}

// Fail prints a line marked as failed.
func (p *Printer) Fail(format string, args ...any) {
	p.mark("❌", p.failure, format, args...)
}

//nolint:errcheck
func (p *Printer) mark(symbol string, style lipgloss.Style, format string, args ...any) {
	fmt.Fprintf(p.out, "%s %s\n", symbol, style.Render(fmt.Sprintf(format, args...)))
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-7))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintTokenInfo outputs what can be read from an access token without verifying it.
// Only printed in verbose mode.
func (p *Printer) PrintTokenInfo(info session.TokenInfo) {
	if !p.verbose {
		return
	}

	var sb strings.Builder
	if !info.JWT {
		sb.WriteString("Opaque token (not a JWT)")
	} else {
		sb.WriteString(fmt.Sprintf("Subject:  %s\n", valueOr(info.Subject, "N/A")))
		if info.ExpiresAt != nil {
			sb.WriteString(fmt.Sprintf("Expires:  %s", info.ExpiresAt.Format("2006-01-02 15:04:05")))
		} else {
			sb.WriteString("Expires:  never")
		}
	}

	p.printBox("ACCESS TOKEN", sb.String())
}

// PrintExtraction outputs the document extraction summary.
//
//nolint:errcheck
func (p *Printer) PrintExtraction(result *types.ExtractionResult) {
	if result == nil {
		return
	}

	fmt.Fprintln(p.out, "\n📊 Results:")
	fmt.Fprintf(p.out, "   - Filename: %s\n", valueOr(result.Filename, "N/A"))
	fmt.Fprintf(p.out, "   - Pages: %d\n", result.PageCount)
	fmt.Fprintf(p.out, "   - Characters: %d\n", result.CharCount)
	fmt.Fprintf(p.out, "   - Saved to DB: %t\n", result.SavedToDB)
	fmt.Fprintf(p.out, "   - Career Fields Found: %d\n", len(result.CareerFields))

	if len(result.CareerFields) > 0 {
		fmt.Fprintln(p.out, "\n💼 Career Fields:")
		for i, field := range result.CareerFields {
			fmt.Fprintf(p.out, "   %d. %s\n", i+1, valueOr(field.Field, "N/A"))
			fmt.Fprintf(p.out, "      Summary: %s\n", truncate(valueOr(field.Summary, "N/A"), fieldSummaryChars))
			if len(field.Skills) > 0 {
				skills := field.Skills[:min(len(field.Skills), maxSkillsToShow)]
				fmt.Fprintf(p.out, "      Skills: %s\n", strings.Join(skills, ", "))
			}
		}
	}

	if result.OverallSummary != "" {
		fmt.Fprintf(p.out, "\n📝 Overall Summary: %s\n", truncate(result.OverallSummary, overallSummaryChars))
	}

	if result.ErrorNote != "" {
		fmt.Fprintln(p.out)
		p.Warn("Warning: %s", result.ErrorNote)
	}
}

// PrintJobSearch outputs both search buckets of a job search.
//
//nolint:errcheck
func (p *Printer) PrintJobSearch(result *types.JobSearchResult) {
	if result == nil {
		return
	}

	fmt.Fprintln(p.out, "\n📊 Results:")
	fmt.Fprintf(p.out, "   - City: %s\n", valueOr(result.City, "N/A"))
	fmt.Fprintf(p.out, "   - Total Jobs Found: %d\n", result.TotalJobs)

	cf := result.CareerFieldSearch
	fmt.Fprintln(p.out, "\n💼 Career Field Search:")
	fmt.Fprintf(p.out, "   - Career Field: %s\n", valueOr(cf.CareerField.FieldName, "N/A"))
	fmt.Fprintf(p.out, "   - Keywords: %s\n", valueOr(cf.Keywords, "N/A"))
	fmt.Fprintf(p.out, "   - Jobs Found: %d\n", cf.JobsFound)
	p.printJobs("career field search", cf.Jobs)

	sk := result.SkillsSearch
	fmt.Fprintln(p.out, "\n🛠️  Skills Search:")
	fmt.Fprintf(p.out, "   - Skills Used: %s\n", strings.Join(sk.SkillNames(), ", "))
	fmt.Fprintf(p.out, "   - Keywords: %s\n", valueOr(sk.Keywords, "N/A"))
	fmt.Fprintf(p.out, "   - Jobs Found: %d\n", sk.JobsFound)
	p.printJobs("skills search", sk.Jobs)
}

//nolint:errcheck
func (p *Printer) printJobs(source string, jobs []types.Job) {
	if len(jobs) == 0 {
		return
	}

	fmt.Fprintf(p.out, "\n   First %d jobs from %s:\n", maxJobsToShow, source)
	for i, job := range jobs[:min(len(jobs), maxJobsToShow)] {
		fmt.Fprintf(p.out, "   %d. %s\n", i+1, valueOr(job.Title, "N/A"))
		fmt.Fprintf(p.out, "      Company: %s\n", valueOr(job.Company, "N/A"))
		fmt.Fprintf(p.out, "      Location: %s\n", valueOr(job.Location, "N/A"))
		if p.verbose && job.Description != "" {
			fmt.Fprintf(p.out, "      About: %s\n", truncate(HTMLToText(job.Description), descriptionChars))
		}
	}
}

// PrintFavorites outputs the saved favorite and the stored list.
func (p *Printer) PrintFavorites(record *types.FavoriteRecord) {
	if record == nil {
		return
	}

	p.Success("Favorites fetched: %d items", len(record.All))
	if len(record.All) > 0 {
		first := record.All[0]
		p.Info("   First favorite: %s @ %s", valueOr(first.Title, "N/A"), valueOr(first.Company, "N/A"))
	}
}

// PrintChatAnswer outputs a preview of the career chat answer.
func (p *Printer) PrintChatAnswer(answer string) {
	p.Info("\n💬 LLM Answer (first %d chars):", answerPreviewChars)
	p.Info("%s", truncate(answer, answerPreviewChars))
}

// SummaryMark is the verdict shown for one line of the final summary.
type SummaryMark int

const (
	MarkSuccess SummaryMark = iota
	MarkFailed
	MarkSkipped
)

// SummaryLine is one entry of the final summary.
type SummaryLine struct {
	Label string
	Mark  SummaryMark
}

// PrintSummary outputs the final per-stage verdicts.
func (p *Printer) PrintSummary(lines []SummaryLine) {
	p.Section("TEST SUMMARY")
	for _, line := range lines {
		switch line.Mark {
		case MarkSuccess:
			p.Success("%s: SUCCESS", line.Label)
		case MarkFailed:
			p.Fail("%s: FAILED", line.Label)
		default:
			p.Warn("%s: SKIPPED/FAILED", line.Label)
		}
	}
}

// PrintCompletion prints the closing rule of a run.
//
//nolint:errcheck
func (p *Printer) PrintCompletion(message string) {
	rule := strings.Repeat("=", sectionWidth)
	fmt.Fprintf(p.out, "\n%s\n%s\n%s\n\n", rule, message, rule)
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
