package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-pipeline/internal/config"
	"github.com/jonathan/career-pipeline/internal/db"
	"github.com/jonathan/career-pipeline/internal/input"
	"github.com/jonathan/career-pipeline/internal/observability"
	"github.com/jonathan/career-pipeline/internal/pipeline"
)

const historyConnectTimeout = 5 * time.Second

// environment is the process surface the command reads from and writes to.
type environment struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
}

// execute runs the root command with args. Usage errors are reported with the usage text;
// the process exits normally either way.
func execute(ctx context.Context, env environment, args []string) {
	cmd := newRootCommand(env)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(env.stderr, "Error: %v\n%s", err, cmd.UsageString()) //nolint:errcheck
	}
}

func newRootCommand(env environment) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pipeline_harness [document]",
		Short: "Career backend end-to-end pipeline harness",
		Long: `Exercises a running career backend end to end: registration and login -> PDF upload
and career field extraction -> job scraping -> favorites -> career chat -> JSON report.

The document path is prompted for when not given. Settings come from PIPELINE_* environment
variables, an optional YAML file named by PIPELINE_CONFIG, and .env.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			document := ""
			if len(args) == 1 {
				document = args[0]
			}
			runHarness(cmd.Context(), env, document)
			return nil
		},
	}
	cmd.SetIn(env.stdin)
	cmd.SetOut(env.stdout)
	cmd.SetErr(env.stderr)
	return cmd
}

// runHarness performs one run. Every failure is reported on the console and the process still
// exits normally; the returned summary is nil when the run could not start.
func runHarness(ctx context.Context, env environment, document string) (summary *pipeline.Summary) {
	logger := log.New(env.stderr, "", log.LstdFlags)
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("Unexpected error: %v\n%s", r, debug.Stack())
			summary = nil
		}
	}()

	cfg, err := config.Load(env.getenv)
	if err != nil {
		fmt.Fprintf(env.stdout, "❌ %v\n", err) //nolint:errcheck
		return nil
	}

	printer := observability.NewPrinter(env.stdout, cfg.Verbose)

	var recorder pipeline.RunRecorder
	if cfg.DatabaseURL != "" {
		store, err := openHistory(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Printf("Warning: run history disabled: %v", err)
		} else {
			defer store.Close()
			recorder = store
		}
	}

	harness, err := pipeline.FromConfig(cfg, input.NewConsole(env.stdin, env.stdout), printer, logger, recorder)
	if err != nil {
		printer.Fail("%v", err)
		return nil
	}

	return harness.Run(ctx, pipeline.RunInput{DocumentPath: document})
}

func openHistory(ctx context.Context, databaseURL string) (*db.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, historyConnectTimeout)
	defer cancel()

	store, err := db.Connect(connectCtx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(connectCtx); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}
