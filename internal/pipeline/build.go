package pipeline

import (
	"fmt"
	"log"

	"github.com/jonathan/career-pipeline/internal/advisor"
	"github.com/jonathan/career-pipeline/internal/apiclient"
	"github.com/jonathan/career-pipeline/internal/config"
	"github.com/jonathan/career-pipeline/internal/discovery"
	"github.com/jonathan/career-pipeline/internal/favorites"
	"github.com/jonathan/career-pipeline/internal/ingestion"
	"github.com/jonathan/career-pipeline/internal/input"
	"github.com/jonathan/career-pipeline/internal/observability"
	"github.com/jonathan/career-pipeline/internal/session"
)

// FromConfig wires the backend components for cfg into a Harness. recorder may be nil.
func FromConfig(cfg *config.Config, in input.Provider, printer *observability.Printer, logger *log.Logger, recorder RunRecorder) (*Harness, error) {
	client, err := apiclient.New(apiclient.Options{
		BaseURL:      cfg.BaseURL,
		RateLimitRPS: cfg.RateLimitRPS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	opts := Options{
		Identity:    session.NewIdentity(cfg.Username, cfg.Password),
		Question:    cfg.Question,
		ReportPath:  cfg.ReportPath,
		SettleDelay: cfg.SettleDelay,
		BaseURL:     client.BaseURL(),
	}

	deps := Dependencies{
		Auth:      session.NewBootstrapper(client, cfg.ShortTimeout, logger),
		Ingestor:  ingestion.NewIngestor(client, cfg.LongTimeout),
		Discovery: discovery.NewDiscovery(client, cfg.LongTimeout),
		Favorites: favorites.NewRecorder(client, cfg.ShortTimeout, logger),
		Advisor:   advisor.NewAdvisor(client, cfg.ChatTimeout),
		Recorder:  recorder,
		Input:     in,
		Printer:   printer,
		Logger:    logger,
	}

	return NewHarness(opts, deps), nil
}
