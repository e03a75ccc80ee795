// Package app initializes and holds the long-lived services of one
// invocation, acting as a dependency injection container for the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/JakeFAU/draftpicks/internal/archive"
	"github.com/JakeFAU/draftpicks/internal/clock/system"
	"github.com/JakeFAU/draftpicks/internal/config"
	"github.com/JakeFAU/draftpicks/internal/draft"
	"github.com/JakeFAU/draftpicks/internal/extract"
	collyfetcher "github.com/JakeFAU/draftpicks/internal/fetcher/colly"
	"github.com/JakeFAU/draftpicks/internal/id/uuid"
	"github.com/JakeFAU/draftpicks/internal/metrics"
	"github.com/JakeFAU/draftpicks/internal/pipeline"
	"github.com/JakeFAU/draftpicks/internal/publisher/pubsub"
	"github.com/JakeFAU/draftpicks/internal/storage"
)

// SinkOpener opens the relational sink. It is a variable on App so tests can
// swap in a mock.
type SinkOpener func(ctx context.Context, cfg storage.SinkConfig) (storage.Sink, error)

// App holds the shared services for one invocation.
type App struct {
	cfg     config.Config
	logger  *zap.Logger
	sink    storage.Sink
	closers []func() error
}

// New opens the configured sink. Fails fast if it cannot be opened.
func New(ctx context.Context, cfg config.Config, logger *zap.Logger, open SinkOpener) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if open == nil {
		open = storage.OpenSink
	}
	sink, err := open(ctx, cfg.SinkConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}
	logger.Debug("store opened",
		zap.String("driver", cfg.Store.Driver),
		zap.String("table", sink.Table()),
		zap.String("location", sink.Location()),
	)
	return &App{cfg: cfg, logger: logger, sink: sink}, nil
}

// Config returns the loaded configuration.
func (a *App) Config() config.Config { return a.cfg }

// Logger returns the shared logger.
func (a *App) Logger() *zap.Logger { return a.logger }

// Sink returns the opened store.
func (a *App) Sink() storage.Sink { return a.sink }

// Runner wires the scrape pipeline around the opened sink. Archive and
// notification clients are created here, not in New, so read-only commands
// never dial them.
func (a *App) Runner(ctx context.Context) (*pipeline.Runner, error) {
	cfg := a.cfg
	clock := system.New()

	deps := pipeline.Deps{
		Fetcher: collyfetcher.New(collyfetcher.Config{
			UserAgent:     cfg.Source.UserAgent,
			Headers:       cfg.Source.Headers,
			RespectRobots: cfg.Source.RespectRobots,
			Timeout:       cfg.FetchTimeout(),
			MaxBodySize:   cfg.Source.MaxBodyBytes,
		}),
		Sink:    a.sink,
		Metrics: metrics.New(),
		Clock:   clock,
		IDs:     uuid.New(),
	}

	if cfg.Archive.Enabled {
		blobs, closeBlobs, err := storage.OpenBlobStore(ctx, cfg.BlobConfig())
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeBlobs)
		archiver, err := archive.New(blobs, clock, cfg.Archive.Prefix)
		if err != nil {
			return nil, fmt.Errorf("build archiver: %w", err)
		}
		deps.Archiver = archiver
	}

	if cfg.Notify.Topic != "" {
		pub, err := pubsub.New(ctx, cfg.Notify.ProjectID)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pub.Close)
		deps.Publisher = pub
	}

	expected := 0
	if cfg.Table.EnforceWidth {
		expected = draft.Width
	}
	runner, err := pipeline.New(deps, pipeline.Config{
		SourceURL: cfg.Source.URL,
		Headers:   http.Header{},
		Extract: extract.Options{
			Selector:        cfg.Table.Selector,
			Index:           cfg.Table.Index,
			HeaderRows:      cfg.Table.HeaderRows,
			ExpectedWidth:   expected,
			StripReferences: cfg.Table.StripReferences,
		},
		Topic:           strings.TrimSpace(cfg.Notify.Topic),
		MetricsTextfile: cfg.Metrics.Textfile,
	}, a.logger.Named("pipeline"))
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	return runner, nil
}

// Close releases every service in reverse order of creation.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if a.sink != nil {
		if err := a.sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("error closing application services", zap.Error(err))
		return err
	}
	return nil
}
