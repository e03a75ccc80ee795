// Package pipeline runs one scrape: fetch the source page, rebuild the draft
// table grid and refresh the store.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/JakeFAU/draftpicks/internal/archive"
	"github.com/JakeFAU/draftpicks/internal/draft"
	"github.com/JakeFAU/draftpicks/internal/extract"
	"github.com/JakeFAU/draftpicks/internal/grid"
	"github.com/JakeFAU/draftpicks/internal/metrics"
)

// Config controls Runner behavior.
type Config struct {
	SourceURL string
	Headers   http.Header
	Extract   extract.Options
	// Topic receives a draft.RefreshNotice after each commit. Empty disables it.
	Topic string
	// MetricsTextfile, when set, is rewritten at the end of every run.
	MetricsTextfile string
}

// Deps are the collaborators a Runner needs. Archiver, Publisher and Metrics
// are optional.
type Deps struct {
	Fetcher   draft.Fetcher
	Sink      draft.Sink
	Archiver  *archive.Archiver
	Publisher draft.Publisher
	Metrics   *metrics.Metrics
	Clock     draft.Clock
	IDs       draft.IDGenerator
}

// Result summarizes a successful run.
type Result struct {
	RunID      string
	Rows       int
	Grid       grid.Stats
	ArchiveURI string
	MessageID  string
}

// Runner executes the scrape pipeline.
type Runner struct {
	deps   Deps
	cfg    Config
	logger *zap.Logger
}

// New constructs a Runner.
func New(deps Deps, cfg Config, logger *zap.Logger) (*Runner, error) {
	if deps.Fetcher == nil {
		return nil, fmt.Errorf("fetcher is required")
	}
	if deps.Sink == nil {
		return nil, fmt.Errorf("sink is required")
	}
	if deps.Clock == nil {
		return nil, fmt.Errorf("clock is required")
	}
	if deps.IDs == nil {
		return nil, fmt.Errorf("id generator is required")
	}
	if cfg.SourceURL == "" {
		return nil, fmt.Errorf("source url is required")
	}
	if cfg.Topic != "" && deps.Publisher == nil {
		return nil, fmt.Errorf("publisher is required when a topic is set")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{deps: deps, cfg: cfg, logger: logger}, nil
}

// Run fetches, parses and stores the table. The store is either fully
// refreshed or left untouched.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	runID, err := r.deps.IDs.NewID()
	if err != nil {
		return Result{}, err
	}
	logger := r.logger.With(zap.String("run_id", runID))

	res, err := r.run(ctx, runID, logger)
	r.finish(err == nil, logger)
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return Result{}, err
	}
	logger.Info("run complete",
		zap.Int("rows", res.Rows),
		zap.Int("span_fills", res.Grid.FromSpans),
		zap.Int("padded", res.Grid.Padded),
	)
	return res, nil
}

func (r *Runner) run(ctx context.Context, runID string, logger *zap.Logger) (Result, error) {
	res := Result{RunID: runID}

	resp, err := r.deps.Fetcher.Fetch(ctx, draft.FetchRequest{URL: r.cfg.SourceURL, Headers: r.cfg.Headers})
	if err != nil {
		return Result{}, fmt.Errorf("fetch document: %w", err)
	}
	if r.deps.Metrics != nil {
		r.deps.Metrics.ObserveFetch(resp.URL, resp.Duration)
	}
	logger.Debug("fetched document",
		zap.String("url", resp.URL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(resp.Body)),
		zap.Duration("duration", resp.Duration),
	)

	if r.deps.Archiver != nil {
		uri, err := r.deps.Archiver.Archive(ctx, resp.Body)
		if err != nil {
			return Result{}, err
		}
		res.ArchiveURI = uri
		logger.Info("archived document", zap.String("uri", uri))
	}

	table, err := extract.Extract(bytes.NewReader(resp.Body), r.cfg.Extract)
	if err != nil {
		return Result{}, fmt.Errorf("extract table: %w", err)
	}

	rows, stats := grid.ReconstructWithStats(table.Rows, draft.Width)
	res.Grid = stats
	if r.deps.Metrics != nil {
		r.deps.Metrics.ObserveGrid(stats.Rows, stats.FromSpans, stats.Padded)
	}
	records := lo.Map(rows, func(fields []string, _ int) draft.Record {
		return draft.RecordFromFields(fields)
	})

	n, err := r.deps.Sink.Replace(ctx, records)
	if err != nil {
		return Result{}, fmt.Errorf("store records: %w", err)
	}
	res.Rows = n
	storedTable := tableName(r.deps.Sink)
	if r.deps.Metrics != nil {
		r.deps.Metrics.ObserveStored(storedTable, n)
	}

	if r.cfg.Topic != "" {
		notice := draft.RefreshNotice{
			RunID:       runID,
			Table:       storedTable,
			Rows:        n,
			SourceURL:   r.cfg.SourceURL,
			ArchiveURI:  res.ArchiveURI,
			RefreshedAt: r.deps.Clock.Now(),
		}
		id, err := r.deps.Publisher.Publish(ctx, r.cfg.Topic, notice)
		if err != nil {
			return Result{}, fmt.Errorf("publish refresh notice: %w", err)
		}
		res.MessageID = id
		logger.Debug("published refresh notice", zap.String("topic", r.cfg.Topic), zap.String("message_id", id))
	}
	return res, nil
}

func (r *Runner) finish(success bool, logger *zap.Logger) {
	if r.deps.Metrics == nil {
		return
	}
	r.deps.Metrics.ObserveRun(success, r.deps.Clock.Now())
	if r.cfg.MetricsTextfile == "" {
		return
	}
	if err := r.deps.Metrics.WriteTextfile(r.cfg.MetricsTextfile); err != nil {
		logger.Warn("metrics textfile not written", zap.Error(err))
	}
}

func tableName(sink draft.Sink) string {
	if named, ok := sink.(interface{ Table() string }); ok {
		return named.Table()
	}
	return draft.DefaultTable
}
