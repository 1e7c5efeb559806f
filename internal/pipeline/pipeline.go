// Package pipeline orchestrates one batch run of the reporter: fetch,
// filter, compute, assemble, write.
package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"mt5-reporter/internal/config"
	apperrors "mt5-reporter/internal/errors"
	"mt5-reporter/internal/logging"
	"mt5-reporter/internal/models"
	"mt5-reporter/internal/report"
	"mt5-reporter/internal/source"
	"mt5-reporter/internal/stats"
)

// Runner executes the report pipeline. A run always produces a report:
// an unreachable source or an empty trade set routes to the fallback
// generator, never to an abort.
type Runner struct {
	cfg       *config.Config
	src       source.TradeSource
	sink      report.Sink
	logger    zerolog.Logger
	clock     func() time.Time
	engine    *stats.Engine
	buckets   *stats.Aggregator
	assembler *report.Assembler
	fallback  *report.Fallback
}

// NewRunner wires a pipeline from its collaborators.
func NewRunner(cfg *config.Config, src source.TradeSource, sink report.Sink, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		src:       src,
		sink:      sink,
		logger:    logger,
		clock:     time.Now,
		engine:    stats.NewEngine(cfg.Stats),
		buckets:   stats.NewAggregator(cfg.Stats),
		assembler: report.NewAssembler(cfg.Stats),
		fallback:  report.NewFallback(cfg.Stats),
	}
}

// WithClock overrides the wall clock. Runs with identical input and the
// same clock produce byte-identical reports.
func (r *Runner) WithClock(clock func() time.Time) *Runner {
	r.clock = clock
	return r
}

// Run executes one batch run and writes the report. The returned report
// is always non-nil; the error is non-nil only when the sink write
// failed, in which case the in-memory report is still the computed one.
func (r *Runner) Run(ctx context.Context) (*models.Report, error) {
	now := r.clock()
	rep := r.build(ctx, now)

	if err := r.sink.Write(rep); err != nil {
		r.logger.Error().Err(err).Msg("Report could not be persisted")
		return rep, err
	}

	logging.LogReport(r.logger, r.sinkPath(), rep.DataSource, len(rep.LatestTrades))
	return rep, nil
}

// Build computes the report without writing it.
func (r *Runner) Build(ctx context.Context) *models.Report {
	return r.build(ctx, r.clock())
}

func (r *Runner) build(ctx context.Context, now time.Time) *models.Report {
	from, err := r.cfg.HistoryStart()
	if err != nil {
		// Config is validated at load; an invalid range here still must
		// not leave the dashboard without a report.
		r.logger.Error().Err(err).Msg("Invalid history range, using fallback report")
		return r.fallback.Report(now, models.SourceTagUnavailable)
	}

	deals, err := r.fetch(ctx, from, now)
	logging.LogFetch(r.logger, from, now, len(deals), err)
	if err != nil {
		return r.fallback.Report(now, models.SourceTagUnavailable)
	}
	if len(deals) == 0 {
		r.logger.Warn().Msg("Deal history empty, using fallback report")
		return r.fallback.Report(now, models.SourceTagSample)
	}

	trades := stats.FilterClosed(deals)
	if len(trades) == 0 {
		r.logger.Warn().Int("raw", len(deals)).Msg("No closed trades after filtering, using fallback report")
		return r.fallback.Report(now, models.SourceTagSample)
	}
	stats.SortByTime(trades)

	snap := r.engine.Compute(trades, now)

	rep := r.assembler.Build(
		snap,
		r.buckets.EquityCurve(trades),
		r.buckets.DailyProfit(trades, now),
		r.buckets.RecentTradeCounts(trades, now),
		trades,
		models.SourceTagReal,
		now,
	)

	r.logger.Debug().
		Int("trades", snap.TotalTrades).
		Float64("win_rate", snap.WinRate).
		Float64("max_drawdown", snap.MaxDrawdown).
		Msg("Metrics computed")

	return rep
}

// fetch wraps the source call with the configured timeout. A single
// attempt per run; failures route to the fallback, not to a retry.
func (r *Runner) fetch(ctx context.Context, from, to time.Time) ([]models.Deal, error) {
	if timeout := r.cfg.Source.FetchTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	deals, err := r.src.Fetch(ctx, from, to)
	if err != nil {
		return nil, apperrors.Wrap(err, "fetching deal history")
	}
	return deals, nil
}

func (r *Runner) sinkPath() string {
	if fs, ok := r.sink.(*report.FileSink); ok {
		return fs.Path()
	}
	return ""
}
