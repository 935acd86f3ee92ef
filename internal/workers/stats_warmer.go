// internal/workers/stats_warmer.go
package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

// StatsWarmer periodically runs the heavy aggregation queries so the
// database keeps their plans and pages warm between dashboard loads.
// It writes nothing to the result cache; those entries stay per caller.
type StatsWarmer struct {
	stats  ports.StatisticsService
	logger *slog.Logger
}

// NewStatsWarmer creates a new statistics warmer
func NewStatsWarmer(stats ports.StatisticsService, logger *slog.Logger) *StatsWarmer {
	return &StatsWarmer{
		stats:  stats,
		logger: logger.With(slog.String("processor", "stats_warmer")),
	}
}

// WarmStatistics handles stats:warm tasks.
func (p *StatsWarmer) WarmStatistics(ctx context.Context, t *asynq.Task) error {
	start := time.Now()
	year := time.Now().UTC().Year()

	queries := []struct {
		name string
		run  func() error
	}{
		{"top-products-sales", func() error {
			_, err := p.stats.TopByQuantity(ctx, domain.KindProduct, domain.DirectionExit, "", 0)
			return err
		}},
		{"top-products-entries", func() error {
			_, err := p.stats.TopByQuantity(ctx, domain.KindProduct, domain.DirectionEntry, "", 0)
			return err
		}},
		{"products-volume", func() error {
			_, err := p.stats.Volume(ctx, domain.KindProduct, "")
			return err
		}},
		{"supplies-volume", func() error {
			_, err := p.stats.Volume(ctx, domain.KindSupply, "")
			return err
		}},
		{"monthly-movements", func() error {
			_, err := p.stats.MonthlySeries(ctx, year, ports.SeriesBoth)
			return err
		}},
		{"category-distribution", func() error {
			_, err := p.stats.CategoryDistribution(ctx, domain.KindProduct, ports.MetricStock)
			return err
		}},
	}

	for _, q := range queries {
		qStart := time.Now()
		if err := q.run(); err != nil {
			p.logger.WarnContext(ctx, "warm query failed",
				slog.String("query", q.name),
				"err", err)
			continue
		}
		p.logger.DebugContext(ctx, "warm query completed",
			slog.String("query", q.name),
			slog.Duration("took", time.Since(qStart)))
	}

	p.logger.InfoContext(ctx, "statistics warmed",
		slog.Duration("took", time.Since(start)))

	return nil
}
