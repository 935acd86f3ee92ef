// internal/core/services/statistics.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

const (
	maxLimit = 100
	minYear  = 2020
)

// StatisticsService answers analytical queries over the ledger. It validates
// parameters, delegates the SQL to the statistics repository and shapes the
// results; caching happens at the HTTP layer.
type StatisticsService struct {
	repo                 ports.StatisticsRepository
	supplyMonthlyEnabled bool
	logger               *slog.Logger
}

// Statically assert that *StatisticsService implements the StatisticsService interface.
var _ ports.StatisticsService = (*StatisticsService)(nil)

// NewStatisticsService creates a new statistics service. supplyMonthlyEnabled
// gates the supplies contribution to the monthly series.
func NewStatisticsService(repo ports.StatisticsRepository, supplyMonthlyEnabled bool, logger *slog.Logger) *StatisticsService {
	return &StatisticsService{
		repo:                 repo,
		supplyMonthlyEnabled: supplyMonthlyEnabled,
		logger:               logger.With(slog.String("service", "statistics")),
	}
}

// TopByQuantity returns the entities with the largest summed movement
// quantity in the window, deterministic across identical queries.
func (s *StatisticsService) TopByQuantity(ctx context.Context, kind domain.EntityKind,
	direction domain.MovementDirection, period ports.Period, limit int) (*ports.TopResult, error) {

	period, since, err := resolvePeriod(period)
	if err != nil {
		return nil, err
	}
	limit, err = resolveLimit(limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.TopByQuantity(ctx, kind, direction, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to compute top by quantity: %w", err)
	}
	if rows == nil {
		rows = []ports.TopEntityRow{}
	}

	return &ports.TopResult{Period: period, Limit: limit, Data: rows}, nil
}

// Volume returns the window's entry/exit totals. Net is always
// entries - sales.
func (s *StatisticsService) Volume(ctx context.Context, kind domain.EntityKind, period ports.Period) (*ports.VolumeResult, error) {
	period, since, err := resolvePeriod(period)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.Volume(ctx, kind, since)
	if err != nil {
		return nil, fmt.Errorf("failed to compute volume: %w", err)
	}

	return &ports.VolumeResult{
		Period:         period,
		Entries:        totals.Entries,
		Sales:          totals.Sales,
		Net:            totals.Entries - totals.Sales,
		TotalMovements: totals.TotalMovements,
	}, nil
}

// MonthlySeries returns exactly 12 points, January to December, with yearly
// totals equal to the column sums. Months without movements are zero-filled.
func (s *StatisticsService) MonthlySeries(ctx context.Context, year int, kind ports.SeriesKind) (*ports.MonthlySeriesResult, error) {
	if maxYear := time.Now().UTC().Year() + 1; year < minYear || year > maxYear {
		return nil, fmt.Errorf("%w: year must be between %d and %d", domain.ErrInvalidParameter, minYear, maxYear)
	}
	if kind == "" {
		kind = ports.DefaultSeries
	}
	switch kind {
	case ports.SeriesProducts, ports.SeriesSupplies, ports.SeriesBoth:
	default:
		return nil, fmt.Errorf("%w: unknown series kind %q", domain.ErrInvalidParameter, kind)
	}

	result := &ports.MonthlySeriesResult{
		Year:   year,
		Kind:   kind,
		Months: make([]ports.MonthlyPoint, 12),
	}
	for i := range result.Months {
		result.Months[i].Month = i + 1
	}

	if kind == ports.SeriesProducts || kind == ports.SeriesBoth {
		if err := s.addMonthlyTotals(ctx, result, domain.KindProduct, year); err != nil {
			return nil, err
		}
	}
	// Supplies contribute zeros while the feature flag is off
	if (kind == ports.SeriesSupplies || kind == ports.SeriesBoth) && s.supplyMonthlyEnabled {
		if err := s.addMonthlyTotals(ctx, result, domain.KindSupply, year); err != nil {
			return nil, err
		}
	}

	for i := range result.Months {
		result.Months[i].Net = result.Months[i].Entries - result.Months[i].Sales
		result.TotalEntries += result.Months[i].Entries
		result.TotalSales += result.Months[i].Sales
	}
	result.TotalNet = result.TotalEntries - result.TotalSales

	return result, nil
}

func (s *StatisticsService) addMonthlyTotals(ctx context.Context, result *ports.MonthlySeriesResult,
	kind domain.EntityKind, year int) error {

	totals, err := s.repo.MonthlyTotals(ctx, kind, year)
	if err != nil {
		return fmt.Errorf("failed to compute monthly totals: %w", err)
	}
	for _, mt := range totals {
		if mt.Month < 1 || mt.Month > 12 {
			continue
		}
		result.Months[mt.Month-1].Entries += mt.Entries
		result.Months[mt.Month-1].Sales += mt.Sales
	}
	return nil
}

// CategoryDistribution returns each category's share of the chosen metric.
// Percentages sum to 100 modulo rounding when the total is positive and are
// all zero otherwise. Supplies have no category linkage, so that side is a
// deliberate empty result rather than a silent approximation.
func (s *StatisticsService) CategoryDistribution(ctx context.Context, kind domain.EntityKind,
	metric ports.DistributionMetric) (*ports.CategoryDistributionResult, error) {

	if metric == "" {
		metric = ports.DefaultMetric
	}
	switch metric {
	case ports.MetricStock, ports.MetricValue, ports.MetricMovements:
	default:
		return nil, fmt.Errorf("%w: unknown metric %q", domain.ErrInvalidParameter, metric)
	}

	if kind == domain.KindSupply {
		return &ports.CategoryDistributionResult{
			Metric: metric,
			Data:   []ports.CategoryShare{},
			Total:  decimal.Zero,
		}, nil
	}

	totals, err := s.repo.CategoryTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category totals: %w", err)
	}

	result := &ports.CategoryDistributionResult{
		Metric: metric,
		Data:   make([]ports.CategoryShare, 0, len(totals)),
		Total:  decimal.Zero,
	}

	for _, ct := range totals {
		result.Total = result.Total.Add(metricValue(ct, metric))
	}

	for _, ct := range totals {
		share := ports.CategoryShare{
			Category:  ct.CategoryName,
			Stock:     ct.Stock,
			Value:     ct.Value,
			Movements: ct.Movements,
		}
		if result.Total.IsPositive() {
			share.Percentage = metricValue(ct, metric).
				Div(result.Total).
				Mul(decimal.NewFromInt(100)).
				Round(2).
				InexactFloat64()
		}
		result.Data = append(result.Data, share)
	}

	return result, nil
}

// Totals returns the global stock and value sums for one entity kind
func (s *StatisticsService) Totals(ctx context.Context, kind domain.EntityKind) (*ports.TotalsResult, error) {
	stock, err := s.repo.TotalStock(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to compute total stock: %w", err)
	}
	value, err := s.repo.TotalValue(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to compute total value: %w", err)
	}

	return &ports.TotalsResult{Kind: string(kind), Stock: stock, Value: value}, nil
}

func metricValue(ct ports.CategoryTotals, metric ports.DistributionMetric) decimal.Decimal {
	switch metric {
	case ports.MetricValue:
		return ct.Value
	case ports.MetricMovements:
		return decimal.NewFromInt(ct.Movements)
	default:
		return decimal.NewFromInt(ct.Stock)
	}
}

// resolvePeriod validates the window and returns its lower bound in UTC
func resolvePeriod(period ports.Period) (ports.Period, time.Time, error) {
	if period == "" {
		period = ports.DefaultPeriod
	}

	now := time.Now().UTC()
	switch period {
	case ports.Period7d:
		return period, now.AddDate(0, 0, -7), nil
	case ports.Period30d:
		return period, now.AddDate(0, 0, -30), nil
	case ports.Period90d:
		return period, now.AddDate(0, 0, -90), nil
	case ports.Period1y:
		return period, now.AddDate(-1, 0, 0), nil
	}
	return "", time.Time{}, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidParameter, period)
}

func resolveLimit(limit int) (int, error) {
	if limit == 0 {
		return ports.DefaultTopLimit, nil
	}
	if limit < 1 || limit > maxLimit {
		return 0, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrInvalidParameter, maxLimit)
	}
	return limit, nil
}
