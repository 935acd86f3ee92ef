// internal/core/ports/statistics.go
package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sheimsito/picm-server/internal/core/domain"
)

// Period is a relative window bounding aggregation queries.
type Period string

// Period constants
const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
	Period1y  Period = "1y"
)

// Defaults applied when a query omits the parameter. The HTTP cache key and
// the service resolve omitted values to these, so equivalent requests share
// one cache entry.
const (
	DefaultPeriod   = Period30d
	DefaultTopLimit = 10
)

// DistributionMetric selects which quantity the category distribution
// computes percentages over.
type DistributionMetric string

// Metric constants
const (
	MetricStock     DistributionMetric = "stock"
	MetricValue     DistributionMetric = "value"
	MetricMovements DistributionMetric = "movements"
)

// DefaultMetric is used when a distribution query names no metric.
const DefaultMetric = MetricStock

// SeriesKind selects which ledgers feed the monthly series.
type SeriesKind string

// Series kind constants
const (
	SeriesProducts SeriesKind = "products"
	SeriesSupplies SeriesKind = "supplies"
	SeriesBoth     SeriesKind = "both"
)

// DefaultSeries is used when a monthly-series query names no kind.
const DefaultSeries = SeriesProducts

// TopEntityRow is one grouped ledger row from the top-by-quantity query,
// already enriched with the entity's current category/supplier names.
type TopEntityRow struct {
	EntityID      uuid.UUID `json:"entity_id"`
	EntityName    string    `json:"entity_name"`
	CategoryName  string    `json:"category,omitempty"`
	SupplierName  string    `json:"supplier,omitempty"`
	TotalQuantity int64     `json:"total_quantity"`
	MovementCount int64     `json:"movement_count"`
}

// VolumeTotals are the raw period sums from the ledger.
type VolumeTotals struct {
	Entries        int64 `json:"entries"`
	Sales          int64 `json:"sales"`
	TotalMovements int64 `json:"total_movements"`
}

// MonthTotals are the entry/exit sums for one calendar month.
type MonthTotals struct {
	Month   int   `json:"month"`
	Entries int64 `json:"entries"`
	Sales   int64 `json:"sales"`
}

// CategoryTotals are the per-category sums feeding the distribution.
type CategoryTotals struct {
	CategoryID   uuid.UUID       `json:"category_id"`
	CategoryName string          `json:"category"`
	Stock        int64           `json:"stock"`
	Value        decimal.Decimal `json:"value"`
	Movements    int64           `json:"movements"`
}

// StatisticsRepository defines the read-only aggregation port over the
// ledger joined with the entity store. All queries see active movements
// and active entities only.
type StatisticsRepository interface {
	// TopByQuantity groups movements of the given direction since the lower
	// bound by entity, ordered by summed modified_stock descending with
	// entity id ascending as the deterministic tie-break.
	TopByQuantity(ctx context.Context, kind domain.EntityKind, direction domain.MovementDirection,
		since time.Time, limit int) ([]TopEntityRow, error)
	Volume(ctx context.Context, kind domain.EntityKind, since time.Time) (*VolumeTotals, error)
	// MonthlyTotals returns rows only for months that have movements;
	// the service fills the remaining months with zeros.
	MonthlyTotals(ctx context.Context, kind domain.EntityKind, year int) ([]MonthTotals, error)
	CategoryTotals(ctx context.Context) ([]CategoryTotals, error)
	TotalStock(ctx context.Context, kind domain.EntityKind) (int64, error)
	TotalValue(ctx context.Context, kind domain.EntityKind) (decimal.Decimal, error)
}
