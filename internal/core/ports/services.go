// internal/core/ports/services.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sheimsito/picm-server/internal/core/domain"
)

// AdjustStockParams carries one stock-adjustment request. Increase and
// decrease are mutually exclusive; with neither set the stock is written
// directly. MovementType is optional: in direct mode a valid label for the
// kind is recorded verbatim, defaulting by direction when empty, while the
// increase and decrease modes pick the supply labels themselves.
type AdjustStockParams struct {
	Increase     bool
	Decrease     bool
	Stock        int
	MovementType string
	Comment      string
	Username     string
}

// AdjustStockResult reports the committed outcome of an adjustment.
type AdjustStockResult struct {
	NewStock int              `json:"stock"`
	Movement *domain.Movement `json:"movement"`
}

// StockService is the only sanctioned path that changes an entity's stock.
// Every successful call commits the entity update together with exactly one
// ledger append in a single transaction.
type StockService interface {
	AdjustStock(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID,
		params AdjustStockParams) (*AdjustStockResult, error)
}

// CreateMovementParams carries a movement-creation request from the API.
// The entity is referenced by name, the actor by username.
type CreateMovementParams struct {
	Username     string
	EntityName   string
	MovementType string
	Stock        int
	Comment      string
}

// MovementService exposes the ledger operations. Create routes through the
// stock service so the entity's stock and the audit record stay consistent;
// Update and SoftDelete are audit corrections with no entity side effects.
type MovementService interface {
	Create(ctx context.Context, kind domain.EntityKind, params CreateMovementParams) (*domain.Movement, error)
	List(ctx context.Context, filter MovementFilter) (*EntityPage[domain.Movement], error)
	GetByID(ctx context.Context, id uuid.UUID, kind domain.EntityKind) (*domain.Movement, error)
	Update(ctx context.Context, id uuid.UUID, kind domain.EntityKind, patch MovementPatch) (*domain.Movement, error)
	SoftDelete(ctx context.Context, id uuid.UUID, kind domain.EntityKind) error
}

// TopResult is the response payload of a top-by-quantity query.
type TopResult struct {
	Period Period         `json:"period"`
	Limit  int            `json:"limit"`
	Data   []TopEntityRow `json:"data"`
}

// VolumeResult is the response payload of a volume query.
// Net is always Entries - Sales.
type VolumeResult struct {
	Period         Period `json:"period"`
	Entries        int64  `json:"entries"`
	Sales          int64  `json:"sales"`
	Net            int64  `json:"net"`
	TotalMovements int64  `json:"total_movements"`
}

// MonthlyPoint is one month of the yearly series.
type MonthlyPoint struct {
	Month   int   `json:"month"`
	Entries int64 `json:"entries"`
	Sales   int64 `json:"sales"`
	Net     int64 `json:"net"`
}

// MonthlySeriesResult always carries exactly 12 points, January to
// December, with yearly totals equal to the column sums.
type MonthlySeriesResult struct {
	Year         int            `json:"year"`
	Kind         SeriesKind     `json:"kind"`
	Months       []MonthlyPoint `json:"data"`
	TotalEntries int64          `json:"total_entries"`
	TotalSales   int64          `json:"total_sales"`
	TotalNet     int64          `json:"total_net"`
}

// CategoryShare is one category's slice of the distribution.
type CategoryShare struct {
	Category   string          `json:"category"`
	Stock      int64           `json:"stock"`
	Value      decimal.Decimal `json:"value"`
	Movements  int64           `json:"movements"`
	Percentage float64         `json:"percentage"`
}

// CategoryDistributionResult is the response payload of a category
// distribution query. Percentages sum to 100 (modulo rounding) when the
// total is positive and are all zero otherwise.
type CategoryDistributionResult struct {
	Metric DistributionMetric `json:"metric"`
	Data   []CategoryShare    `json:"data"`
	Total  decimal.Decimal    `json:"total"`
}

// TotalsResult carries the global stock/value sums for one entity kind.
type TotalsResult struct {
	Kind  string          `json:"kind"`
	Stock int64           `json:"total_stock"`
	Value decimal.Decimal `json:"total_value"`
}

// StatisticsService answers analytical queries over the ledger. All methods
// validate their parameters first and return domain.ErrInvalidParameter for
// values outside the allowed sets. Caching happens at the HTTP layer, keyed
// per caller.
type StatisticsService interface {
	TopByQuantity(ctx context.Context, kind domain.EntityKind, direction domain.MovementDirection,
		period Period, limit int) (*TopResult, error)
	Volume(ctx context.Context, kind domain.EntityKind, period Period) (*VolumeResult, error)
	MonthlySeries(ctx context.Context, year int, kind SeriesKind) (*MonthlySeriesResult, error)
	CategoryDistribution(ctx context.Context, kind domain.EntityKind, metric DistributionMetric) (*CategoryDistributionResult, error)
	Totals(ctx context.Context, kind domain.EntityKind) (*TotalsResult, error)
}

// AuthService authenticates operators and issues API tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
