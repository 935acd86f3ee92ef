// internal/adapters/db/statistics_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

// statisticsRepository implements ports.StatisticsRepository. All queries
// aggregate the movements ledger joined with the entity store, restricted to
// active rows on both sides.
type statisticsRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewStatisticsRepository creates a new statistics repository
func NewStatisticsRepository(db *Database, logger *slog.Logger) ports.StatisticsRepository {
	return &statisticsRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "statistics")),
	}
}

var _ ports.StatisticsRepository = (*statisticsRepository)(nil)

func entityTable(kind domain.EntityKind) string {
	if kind == domain.KindSupply {
		return "supplies"
	}
	return "products"
}

// directionLabels returns the vocabulary labels of one direction as a
// []string for use in ANY($n) parameters.
func directionLabels(kind domain.EntityKind, direction domain.MovementDirection) []string {
	var types []domain.MovementType
	if direction == domain.DirectionEntry {
		types = domain.EntryTypes(kind)
	} else {
		types = domain.ExitTypes(kind)
	}
	labels := make([]string, 0, len(types))
	for _, t := range types {
		labels = append(labels, string(t))
	}
	return labels
}

// TopByQuantity groups the period's movements of one direction by entity and
// returns the heaviest movers. Ties on summed quantity break on entity id
// ascending so repeated queries page identically.
func (r *statisticsRepository) TopByQuantity(ctx context.Context, kind domain.EntityKind, direction domain.MovementDirection,
	since time.Time, limit int) ([]ports.TopEntityRow, error) {

	var query string
	if kind == domain.KindProduct {
		query = `
			SELECT m.entity_id, m.entity_name,
				COALESCE(c.name, '') AS category_name,
				COALESCE(s.name, '') AS supplier_name,
				SUM(m.modified_stock) AS total_quantity,
				COUNT(*) AS movement_count
			FROM movements m
			JOIN products p ON p.id = m.entity_id AND p.active = TRUE
			LEFT JOIN categories c ON c.id = p.category_id AND c.active = TRUE
			LEFT JOIN suppliers s ON s.id = p.supplier_id AND s.active = TRUE
			WHERE m.entity_kind = $1
				AND m.active = TRUE
				AND m.movement_type = ANY($2)
				AND m.created_at >= $3
			GROUP BY m.entity_id, m.entity_name, c.name, s.name
			ORDER BY total_quantity DESC, m.entity_id ASC
			LIMIT $4`
	} else {
		query = `
			SELECT m.entity_id, m.entity_name,
				'' AS category_name,
				COALESCE(sp.name, '') AS supplier_name,
				SUM(m.modified_stock) AS total_quantity,
				COUNT(*) AS movement_count
			FROM movements m
			JOIN supplies su ON su.id = m.entity_id AND su.active = TRUE
			LEFT JOIN suppliers sp ON sp.id = su.supplier_id AND sp.active = TRUE
			WHERE m.entity_kind = $1
				AND m.active = TRUE
				AND m.movement_type = ANY($2)
				AND m.created_at >= $3
			GROUP BY m.entity_id, m.entity_name, sp.name
			ORDER BY total_quantity DESC, m.entity_id ASC
			LIMIT $4`
	}

	labels := directionLabels(kind, direction)

	rows, err := r.db.Query(ctx, query, kind, labels, since, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top movements: %w", err)
	}
	defer rows.Close()

	var results []ports.TopEntityRow
	for rows.Next() {
		var row ports.TopEntityRow
		err := rows.Scan(&row.EntityID, &row.EntityName, &row.CategoryName,
			&row.SupplierName, &row.TotalQuantity, &row.MovementCount)
		if err != nil {
			return nil, fmt.Errorf("failed to scan top row: %w", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}

// Volume sums the period's entry and exit quantities in a single pass over
// the ledger
func (r *statisticsRepository) Volume(ctx context.Context, kind domain.EntityKind, since time.Time) (*ports.VolumeTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(modified_stock) FILTER (WHERE movement_type = ANY($2)), 0) AS entries,
			COALESCE(SUM(modified_stock) FILTER (WHERE movement_type = ANY($3)), 0) AS sales,
			COUNT(*) AS total_movements
		FROM movements
		WHERE entity_kind = $1 AND active = TRUE AND created_at >= $4`

	entryLabels := directionLabels(kind, domain.DirectionEntry)
	exitLabels := directionLabels(kind, domain.DirectionExit)

	totals := &ports.VolumeTotals{}
	err := r.db.QueryRow(ctx, query, kind, entryLabels, exitLabels, since).
		Scan(&totals.Entries, &totals.Sales, &totals.TotalMovements)
	if err != nil {
		return nil, fmt.Errorf("failed to query volume: %w", err)
	}

	return totals, nil
}

// MonthlyTotals returns per-month entry/exit sums for one calendar year.
// Months without movements produce no row.
func (r *statisticsRepository) MonthlyTotals(ctx context.Context, kind domain.EntityKind, year int) ([]ports.MonthTotals, error) {
	// Buckets use UTC month boundaries regardless of the session timezone.
	query := `
		SELECT
			EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS month,
			COALESCE(SUM(modified_stock) FILTER (WHERE movement_type = ANY($2)), 0) AS entries,
			COALESCE(SUM(modified_stock) FILTER (WHERE movement_type = ANY($3)), 0) AS sales
		FROM movements
		WHERE entity_kind = $1
			AND active = TRUE
			AND EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC') = $4
		GROUP BY month
		ORDER BY month ASC`

	entryLabels := directionLabels(kind, domain.DirectionEntry)
	exitLabels := directionLabels(kind, domain.DirectionExit)

	rows, err := r.db.Query(ctx, query, kind, entryLabels, exitLabels, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly totals: %w", err)
	}
	defer rows.Close()

	var results []ports.MonthTotals
	for rows.Next() {
		var mt ports.MonthTotals
		if err := rows.Scan(&mt.Month, &mt.Entries, &mt.Sales); err != nil {
			return nil, fmt.Errorf("failed to scan month totals: %w", err)
		}
		results = append(results, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}

// CategoryTotals sums stock, value and movement count per product category.
// Products without a category fall under the empty name.
func (r *statisticsRepository) CategoryTotals(ctx context.Context) ([]ports.CategoryTotals, error) {
	query := `
		SELECT
			COALESCE(c.id, '00000000-0000-0000-0000-000000000000'::uuid) AS category_id,
			COALESCE(c.name, 'Sin categoría') AS category_name,
			COALESCE(SUM(p.stock), 0) AS stock,
			COALESCE(SUM(p.stock * p.unit_price), 0) AS value,
			COALESCE(SUM(mc.movement_count), 0) AS movements
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id AND c.active = TRUE
		LEFT JOIN (
			SELECT entity_id, COUNT(*) AS movement_count
			FROM movements
			WHERE entity_kind = 'product' AND active = TRUE
			GROUP BY entity_id
		) mc ON mc.entity_id = p.id
		WHERE p.active = TRUE
		GROUP BY c.id, c.name
		ORDER BY category_name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	var results []ports.CategoryTotals
	for rows.Next() {
		var ct ports.CategoryTotals
		var value decimal.NullDecimal
		if err := rows.Scan(&ct.CategoryID, &ct.CategoryName, &ct.Stock, &value, &ct.Movements); err != nil {
			return nil, fmt.Errorf("failed to scan category totals: %w", err)
		}
		ct.Value = value.Decimal
		results = append(results, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}

// TotalStock sums the current stock across all active entities of one kind
func (r *statisticsRepository) TotalStock(ctx context.Context, kind domain.EntityKind) (int64, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(stock), 0) FROM %s WHERE active = TRUE`, entityTable(kind))

	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to query total stock: %w", err)
	}
	return total, nil
}

// TotalValue sums stock * unit_price across all active entities of one kind
func (r *statisticsRepository) TotalValue(ctx context.Context, kind domain.EntityKind) (decimal.Decimal, error) {
	query := fmt.Sprintf(`SELECT COALESCE(SUM(stock * unit_price), 0) FROM %s WHERE active = TRUE`, entityTable(kind))

	var total decimal.NullDecimal
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to query total value: %w", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
