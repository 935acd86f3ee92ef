// internal/adapters/db/supply_repository.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

// supplyRepository implements ports.SupplyRepository
type supplyRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewSupplyRepository creates a new supply repository
func NewSupplyRepository(db *Database, logger *slog.Logger) ports.SupplyRepository {
	return &supplyRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "supply")),
	}
}

var _ ports.SupplyRepository = (*supplyRepository)(nil)

const supplyColumns = `id, name, description, unit_price, stock, supplier_id, active, created_at, updated_at, deleted_at`

// Save creates a new supply
func (r *supplyRepository) Save(ctx context.Context, s *domain.Supply) error {
	query := `
		INSERT INTO supplies (
			id, name, description, unit_price, stock,
			supplier_id, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.UnitPrice, s.Stock,
		s.SupplierID, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: supply name %q already exists", domain.ErrConflict, s.Name)
		}
		return fmt.Errorf("failed to save supply: %w", err)
	}

	r.logger.DebugContext(ctx, "supply saved",
		slog.String("id", s.ID.String()),
		slog.String("name", s.Name))

	return nil
}

// Update updates the descriptive fields of an existing supply
func (r *supplyRepository) Update(ctx context.Context, s *domain.Supply) error {
	query := `
		UPDATE supplies SET
			name = $2, description = $3, unit_price = $4,
			supplier_id = $5, updated_at = $6
		WHERE id = $1 AND active = TRUE`

	s.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.UnitPrice, s.SupplierID, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: supply name %q already exists", domain.ErrConflict, s.Name)
		}
		return fmt.Errorf("failed to update supply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supply %s", domain.ErrNotFound, s.ID)
	}

	return nil
}

// FindByID retrieves an active supply by ID
func (r *supplyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE id = $1 AND active = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// FindByName retrieves an active supply by its unique name
func (r *supplyRepository) FindByName(ctx context.Context, name string) (*domain.Supply, error) {
	query := `SELECT ` + supplyColumns + ` FROM supplies WHERE name = $1 AND active = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, name))
}

// FindAll retrieves supplies with filtering and pagination
func (r *supplyRepository) FindAll(ctx context.Context, params ports.EntityListParams) (*ports.EntityPage[domain.Supply], error) {
	qb := squirrel.Select(
		"id", "name", "description", "unit_price", "stock",
		"supplier_id", "active", "created_at", "updated_at", "deleted_at",
		"COUNT(*) OVER() AS total_count",
	).From("supplies").
		Where("active = TRUE").
		PlaceholderFormat(squirrel.Dollar)

	if params.Search != "" {
		qb = qb.Where("name ILIKE ?", "%"+params.Search+"%")
	}
	if params.SupplierID != nil {
		qb = qb.Where(squirrel.Eq{"supplier_id": *params.SupplierID})
	}

	direction := "ASC"
	if params.SortOrder == "desc" {
		direction = "DESC"
	}
	switch params.SortBy {
	case "name":
		qb = qb.OrderBy("name " + direction)
	case "stock":
		qb = qb.OrderBy("stock " + direction)
	case "price":
		qb = qb.OrderBy("unit_price " + direction)
	default:
		qb = qb.OrderBy("created_at " + direction)
	}

	page, pageSize := normalizePage(params.Page, params.PageSize)
	qb = qb.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplies: %w", err)
	}
	defer rows.Close()

	result := &ports.EntityPage[domain.Supply]{Page: page, PageSize: pageSize}
	for rows.Next() {
		s := &domain.Supply{}
		var description sql.NullString
		var supplierID *uuid.UUID
		var deletedAt *time.Time

		err := rows.Scan(
			&s.ID, &s.Name, &description, &s.UnitPrice, &s.Stock,
			&supplierID, &s.Active, &s.CreatedAt, &s.UpdatedAt, &deletedAt,
			&result.TotalCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supply: %w", err)
		}

		s.Description = description.String
		s.SupplierID = supplierID
		s.DeletedAt = deletedAt
		result.Items = append(result.Items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	result.TotalPages = totalPages(result.TotalCount, pageSize)
	return result, nil
}

// SoftDelete marks a supply as removed, keeping the row for history
func (r *supplyRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE supplies SET active = FALSE, deleted_at = $2, updated_at = $2 WHERE id = $1 AND active = TRUE`

	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("failed to soft delete supply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supply %s", domain.ErrNotFound, id)
	}

	r.logger.InfoContext(ctx, "supply soft deleted",
		slog.String("id", id.String()))

	return nil
}

// LockStock reads the current stock under FOR UPDATE inside the caller's
// transaction
func (r *supplyRepository) LockStock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error) {
	query := `SELECT stock FROM supplies WHERE id = $1 AND active = TRUE FOR UPDATE`

	var stock int
	err := tx.QueryRow(ctx, query, id).Scan(&stock)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("%w: supply %s", domain.ErrNotFound, id)
		}
		return 0, fmt.Errorf("failed to lock supply stock: %w", err)
	}

	return stock, nil
}

// UpdateStockTx writes the new stock inside the caller's transaction
func (r *supplyRepository) UpdateStockTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, stock int) error {
	query := `UPDATE supplies SET stock = $2, updated_at = $3 WHERE id = $1 AND active = TRUE`

	tag, err := tx.Exec(ctx, query, id, stock, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update supply stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supply %s", domain.ErrNotFound, id)
	}

	return nil
}

func (r *supplyRepository) scanOne(row pgx.Row) (*domain.Supply, error) {
	s := &domain.Supply{}
	var description sql.NullString
	var supplierID *uuid.UUID
	var deletedAt *time.Time

	err := row.Scan(
		&s.ID, &s.Name, &description, &s.UnitPrice, &s.Stock,
		&supplierID, &s.Active, &s.CreatedAt, &s.UpdatedAt, &deletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find supply: %w", err)
	}

	s.Description = description.String
	s.SupplierID = supplierID
	s.DeletedAt = deletedAt
	return s, nil
}
