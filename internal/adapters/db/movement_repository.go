// internal/adapters/db/movement_repository.go
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

// movementRepository implements ports.MovementRepository over the shared
// movements table. Product and supply ledgers live in the same table,
// partitioned by entity_kind.
type movementRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewMovementRepository creates a new movement repository
func NewMovementRepository(db *Database, logger *slog.Logger) ports.MovementRepository {
	return &movementRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "movement")),
	}
}

var _ ports.MovementRepository = (*movementRepository)(nil)

const movementColumns = `id, entity_kind, entity_id, entity_name, username, movement_type, modified_stock, comment, active, created_at, updated_at, deleted_at`

const appendMovementQuery = `
	INSERT INTO movements (
		id, entity_kind, entity_id, entity_name, username,
		movement_type, modified_stock, comment, active, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// Append inserts a validated movement outside any transaction
func (r *movementRepository) Append(ctx context.Context, m *domain.Movement) error {
	_, err := r.db.Exec(ctx, appendMovementQuery,
		m.ID, m.EntityKind, m.EntityID, m.EntityName, m.Username,
		m.MovementType, m.ModifiedStock, m.Comment, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append movement: %w", err)
	}
	return nil
}

// AppendTx inserts a movement inside the caller's transaction so the ledger
// entry commits together with the stock update it records
func (r *movementRepository) AppendTx(ctx context.Context, tx pgx.Tx, m *domain.Movement) error {
	_, err := tx.Exec(ctx, appendMovementQuery,
		m.ID, m.EntityKind, m.EntityID, m.EntityName, m.Username,
		m.MovementType, m.ModifiedStock, m.Comment, m.Active, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append movement: %w", err)
	}

	r.logger.DebugContext(ctx, "movement appended",
		slog.String("id", m.ID.String()),
		slog.String("entity_kind", string(m.EntityKind)),
		slog.String("movement_type", string(m.MovementType)))

	return nil
}

// FindByID retrieves an active movement by ID within one kind's ledger
func (r *movementRepository) FindByID(ctx context.Context, id uuid.UUID, kind domain.EntityKind) (*domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE id = $1 AND entity_kind = $2 AND active = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, id, kind))
}

// FindAll retrieves movements with filtering and pagination. The default
// order is created_at ascending so histories read oldest first.
func (r *movementRepository) FindAll(ctx context.Context, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
	qb := squirrel.Select(
		"id", "entity_kind", "entity_id", "entity_name", "username",
		"movement_type", "modified_stock", "comment",
		"active", "created_at", "updated_at", "deleted_at",
		"COUNT(*) OVER() AS total_count",
	).From("movements").
		Where("active = TRUE").
		PlaceholderFormat(squirrel.Dollar)

	// An empty kind spans both ledgers.
	if filter.Kind != "" {
		qb = qb.Where(squirrel.Eq{"entity_kind": filter.Kind})
	}
	if filter.Search != "" {
		qb = qb.Where("(entity_name ILIKE ? OR username ILIKE ?)",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.MovementType != "" {
		qb = qb.Where(squirrel.Eq{"movement_type": filter.MovementType})
	}
	if filter.DateFrom != nil {
		qb = qb.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		qb = qb.Where("created_at <= ?", *filter.DateTo)
	}

	direction := "ASC"
	if filter.SortOrder == "desc" {
		direction = "DESC"
	}
	switch filter.SortBy {
	case "entity_name":
		qb = qb.OrderBy("entity_name " + direction)
	case "modified_stock":
		qb = qb.OrderBy("modified_stock " + direction)
	default:
		qb = qb.OrderBy("created_at " + direction)
	}

	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	qb = qb.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements: %w", err)
	}
	defer rows.Close()

	result := &ports.EntityPage[domain.Movement]{Page: page, PageSize: pageSize}
	for rows.Next() {
		m := &domain.Movement{}
		var comment sql.NullString
		var deletedAt *time.Time

		err := rows.Scan(
			&m.ID, &m.EntityKind, &m.EntityID, &m.EntityName, &m.Username,
			&m.MovementType, &m.ModifiedStock, &comment,
			&m.Active, &m.CreatedAt, &m.UpdatedAt, &deletedAt,
			&result.TotalCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}

		m.Comment = comment.String
		m.DeletedAt = deletedAt
		result.Items = append(result.Items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	result.TotalPages = totalPages(result.TotalCount, pageSize)
	return result, nil
}

// Update applies a retroactive correction to a ledger entry. Only provided
// fields change; created_at is never touched.
func (r *movementRepository) Update(ctx context.Context, id uuid.UUID, kind domain.EntityKind, patch ports.MovementPatch) (*domain.Movement, error) {
	qb := squirrel.Update("movements").
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id, "entity_kind": kind}).
		Where("active = TRUE").
		Suffix("RETURNING " + movementColumns).
		PlaceholderFormat(squirrel.Dollar)

	if patch.EntityID != nil {
		qb = qb.Set("entity_id", *patch.EntityID)
	}
	if patch.EntityName != nil {
		qb = qb.Set("entity_name", *patch.EntityName)
	}
	if patch.MovementType != nil {
		qb = qb.Set("movement_type", *patch.MovementType)
	}
	if patch.ModifiedStock != nil {
		qb = qb.Set("modified_stock", *patch.ModifiedStock)
	}
	if patch.Comment != nil {
		qb = qb.Set("comment", *patch.Comment)
	}

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	m, err := r.scanOne(r.db.QueryRow(ctx, sqlQuery, args...))
	if err != nil {
		return nil, fmt.Errorf("failed to update movement: %w", err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: movement %s", domain.ErrNotFound, id)
	}

	return m, nil
}

// SoftDelete hides a ledger entry from listings. The stock change it
// recorded stays in effect on the entity.
func (r *movementRepository) SoftDelete(ctx context.Context, id uuid.UUID, kind domain.EntityKind) error {
	query := `UPDATE movements SET active = FALSE, deleted_at = $3, updated_at = $3
		WHERE id = $1 AND entity_kind = $2 AND active = TRUE`

	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, query, id, kind, now)
	if err != nil {
		return fmt.Errorf("failed to soft delete movement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: movement %s", domain.ErrNotFound, id)
	}

	r.logger.InfoContext(ctx, "movement soft deleted",
		slog.String("id", id.String()),
		slog.String("entity_kind", string(kind)))

	return nil
}

func (r *movementRepository) scanOne(row pgx.Row) (*domain.Movement, error) {
	m := &domain.Movement{}
	var comment sql.NullString
	var deletedAt *time.Time

	err := row.Scan(
		&m.ID, &m.EntityKind, &m.EntityID, &m.EntityName, &m.Username,
		&m.MovementType, &m.ModifiedStock, &comment,
		&m.Active, &m.CreatedAt, &m.UpdatedAt, &deletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find movement: %w", err)
	}

	m.Comment = comment.String
	m.DeletedAt = deletedAt
	return m, nil
}
