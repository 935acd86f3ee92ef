// internal/adapters/db/catalog_repository.go
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

// categoryRepository implements ports.CategoryRepository
type categoryRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *Database, logger *slog.Logger) ports.CategoryRepository {
	return &categoryRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "category")),
	}
}

var _ ports.CategoryRepository = (*categoryRepository)(nil)

// Save creates a new category
func (r *categoryRepository) Save(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Description, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category name %q already exists", domain.ErrConflict, c.Name)
		}
		return fmt.Errorf("failed to save category: %w", err)
	}

	return nil
}

// Update updates an existing category
func (r *categoryRepository) Update(ctx context.Context, c *domain.Category) error {
	query := `
		UPDATE categories SET name = $2, description = $3, updated_at = $4
		WHERE id = $1 AND active = TRUE`

	c.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(ctx, query, c.ID, c.Name, c.Description, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: category name %q already exists", domain.ErrConflict, c.Name)
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %s", domain.ErrNotFound, c.ID)
	}

	return nil
}

// FindByID retrieves an active category by ID
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT id, name, description, active, created_at, updated_at, deleted_at
		FROM categories WHERE id = $1 AND active = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// FindByName retrieves an active category by its unique name
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*domain.Category, error) {
	query := `SELECT id, name, description, active, created_at, updated_at, deleted_at
		FROM categories WHERE name = $1 AND active = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, name))
}

// FindAll retrieves all active categories ordered by name
func (r *categoryRepository) FindAll(ctx context.Context) ([]*domain.Category, error) {
	query := `SELECT id, name, description, active, created_at, updated_at, deleted_at
		FROM categories WHERE active = TRUE ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c := &domain.Category{}
		var description sql.NullString
		var deletedAt *time.Time

		if err := rows.Scan(&c.ID, &c.Name, &description, &c.Active,
			&c.CreatedAt, &c.UpdatedAt, &deletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		c.Description = description.String
		c.DeletedAt = deletedAt
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

// SoftDelete marks a category as removed
func (r *categoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE categories SET active = FALSE, deleted_at = $2, updated_at = $2 WHERE id = $1 AND active = TRUE`

	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("failed to soft delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: category %s", domain.ErrNotFound, id)
	}

	return nil
}

func (r *categoryRepository) scanOne(row pgx.Row) (*domain.Category, error) {
	c := &domain.Category{}
	var description sql.NullString
	var deletedAt *time.Time

	err := row.Scan(&c.ID, &c.Name, &description, &c.Active,
		&c.CreatedAt, &c.UpdatedAt, &deletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	c.Description = description.String
	c.DeletedAt = deletedAt
	return c, nil
}

// supplierRepository implements ports.SupplierRepository
type supplierRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *Database, logger *slog.Logger) ports.SupplierRepository {
	return &supplierRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "supplier")),
	}
}

var _ ports.SupplierRepository = (*supplierRepository)(nil)

// Save creates a new supplier
func (r *supplierRepository) Save(ctx context.Context, s *domain.Supplier) error {
	query := `
		INSERT INTO suppliers (id, name, nit, phone, email, address, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(ctx, query,
		s.ID, s.Name, s.NIT, s.Phone, s.Email, s.Address, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: supplier nit, phone or email already registered", domain.ErrConflict)
		}
		return fmt.Errorf("failed to save supplier: %w", err)
	}

	return nil
}

// Update updates an existing supplier
func (r *supplierRepository) Update(ctx context.Context, s *domain.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, nit = $3, phone = $4, email = $5, address = $6, updated_at = $7
		WHERE id = $1 AND active = TRUE`

	s.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(ctx, query, s.ID, s.Name, s.NIT, s.Phone, s.Email, s.Address, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: supplier nit, phone or email already registered", domain.ErrConflict)
		}
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supplier %s", domain.ErrNotFound, s.ID)
	}

	return nil
}

// FindByID retrieves an active supplier by ID
func (r *supplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	query := `SELECT id, name, nit, phone, email, address, active, created_at, updated_at, deleted_at
		FROM suppliers WHERE id = $1 AND active = TRUE`

	s := &domain.Supplier{}
	var address sql.NullString
	var deletedAt *time.Time

	err := r.db.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.NIT, &s.Phone, &s.Email, &address,
		&s.Active, &s.CreatedAt, &s.UpdatedAt, &deletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}

	s.Address = address.String
	s.DeletedAt = deletedAt
	return s, nil
}

// FindAll retrieves suppliers with search and pagination
func (r *supplierRepository) FindAll(ctx context.Context, params ports.EntityListParams) (*ports.EntityPage[domain.Supplier], error) {
	qb := squirrel.Select(
		"id", "name", "nit", "phone", "email", "address",
		"active", "created_at", "updated_at", "deleted_at",
		"COUNT(*) OVER() AS total_count",
	).From("suppliers").
		Where("active = TRUE").
		PlaceholderFormat(squirrel.Dollar)

	if params.Search != "" {
		qb = qb.Where("(name ILIKE ? OR nit ILIKE ?)", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	qb = qb.OrderBy("name ASC")

	page, pageSize := normalizePage(params.Page, params.PageSize)
	qb = qb.Limit(uint64(pageSize)).Offset(uint64((page - 1) * pageSize))

	sqlQuery, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer rows.Close()

	result := &ports.EntityPage[domain.Supplier]{Page: page, PageSize: pageSize}
	for rows.Next() {
		s := &domain.Supplier{}
		var address sql.NullString
		var deletedAt *time.Time

		err := rows.Scan(
			&s.ID, &s.Name, &s.NIT, &s.Phone, &s.Email, &address,
			&s.Active, &s.CreatedAt, &s.UpdatedAt, &deletedAt,
			&result.TotalCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}

		s.Address = address.String
		s.DeletedAt = deletedAt
		result.Items = append(result.Items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	result.TotalPages = totalPages(result.TotalCount, pageSize)
	return result, nil
}

// SoftDelete marks a supplier as removed
func (r *supplierRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE suppliers SET active = FALSE, deleted_at = $2, updated_at = $2 WHERE id = $1 AND active = TRUE`

	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("failed to soft delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: supplier %s", domain.ErrNotFound, id)
	}

	return nil
}
