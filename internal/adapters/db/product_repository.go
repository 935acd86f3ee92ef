// internal/adapters/db/product_repository.go
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

// productRepository implements ports.ProductRepository
type productRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *Database, logger *slog.Logger) ports.ProductRepository {
	return &productRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "product")),
	}
}

var _ ports.ProductRepository = (*productRepository)(nil)

const productColumns = `id, name, description, unit_price, stock, category_id, supplier_id, active, created_at, updated_at, deleted_at`

// Save creates a new product
func (r *productRepository) Save(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (
			id, name, description, unit_price, stock,
			category_id, supplier_id, active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.UnitPrice, p.Stock,
		p.CategoryID, p.SupplierID, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product name %q already exists", domain.ErrConflict, p.Name)
		}
		return fmt.Errorf("failed to save product: %w", err)
	}

	r.logger.DebugContext(ctx, "product saved",
		slog.String("id", p.ID.String()),
		slog.String("name", p.Name))

	return nil
}

// Update updates the descriptive fields of an existing product. Stock is
// only written through UpdateStockTx.
func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `
		UPDATE products SET
			name = $2, description = $3, unit_price = $4,
			category_id = $5, supplier_id = $6, updated_at = $7
		WHERE id = $1 AND active = TRUE`

	p.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.Description, p.UnitPrice,
		p.CategoryID, p.SupplierID, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: product name %q already exists", domain.ErrConflict, p.Name)
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, p.ID)
	}

	return nil
}

// FindByID retrieves an active product by ID
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND active = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

// FindByName retrieves an active product by its unique name
func (r *productRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1 AND active = TRUE`
	return r.scanOne(r.db.QueryRow(ctx, query, name))
}

// FindAll retrieves products with filtering and pagination
func (r *productRepository) FindAll(ctx context.Context, params ports.EntityListParams) (*ports.EntityPage[domain.Product], error) {
	qb := squirrel.Select(
		"id", "name", "description", "unit_price", "stock",
		"category_id", "supplier_id", "active", "created_at", "updated_at", "deleted_at",
		"COUNT(*) OVER() AS total_count",
	).From("products").
		Where("active = TRUE").
		PlaceholderFormat(squirrel.Dollar)

	if params.Search != "" {
		qb = qb.Where("name ILIKE ?", "%"+params.Search+"%")
	}
	if params.CategoryID != nil {
		qb = qb.Where(squirrel.Eq{"category_id": *params.CategoryID})
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
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	result := &ports.EntityPage[domain.Product]{Page: page, PageSize: pageSize}
	for rows.Next() {
		p := &domain.Product{}
		var description sql.NullString
		var categoryID, supplierID *uuid.UUID
		var deletedAt *time.Time

		err := rows.Scan(
			&p.ID, &p.Name, &description, &p.UnitPrice, &p.Stock,
			&categoryID, &supplierID, &p.Active, &p.CreatedAt, &p.UpdatedAt, &deletedAt,
			&result.TotalCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		p.Description = description.String
		p.CategoryID = categoryID
		p.SupplierID = supplierID
		p.DeletedAt = deletedAt
		result.Items = append(result.Items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	result.TotalPages = totalPages(result.TotalCount, pageSize)
	return result, nil
}

// SoftDelete marks a product as removed, keeping the row for history
func (r *productRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE products SET active = FALSE, deleted_at = $2, updated_at = $2 WHERE id = $1 AND active = TRUE`

	now := time.Now().UTC()
	tag, err := r.db.Exec(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("failed to soft delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}

	r.logger.InfoContext(ctx, "product soft deleted",
		slog.String("id", id.String()))

	return nil
}

// LockStock reads the current stock under FOR UPDATE inside the caller's
// transaction. Concurrent adjustments on the same product serialize here.
func (r *productRepository) LockStock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error) {
	query := `SELECT stock FROM products WHERE id = $1 AND active = TRUE FOR UPDATE`

	var stock int
	err := tx.QueryRow(ctx, query, id).Scan(&stock)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
		}
		return 0, fmt.Errorf("failed to lock product stock: %w", err)
	}

	return stock, nil
}

// UpdateStockTx writes the new stock inside the caller's transaction
func (r *productRepository) UpdateStockTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, stock int) error {
	query := `UPDATE products SET stock = $2, updated_at = $3 WHERE id = $1 AND active = TRUE`

	tag, err := tx.Exec(ctx, query, id, stock, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update product stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
	}

	return nil
}

func (r *productRepository) scanOne(row pgx.Row) (*domain.Product, error) {
	p := &domain.Product{}
	var description sql.NullString
	var categoryID, supplierID *uuid.UUID
	var deletedAt *time.Time

	err := row.Scan(
		&p.ID, &p.Name, &description, &p.UnitPrice, &p.Stock,
		&categoryID, &supplierID, &p.Active, &p.CreatedAt, &p.UpdatedAt, &deletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	p.Description = description.String
	p.CategoryID = categoryID
	p.SupplierID = supplierID
	p.DeletedAt = deletedAt
	return p, nil
}

// normalizePage clamps pagination to the defaults used across listings.
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
