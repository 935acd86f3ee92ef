// internal/core/ports/entity_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Sheimsito/picm-server/internal/core/domain"
)

// EntityListParams holds filtering and pagination for entity listings.
type EntityListParams struct {
	Search     string
	CategoryID *uuid.UUID
	SupplierID *uuid.UUID
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// EntityPage is one page of a listing with the overall count.
type EntityPage[T any] struct {
	Items      []*T  `json:"items"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// ProductRepository defines the persistence port for products.
// Reads filter to active rows; FindByID and FindByName return nil, nil
// when no active row matches.
type ProductRepository interface {
	Save(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	FindByName(ctx context.Context, name string) (*domain.Product, error)
	FindAll(ctx context.Context, params EntityListParams) (*EntityPage[domain.Product], error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// LockStock reads the current stock under FOR UPDATE inside the
	// caller's transaction, serializing concurrent adjustments per row.
	LockStock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error)
	// UpdateStockTx writes the new stock inside the caller's transaction.
	UpdateStockTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, stock int) error
}

// SupplyRepository defines the persistence port for supplies.
type SupplyRepository interface {
	Save(ctx context.Context, s *domain.Supply) error
	Update(ctx context.Context, s *domain.Supply) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Supply, error)
	FindByName(ctx context.Context, name string) (*domain.Supply, error)
	FindAll(ctx context.Context, params EntityListParams) (*EntityPage[domain.Supply], error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	LockStock(ctx context.Context, tx pgx.Tx, id uuid.UUID) (int, error)
	UpdateStockTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, stock int) error
}

// CategoryRepository defines the persistence port for categories.
type CategoryRepository interface {
	Save(ctx context.Context, c *domain.Category) error
	Update(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByName(ctx context.Context, name string) (*domain.Category, error)
	FindAll(ctx context.Context) ([]*domain.Category, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// SupplierRepository defines the persistence port for suppliers.
type SupplierRepository interface {
	Save(ctx context.Context, s *domain.Supplier) error
	Update(ctx context.Context, s *domain.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	FindAll(ctx context.Context, params EntityListParams) (*EntityPage[domain.Supplier], error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the persistence port for operator accounts.
type UserRepository interface {
	Save(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
