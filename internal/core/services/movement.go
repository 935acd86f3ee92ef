// internal/core/services/movement.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

// MovementService exposes the ledger. Create routes through the stock
// service so a movement row and its stock change always commit together;
// Update and SoftDelete are audit corrections with no entity side effects.
type MovementService struct {
	movements ports.MovementRepository
	products  ports.ProductRepository
	supplies  ports.SupplyRepository
	users     ports.UserRepository
	stock     ports.StockService
	logger    *slog.Logger
}

// Statically assert that *MovementService implements the MovementService interface.
var _ ports.MovementService = (*MovementService)(nil)

// NewMovementService creates a new movement service
func NewMovementService(
	movements ports.MovementRepository,
	products ports.ProductRepository,
	supplies ports.SupplyRepository,
	users ports.UserRepository,
	stock ports.StockService,
	logger *slog.Logger,
) *MovementService {
	return &MovementService{
		movements: movements,
		products:  products,
		supplies:  supplies,
		users:     users,
		stock:     stock,
		logger:    logger.With(slog.String("service", "movement")),
	}
}

// Create records a movement by entity name. The referenced entity's stock is
// set to the movement's modified_stock through the stock service, which
// appends the ledger row in the same transaction.
func (s *MovementService) Create(ctx context.Context, kind domain.EntityKind,
	params ports.CreateMovementParams) (*domain.Movement, error) {

	if params.Username == "" {
		return nil, fmt.Errorf("%w: user is required", domain.ErrValidation)
	}
	if params.EntityName == "" {
		return nil, fmt.Errorf("%w: entity name is required", domain.ErrValidation)
	}
	if params.Stock < 0 {
		return nil, fmt.Errorf("%w: modified_stock cannot be negative", domain.ErrValidation)
	}
	if _, err := domain.ParseMovementType(kind, params.MovementType); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, params.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %q", domain.ErrNotFound, params.Username)
	}

	entityID, err := s.findEntityID(ctx, kind, params.EntityName)
	if err != nil {
		return nil, err
	}

	result, err := s.stock.AdjustStock(ctx, kind, entityID, ports.AdjustStockParams{
		Stock:        params.Stock,
		MovementType: params.MovementType,
		Comment:      params.Comment,
		Username:     params.Username,
	})
	if err != nil {
		return nil, err
	}

	return result.Movement, nil
}

// List retrieves ledger entries with filtering and pagination
func (s *MovementService) List(ctx context.Context, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
	page, err := s.movements.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return page, nil
}

// GetByID retrieves one ledger entry
func (s *MovementService) GetByID(ctx context.Context, id uuid.UUID, kind domain.EntityKind) (*domain.Movement, error) {
	movement, err := s.movements.FindByID(ctx, id, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get movement: %w", err)
	}
	if movement == nil {
		return nil, fmt.Errorf("%w: movement %s", domain.ErrNotFound, id)
	}
	return movement, nil
}

// Update applies a retroactive audit correction. The patched values are not
// re-validated against the entity's current stock and the entity itself is
// never touched.
func (s *MovementService) Update(ctx context.Context, id uuid.UUID, kind domain.EntityKind,
	patch ports.MovementPatch) (*domain.Movement, error) {

	if patch.MovementType != nil {
		if _, err := domain.ParseMovementType(kind, *patch.MovementType); err != nil {
			return nil, err
		}
	}
	if patch.ModifiedStock != nil && *patch.ModifiedStock < 0 {
		return nil, fmt.Errorf("%w: modified_stock cannot be negative", domain.ErrValidation)
	}

	movement, err := s.movements.Update(ctx, id, kind, patch)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "movement corrected",
		slog.String("id", id.String()),
		slog.String("entity_kind", string(kind)))

	return movement, nil
}

// SoftDelete hides a ledger entry from listings without reversing the stock
// change it recorded
func (s *MovementService) SoftDelete(ctx context.Context, id uuid.UUID, kind domain.EntityKind) error {
	return s.movements.SoftDelete(ctx, id, kind)
}

func (s *MovementService) findEntityID(ctx context.Context, kind domain.EntityKind, name string) (uuid.UUID, error) {
	if kind == domain.KindSupply {
		supply, err := s.supplies.FindByName(ctx, name)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to load supply: %w", err)
		}
		if supply == nil {
			return uuid.Nil, fmt.Errorf("%w: supply %q", domain.ErrNotFound, name)
		}
		return supply.ID, nil
	}

	product, err := s.products.FindByName(ctx, name)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to load product: %w", err)
	}
	if product == nil {
		return uuid.Nil, fmt.Errorf("%w: product %q", domain.ErrNotFound, name)
	}
	return product.ID, nil
}
