// internal/core/services/stock.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

// StockService is the single write path for entity stock. Each successful
// adjustment commits the stock update and exactly one ledger append in the
// same transaction; there is no way to change stock without a movement row.
type StockService struct {
	products  ports.ProductRepository
	supplies  ports.SupplyRepository
	movements ports.MovementRepository
	tx        ports.TxManager
	logger    *slog.Logger
}

// Statically assert that *StockService implements the StockService interface.
var _ ports.StockService = (*StockService)(nil)

// NewStockService creates a new stock service
func NewStockService(
	products ports.ProductRepository,
	supplies ports.SupplyRepository,
	movements ports.MovementRepository,
	tx ports.TxManager,
	logger *slog.Logger,
) *StockService {
	return &StockService{
		products:  products,
		supplies:  supplies,
		movements: movements,
		tx:        tx,
		logger:    logger.With(slog.String("service", "stock")),
	}
}

// AdjustStock applies one stock change to a product or supply. Increase and
// decrease interpret params.Stock as the requested new total, never a delta;
// with neither flag the stock is written directly.
func (s *StockService) AdjustStock(ctx context.Context, kind domain.EntityKind, entityID uuid.UUID,
	params ports.AdjustStockParams) (*ports.AdjustStockResult, error) {

	if params.Increase && params.Decrease {
		return nil, fmt.Errorf("%w: increase and decrease are mutually exclusive", domain.ErrConflictingMode)
	}
	if params.Username == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}

	entityName, err := s.entityName(ctx, kind, entityID)
	if err != nil {
		return nil, err
	}

	var result *ports.AdjustStockResult
	err = s.tx.Transaction(ctx, func(tx pgx.Tx) error {
		current, err := s.lockStock(ctx, tx, kind, entityID)
		if err != nil {
			return err
		}

		newStock, err := resolveNewStock(current, params)
		if err != nil {
			return err
		}

		movementType, err := s.resolveMovementType(kind, current, newStock, params)
		if err != nil {
			return err
		}

		if err := s.updateStock(ctx, tx, kind, entityID, newStock); err != nil {
			return err
		}

		movement := &domain.Movement{
			EntityKind:    kind,
			EntityID:      entityID,
			EntityName:    entityName,
			Username:      params.Username,
			MovementType:  movementType,
			ModifiedStock: newStock,
			Comment:       params.Comment,
		}
		movement.PrepareForStorage()

		if err := s.movements.AppendTx(ctx, tx, movement); err != nil {
			return err
		}

		result = &ports.AdjustStockResult{NewStock: newStock, Movement: movement}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "stock adjusted",
		slog.String("entity_kind", string(kind)),
		slog.String("entity_id", entityID.String()),
		slog.Int("new_stock", result.NewStock),
		slog.String("movement_type", string(result.Movement.MovementType)))

	return result, nil
}

// resolveNewStock enforces the per-mode bounds against the locked stock
func resolveNewStock(current int, params ports.AdjustStockParams) (int, error) {
	requested := params.Stock

	switch {
	case params.Increase:
		if requested < current {
			return 0, fmt.Errorf("%w: increase to %d is below current stock %d",
				domain.ErrInvalidTransition, requested, current)
		}
	case params.Decrease:
		if requested < 0 || requested > current {
			return 0, fmt.Errorf("%w: decrease to %d is outside [0, %d]",
				domain.ErrInvalidTransition, requested, current)
		}
	default:
		if requested < 0 {
			return 0, fmt.Errorf("%w: stock cannot be negative", domain.ErrInvalidValue)
		}
	}

	return requested, nil
}

// resolveMovementType picks the ledger label. The increase and decrease modes
// always label supply movements themselves; otherwise a caller-supplied label
// is honored when it belongs to the kind's vocabulary, and the stock
// comparison decides the rest.
func (s *StockService) resolveMovementType(kind domain.EntityKind, current, newStock int,
	params ports.AdjustStockParams) (domain.MovementType, error) {

	if kind == domain.KindSupply {
		switch {
		case params.Increase:
			return domain.SupplyIncrease, nil
		case params.Decrease:
			return domain.SupplyDecrease, nil
		}
		if params.MovementType != "" {
			return domain.ParseMovementType(kind, params.MovementType)
		}
		if newStock >= current {
			return domain.SupplyEntry, nil
		}
		return domain.SupplyExit, nil
	}

	if params.MovementType != "" {
		return domain.ParseMovementType(kind, params.MovementType)
	}
	if newStock >= current {
		return domain.ProductEntry, nil
	}
	return domain.ProductExit, nil
}

func (s *StockService) entityName(ctx context.Context, kind domain.EntityKind, id uuid.UUID) (string, error) {
	switch kind {
	case domain.KindSupply:
		supply, err := s.supplies.FindByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to load supply: %w", err)
		}
		if supply == nil {
			return "", fmt.Errorf("%w: supply %s", domain.ErrNotFound, id)
		}
		return supply.Name, nil
	default:
		product, err := s.products.FindByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("failed to load product: %w", err)
		}
		if product == nil {
			return "", fmt.Errorf("%w: product %s", domain.ErrNotFound, id)
		}
		return product.Name, nil
	}
}

func (s *StockService) lockStock(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, id uuid.UUID) (int, error) {
	if kind == domain.KindSupply {
		return s.supplies.LockStock(ctx, tx, id)
	}
	return s.products.LockStock(ctx, tx, id)
}

func (s *StockService) updateStock(ctx context.Context, tx pgx.Tx, kind domain.EntityKind, id uuid.UUID, stock int) error {
	if kind == domain.KindSupply {
		return s.supplies.UpdateStockTx(ctx, tx, id, stock)
	}
	return s.products.UpdateStockTx(ctx, tx, id, stock)
}
