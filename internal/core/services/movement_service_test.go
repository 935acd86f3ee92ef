// internal/core/services/movement_service_test.go
package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/core/services"
	"github.com/Sheimsito/picm-server/test/helpers"
	"github.com/Sheimsito/picm-server/test/mocks"
)

type movementMocks struct {
	movements *mocks.MockMovementRepository
	products  *mocks.MockProductRepository
	supplies  *mocks.MockSupplyRepository
	users     *mocks.MockUserRepository
	stock     *mocks.MockStockService
}

func newMovementService(t *testing.T) (*services.MovementService, *movementMocks) {
	ctrl := gomock.NewController(t)
	m := &movementMocks{
		movements: mocks.NewMockMovementRepository(ctrl),
		products:  mocks.NewMockProductRepository(ctrl),
		supplies:  mocks.NewMockSupplyRepository(ctrl),
		users:     mocks.NewMockUserRepository(ctrl),
		stock:     mocks.NewMockStockService(ctrl),
	}
	svc := services.NewMovementService(m.movements, m.products, m.supplies, m.users, m.stock, helpers.TestLogger())
	return svc, m
}

func TestMovementService_Create(t *testing.T) {
	user := &domain.User{ID: uuid.New(), Username: "ana", Active: true}
	productID := uuid.New()
	product := &domain.Product{ID: productID, Name: "Aceite 20W-50", Stock: 10, Active: true}

	tests := []struct {
		name          string
		kind          domain.EntityKind
		params        ports.CreateMovementParams
		setupMocks    func(m *movementMocks)
		wantErr       error
	}{
		{
			name: "creates_product_movement_through_stock_service",
			kind: domain.KindProduct,
			params: ports.CreateMovementParams{
				Username:     "ana",
				EntityName:   "Aceite 20W-50",
				MovementType: "Salida",
				Stock:        4,
				Comment:      "venta mostrador",
			},
			setupMocks: func(m *movementMocks) {
				m.users.EXPECT().FindByUsername(gomock.Any(), "ana").Return(user, nil)
				m.products.EXPECT().FindByName(gomock.Any(), "Aceite 20W-50").Return(product, nil)
				m.stock.EXPECT().
					AdjustStock(gomock.Any(), domain.KindProduct, productID, gomock.Any()).
					DoAndReturn(func(ctx context.Context, kind domain.EntityKind, id uuid.UUID,
						params ports.AdjustStockParams) (*ports.AdjustStockResult, error) {
						assert.False(t, params.Increase)
						assert.False(t, params.Decrease)
						assert.Equal(t, 4, params.Stock)
						assert.Equal(t, "Salida", params.MovementType)
						return &ports.AdjustStockResult{
							NewStock: 4,
							Movement: &domain.Movement{
								EntityKind:    kind,
								EntityID:      id,
								EntityName:    "Aceite 20W-50",
								Username:      "ana",
								MovementType:  domain.ProductExit,
								ModifiedStock: 4,
							},
						}, nil
					})
			},
		},
		{
			name: "supply_movement_keeps_caller_label",
			kind: domain.KindSupply,
			params: ports.CreateMovementParams{
				Username:     "ana",
				EntityName:   "Bolsas kraft",
				MovementType: "Incremento",
				Stock:        25,
			},
			setupMocks: func(m *movementMocks) {
				supplyID := uuid.New()
				m.users.EXPECT().FindByUsername(gomock.Any(), "ana").Return(user, nil)
				m.supplies.EXPECT().FindByName(gomock.Any(), "Bolsas kraft").
					Return(&domain.Supply{ID: supplyID, Name: "Bolsas kraft", Stock: 10, Active: true}, nil)
				m.stock.EXPECT().
					AdjustStock(gomock.Any(), domain.KindSupply, supplyID, gomock.Any()).
					DoAndReturn(func(ctx context.Context, kind domain.EntityKind, id uuid.UUID,
						params ports.AdjustStockParams) (*ports.AdjustStockResult, error) {
						assert.Equal(t, "Incremento", params.MovementType)
						return &ports.AdjustStockResult{
							NewStock: 25,
							Movement: &domain.Movement{
								EntityKind:    kind,
								EntityID:      id,
								EntityName:    "Bolsas kraft",
								Username:      "ana",
								MovementType:  domain.SupplyIncrease,
								ModifiedStock: 25,
							},
						}, nil
					})
			},
		},
		{
			name: "unknown_user_not_found",
			kind: domain.KindProduct,
			params: ports.CreateMovementParams{
				Username:     "ghost",
				EntityName:   "Aceite 20W-50",
				MovementType: "Salida",
				Stock:        4,
			},
			setupMocks: func(m *movementMocks) {
				m.users.EXPECT().FindByUsername(gomock.Any(), "ghost").Return(nil, nil)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "unknown_entity_not_found",
			kind: domain.KindProduct,
			params: ports.CreateMovementParams{
				Username:     "ana",
				EntityName:   "No existe",
				MovementType: "Entrada",
				Stock:        4,
			},
			setupMocks: func(m *movementMocks) {
				m.users.EXPECT().FindByUsername(gomock.Any(), "ana").Return(user, nil)
				m.products.EXPECT().FindByName(gomock.Any(), "No existe").Return(nil, nil)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "missing_username_rejected",
			kind: domain.KindProduct,
			params: ports.CreateMovementParams{
				EntityName:   "Aceite 20W-50",
				MovementType: "Entrada",
				Stock:        4,
			},
			setupMocks: func(m *movementMocks) {},
			wantErr:    domain.ErrValidation,
		},
		{
			name: "cross_vocabulary_type_rejected",
			kind: domain.KindProduct,
			params: ports.CreateMovementParams{
				Username:     "ana",
				EntityName:   "Aceite 20W-50",
				MovementType: "Incremento",
				Stock:        4,
			},
			setupMocks: func(m *movementMocks) {},
			wantErr:    domain.ErrInvalidMovementType,
		},
		{
			name: "negative_stock_rejected",
			kind: domain.KindProduct,
			params: ports.CreateMovementParams{
				Username:     "ana",
				EntityName:   "Aceite 20W-50",
				MovementType: "Entrada",
				Stock:        -3,
			},
			setupMocks: func(m *movementMocks) {},
			wantErr:    domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newMovementService(t)
			tt.setupMocks(m)

			movement, err := svc.Create(context.Background(), tt.kind, tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, movement)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, movement)
			assert.Equal(t, tt.params.EntityName, movement.EntityName)
		})
	}
}

func TestMovementService_GetByID(t *testing.T) {
	svc, m := newMovementService(t)
	id := uuid.New()

	m.movements.EXPECT().FindByID(gomock.Any(), id, domain.KindSupply).Return(nil, nil)

	_, err := svc.GetByID(context.Background(), id, domain.KindSupply)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("valid_patch_passes_through", func(t *testing.T) {
		svc, m := newMovementService(t)
		newComment := "ajuste auditoría"
		patch := ports.MovementPatch{Comment: &newComment}

		m.movements.EXPECT().
			Update(gomock.Any(), id, domain.KindProduct, patch).
			Return(&domain.Movement{ID: id, Comment: newComment}, nil)

		movement, err := svc.Update(context.Background(), id, domain.KindProduct, patch)
		require.NoError(t, err)
		assert.Equal(t, newComment, movement.Comment)
	})

	t.Run("cross_vocabulary_patch_rejected", func(t *testing.T) {
		svc, _ := newMovementService(t)
		badType := "EXIT"

		_, err := svc.Update(context.Background(), id, domain.KindProduct,
			ports.MovementPatch{MovementType: &badType})
		assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
	})

	t.Run("negative_stock_patch_rejected", func(t *testing.T) {
		svc, _ := newMovementService(t)
		bad := -1

		_, err := svc.Update(context.Background(), id, domain.KindProduct,
			ports.MovementPatch{ModifiedStock: &bad})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
