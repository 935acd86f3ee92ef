// internal/handlers/movement_handler_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/handlers"
	"github.com/Sheimsito/picm-server/test/helpers"
	"github.com/Sheimsito/picm-server/test/mocks"
)

func newMovementHandler(t *testing.T) (*handlers.MovementHandler, *mocks.MockMovementService) {
	ctrl := gomock.NewController(t)
	service := mocks.NewMockMovementService(ctrl)
	return handlers.NewMovementHandler(service, helpers.TestLogger()), service
}

func TestMovementHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		kind           string
		body           string
		setupMocks     func(service *mocks.MockMovementService)
		expectedStatus int
	}{
		{
			name: "product_entry",
			kind: "products",
			body: `{"entity_name":"Agua pura 600ml","movement_type":"Entrada","stock":120,"comment":"restock"}`,
			setupMocks: func(service *mocks.MockMovementService) {
				service.EXPECT().
					Create(gomock.Any(), domain.KindProduct, gomock.Any()).
					DoAndReturn(func(_ interface{}, _ domain.EntityKind,
						params ports.CreateMovementParams) (*domain.Movement, error) {
						assert.Equal(t, "Agua pura 600ml", params.EntityName)
						assert.Equal(t, "Entrada", params.MovementType)
						assert.Equal(t, 120, params.Stock)
						assert.Equal(t, "restock", params.Comment)
						return helpers.CreateTestMovement(func(m *domain.Movement) {
							m.EntityName = params.EntityName
						}), nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "spanish_kind_alias",
			kind: "insumos",
			body: `{"entity_name":"Bolsas","stock":30}`,
			setupMocks: func(service *mocks.MockMovementService) {
				service.EXPECT().
					Create(gomock.Any(), domain.KindSupply, gomock.Any()).
					Return(helpers.CreateTestMovement(func(m *domain.Movement) {
						m.EntityKind = domain.KindSupply
						m.MovementType = domain.SupplyIncrease
					}), nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "invalid_kind",
			kind:           "warehouses",
			body:           `{"entity_name":"x","stock":1}`,
			setupMocks:     func(service *mocks.MockMovementService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed_body",
			kind:           "products",
			body:           `{"entity_name":`,
			setupMocks:     func(service *mocks.MockMovementService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown_entity",
			kind: "products",
			body: `{"entity_name":"No existe","stock":5}`,
			setupMocks: func(service *mocks.MockMovementService) {
				service.EXPECT().
					Create(gomock.Any(), domain.KindProduct, gomock.Any()).
					Return(nil, domain.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "bad_movement_type",
			kind: "products",
			body: `{"entity_name":"Agua pura 600ml","movement_type":"Incremento","stock":5}`,
			setupMocks: func(service *mocks.MockMovementService) {
				service.EXPECT().
					Create(gomock.Any(), domain.KindProduct, gomock.Any()).
					Return(nil, domain.ErrInvalidMovementType)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := newMovementHandler(t)
			tt.setupMocks(service)

			req := httptest.NewRequest("POST", "/api/v1/movements/"+tt.kind, bytes.NewBufferString(tt.body))
			req.SetPathValue("kind", tt.kind)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestMovementHandler_List(t *testing.T) {
	t.Run("filter_parsing", func(t *testing.T) {
		handler, service := newMovementHandler(t)

		service.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
				assert.Equal(t, domain.KindProduct, filter.Kind)
				assert.Equal(t, "agua", filter.Search)
				assert.Equal(t, 2, filter.Page)
				assert.Equal(t, 25, filter.PageSize)
				require.NotNil(t, filter.DateFrom)
				assert.Equal(t, "2026-01-01", filter.DateFrom.Format("2006-01-02"))
				require.NotNil(t, filter.DateTo)
				// date_to covers the whole day
				assert.Equal(t, "2026-01-31", filter.DateTo.Format("2006-01-02"))
				return &ports.EntityPage[domain.Movement]{
					Items:    []*domain.Movement{helpers.CreateTestMovement()},
					Page:     2,
					PageSize: 25,
				}, nil
			})

		req := httptest.NewRequest("GET",
			"/api/v1/movements?kind=products&search=agua&page=2&limit=25&date_from=2026-01-01&date_to=2026-01-31", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var page map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&page))
		assert.Len(t, page["items"], 1)
	})

	t.Run("defaults", func(t *testing.T) {
		handler, service := newMovementHandler(t)

		service.EXPECT().
			List(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
				assert.Equal(t, domain.EntityKind(""), filter.Kind)
				assert.Equal(t, 1, filter.Page)
				assert.Equal(t, 10, filter.PageSize)
				return &ports.EntityPage[domain.Movement]{Items: []*domain.Movement{}}, nil
			})

		req := httptest.NewRequest("GET", "/api/v1/movements", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("bad_date_from", func(t *testing.T) {
		handler, _ := newMovementHandler(t)

		req := httptest.NewRequest("GET", "/api/v1/movements?date_from=01-01-2026", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad_kind", func(t *testing.T) {
		handler, _ := newMovementHandler(t)

		req := httptest.NewRequest("GET", "/api/v1/movements?kind=trucks", nil)
		w := httptest.NewRecorder()

		handler.List(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMovementHandler_Update(t *testing.T) {
	handler, service := newMovementHandler(t)

	id := uuid.New()
	newStock := 99

	service.EXPECT().
		Update(gomock.Any(), id, domain.KindProduct, gomock.Any()).
		DoAndReturn(func(_ interface{}, _ uuid.UUID, _ domain.EntityKind,
			patch ports.MovementPatch) (*domain.Movement, error) {
			require.NotNil(t, patch.ModifiedStock)
			assert.Equal(t, newStock, *patch.ModifiedStock)
			assert.Nil(t, patch.EntityName)
			assert.Nil(t, patch.MovementType)
			return helpers.CreateTestMovement(func(m *domain.Movement) {
				m.ID = id
				m.ModifiedStock = newStock
			}), nil
		})

	body := `{"modified_stock":99}`
	req := httptest.NewRequest("PUT", "/api/v1/movements/products/"+id.String(), bytes.NewBufferString(body))
	req.SetPathValue("kind", "products")
	req.SetPathValue("id", id.String())
	w := httptest.NewRecorder()

	handler.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got domain.Movement
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, newStock, got.ModifiedStock)
}

func TestMovementHandler_Delete(t *testing.T) {
	tests := []struct {
		name           string
		kind           string
		id             string
		setupMocks     func(service *mocks.MockMovementService, id uuid.UUID)
		expectedStatus int
	}{
		{
			name: "ok",
			kind: "supplies",
			id:   uuid.New().String(),
			setupMocks: func(service *mocks.MockMovementService, id uuid.UUID) {
				service.EXPECT().SoftDelete(gomock.Any(), id, domain.KindSupply).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not_found",
			kind: "products",
			id:   uuid.New().String(),
			setupMocks: func(service *mocks.MockMovementService, id uuid.UUID) {
				service.EXPECT().SoftDelete(gomock.Any(), id, domain.KindProduct).Return(domain.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "invalid_id",
			kind:           "products",
			id:             "nope",
			setupMocks:     func(service *mocks.MockMovementService, id uuid.UUID) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_kind",
			kind:           "boxes",
			id:             uuid.New().String(),
			setupMocks:     func(service *mocks.MockMovementService, id uuid.UUID) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, service := newMovementHandler(t)

			parsedID, _ := uuid.Parse(tt.id)
			tt.setupMocks(service, parsedID)

			req := httptest.NewRequest("DELETE", "/api/v1/movements/"+tt.kind+"/"+tt.id, nil)
			req.SetPathValue("kind", tt.kind)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()

			handler.Delete(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}
