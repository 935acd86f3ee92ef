// internal/handlers/supply.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/handlers/middleware"
)

// SupplyHandler handles supply HTTP requests
type SupplyHandler struct {
	repo   ports.SupplyRepository
	stock  ports.StockService
	logger *slog.Logger
}

// NewSupplyHandler creates a new supply handler
func NewSupplyHandler(repo ports.SupplyRepository, stock ports.StockService, logger *slog.Logger) *SupplyHandler {
	return &SupplyHandler{
		repo:   repo,
		stock:  stock,
		logger: logger.With(slog.String("handler", "supply")),
	}
}

// List handles GET /api/v1/supplies
func (h *SupplyHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := parseListParams(r)
	if supplierID := r.URL.Query().Get("supplier_id"); supplierID != "" {
		if id, err := uuid.Parse(supplierID); err == nil {
			params.SupplierID = &id
		}
	}

	result, err := h.repo.FindAll(ctx, params)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// Get handles GET /api/v1/supplies/{id}
func (h *SupplyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid supply ID format")
		return
	}

	supply, err := h.repo.FindByID(ctx, id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	if supply == nil {
		respondError(w, h.logger, http.StatusNotFound, "Supply not found")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, supply)
}

// Create handles POST /api/v1/supplies
func (h *SupplyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SupplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	supply := req.ToDomain()
	if err := supply.Validate(); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	supply.PrepareForStorage()

	if err := h.repo.Save(ctx, supply); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "supply created",
		slog.String("id", supply.ID.String()),
		slog.String("name", supply.Name))

	respondJSON(w, h.logger, http.StatusCreated, supply)
}

// Update handles PUT /api/v1/supplies/{id}. Stock is not updatable here;
// only the stock endpoint changes it.
func (h *SupplyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid supply ID format")
		return
	}

	var req SupplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	existing, err := h.repo.FindByID(ctx, id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	if existing == nil {
		respondError(w, h.logger, http.StatusNotFound, "Supply not found")
		return
	}

	supply := req.ToDomain()
	supply.ID = id
	supply.Stock = existing.Stock
	if err := supply.Validate(); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	if err := h.repo.Update(ctx, supply); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, supply)
}

// Delete handles DELETE /api/v1/supplies/{id} (soft)
func (h *SupplyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid supply ID format")
		return
	}

	if err := h.repo.SoftDelete(ctx, id); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Supply deleted successfully",
		"id":      id.String(),
	})
}

// UpdateStock handles PUT /api/v1/supplies/{id}/stock. The movement label is
// chosen by the stock service; any movement_type in the body is ignored.
func (h *SupplyHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid supply ID format")
		return
	}

	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	// A mode is selected only by the literal value "true", as on products.
	result, err := h.stock.AdjustStock(ctx, domain.KindSupply, id, ports.AdjustStockParams{
		Increase: r.URL.Query().Get("increase") == "true",
		Decrease: r.URL.Query().Get("decrease") == "true",
		Stock:    req.Stock,
		Comment:  req.Comment,
		Username: middleware.Username(ctx),
	})
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// SupplyRequest is the create/update request body for supplies
type SupplyRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock,omitempty"`
	SupplierID  *uuid.UUID      `json:"supplier_id,omitempty"`
}

// ToDomain converts the request to a domain model
func (r *SupplyRequest) ToDomain() *domain.Supply {
	return &domain.Supply{
		Name:        r.Name,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
		Stock:       r.Stock,
		SupplierID:  r.SupplierID,
	}
}
