// internal/handlers/product.go
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

// ProductHandler handles product HTTP requests
type ProductHandler struct {
	repo   ports.ProductRepository
	stock  ports.StockService
	logger *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(repo ports.ProductRepository, stock ports.StockService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		repo:   repo,
		stock:  stock,
		logger: logger.With(slog.String("handler", "product")),
	}
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := parseListParams(r)
	if categoryID := r.URL.Query().Get("category_id"); categoryID != "" {
		if id, err := uuid.Parse(categoryID); err == nil {
			params.CategoryID = &id
		}
	}
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

// Get handles GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.repo.FindByID(ctx, id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	if product == nil {
		respondError(w, h.logger, http.StatusNotFound, "Product not found")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, product)
}

// Create handles POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	product := req.ToDomain()
	if err := product.Validate(); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	product.PrepareForStorage()

	if err := h.repo.Save(ctx, product); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "product created",
		slog.String("id", product.ID.String()),
		slog.String("name", product.Name))

	respondJSON(w, h.logger, http.StatusCreated, product)
}

// Update handles PUT /api/v1/products/{id}. Stock is not updatable here;
// only the stock endpoint changes it.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req ProductRequest
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
		respondError(w, h.logger, http.StatusNotFound, "Product not found")
		return
	}

	product := req.ToDomain()
	product.ID = id
	product.Stock = existing.Stock
	if err := product.Validate(); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	if err := h.repo.Update(ctx, product); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, product)
}

// Delete handles DELETE /api/v1/products/{id} (soft)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	if err := h.repo.SoftDelete(ctx, id); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Product deleted successfully",
		"id":      id.String(),
	})
}

// UpdateStock handles PUT /api/v1/products/{id}/stock
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	var req StockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	// A mode is selected only by the literal value "true"; presence alone
	// (or "false") leaves it off.
	result, err := h.stock.AdjustStock(ctx, domain.KindProduct, id, ports.AdjustStockParams{
		Increase:     r.URL.Query().Get("increase") == "true",
		Decrease:     r.URL.Query().Get("decrease") == "true",
		Stock:        req.Stock,
		MovementType: req.MovementType,
		Comment:      req.Comment,
		Username:     middleware.Username(ctx),
	})
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// ProductRequest is the create/update request body for products
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock,omitempty"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	SupplierID  *uuid.UUID      `json:"supplier_id,omitempty"`
}

// ToDomain converts the request to a domain model
func (r *ProductRequest) ToDomain() *domain.Product {
	return &domain.Product{
		Name:        r.Name,
		Description: r.Description,
		UnitPrice:   r.UnitPrice,
		Stock:       r.Stock,
		CategoryID:  r.CategoryID,
		SupplierID:  r.SupplierID,
	}
}

// StockRequest is the stock-adjustment request body
type StockRequest struct {
	Stock        int    `json:"stock"`
	MovementType string `json:"movement_type,omitempty"`
	Comment      string `json:"comment,omitempty"`
}
