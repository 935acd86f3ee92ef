// internal/handlers/catalog.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

// CategoryHandler handles category HTTP requests
type CategoryHandler struct {
	repo   ports.CategoryRepository
	logger *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(repo ports.CategoryRepository, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		repo:   repo,
		logger: logger.With(slog.String("handler", "category")),
	}
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.FindAll(r.Context())
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"items": categories,
		"count": len(categories),
	})
}

// Get handles GET /api/v1/categories/{id}
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	category, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	if category == nil {
		respondError(w, h.logger, http.StatusNotFound, "Category not found")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, category)
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	category := &domain.Category{Name: req.Name, Description: req.Description}
	if err := category.Validate(); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	category.PrepareForStorage()

	if err := h.repo.Save(ctx, category); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, category)
}

// Update handles PUT /api/v1/categories/{id}
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	var req CategoryRequest
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
		respondError(w, h.logger, http.StatusNotFound, "Category not found")
		return
	}

	existing.Name = req.Name
	existing.Description = req.Description
	if err := existing.Validate(); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	if err := h.repo.Update(ctx, existing); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, existing)
}

// Delete handles DELETE /api/v1/categories/{id} (soft)
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid category ID format")
		return
	}

	if err := h.repo.SoftDelete(r.Context(), id); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Category deleted successfully",
		"id":      id.String(),
	})
}

// CategoryRequest is the create/update request body for categories
type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SupplierHandler handles supplier HTTP requests
type SupplierHandler struct {
	repo   ports.SupplierRepository
	logger *slog.Logger
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(repo ports.SupplierRepository, logger *slog.Logger) *SupplierHandler {
	return &SupplierHandler{
		repo:   repo,
		logger: logger.With(slog.String("handler", "supplier")),
	}
}

// List handles GET /api/v1/suppliers
func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.repo.FindAll(r.Context(), parseListParams(r))
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// Get handles GET /api/v1/suppliers/{id}
func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	supplier, err := h.repo.FindByID(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	if supplier == nil {
		respondError(w, h.logger, http.StatusNotFound, "Supplier not found")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, supplier)
}

// Create handles POST /api/v1/suppliers
func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	supplier := req.ToDomain()
	if err := supplier.Validate(); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	supplier.PrepareForStorage()

	if err := h.repo.Save(ctx, supplier); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, supplier)
}

// Update handles PUT /api/v1/suppliers/{id}
func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	var req SupplierRequest
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
		respondError(w, h.logger, http.StatusNotFound, "Supplier not found")
		return
	}

	supplier := req.ToDomain()
	supplier.ID = id
	if err := supplier.Validate(); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	if err := h.repo.Update(ctx, supplier); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, supplier)
}

// Delete handles DELETE /api/v1/suppliers/{id} (soft)
func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid supplier ID format")
		return
	}

	if err := h.repo.SoftDelete(r.Context(), id); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Supplier deleted successfully",
		"id":      id.String(),
	})
}

// SupplierRequest is the create/update request body for suppliers
type SupplierRequest struct {
	Name    string `json:"name"`
	NIT     string `json:"nit"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

// ToDomain converts the request to a domain model
func (r *SupplierRequest) ToDomain() *domain.Supplier {
	return &domain.Supplier{
		Name:    r.Name,
		NIT:     r.NIT,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}
}
