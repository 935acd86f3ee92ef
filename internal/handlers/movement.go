// internal/handlers/movement.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/handlers/middleware"
)

// MovementHandler handles stock-movement ledger HTTP requests
type MovementHandler struct {
	service ports.MovementService
	logger  *slog.Logger
}

// NewMovementHandler creates a new movement handler
func NewMovementHandler(service ports.MovementService, logger *slog.Logger) *MovementHandler {
	return &MovementHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "movement")),
	}
}

// MovementRequest is the create request body for ledger entries. The entity
// is referenced by name; stock is the resulting stock, not a delta.
type MovementRequest struct {
	EntityName   string `json:"entity_name"`
	MovementType string `json:"movement_type"`
	Stock        int    `json:"stock"`
	Comment      string `json:"comment,omitempty"`
}

// MovementPatchRequest is the correction request body. Omitted fields stay
// untouched.
type MovementPatchRequest struct {
	EntityName    *string `json:"entity_name,omitempty"`
	MovementType  *string `json:"movement_type,omitempty"`
	ModifiedStock *int    `json:"modified_stock,omitempty"`
	Comment       *string `json:"comment,omitempty"`
}

// Create handles POST /api/v1/movements/{kind}
func (h *MovementHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := domain.ParseEntityKind(r.PathValue("kind"))
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	var req MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	movement, err := h.service.Create(ctx, kind, ports.CreateMovementParams{
		Username:     middleware.Username(ctx),
		EntityName:   req.EntityName,
		MovementType: req.MovementType,
		Stock:        req.Stock,
		Comment:      req.Comment,
	})
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "movement recorded",
		slog.String("id", movement.ID.String()),
		slog.String("entity", movement.EntityName),
		slog.String("type", string(movement.MovementType)))

	respondJSON(w, h.logger, http.StatusCreated, movement)
}

// List handles GET /api/v1/movements
func (h *MovementHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMovementFilter(r)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, result)
}

// Get handles GET /api/v1/movements/{kind}/{id}
func (h *MovementHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.parsePath(w, r)
	if !ok {
		return
	}

	movement, err := h.service.GetByID(r.Context(), id, kind)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, movement)
}

// Update handles PUT /api/v1/movements/{kind}/{id}
func (h *MovementHandler) Update(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.parsePath(w, r)
	if !ok {
		return
	}

	var req MovementPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	movement, err := h.service.Update(r.Context(), id, kind, ports.MovementPatch{
		EntityName:    req.EntityName,
		MovementType:  req.MovementType,
		ModifiedStock: req.ModifiedStock,
		Comment:       req.Comment,
	})
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, movement)
}

// Delete handles DELETE /api/v1/movements/{kind}/{id} (soft)
func (h *MovementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind, id, ok := h.parsePath(w, r)
	if !ok {
		return
	}

	if err := h.service.SoftDelete(r.Context(), id, kind); err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Movement deleted successfully",
		"id":      id.String(),
	})
}

func (h *MovementHandler) parsePath(w http.ResponseWriter, r *http.Request) (domain.EntityKind, uuid.UUID, bool) {
	kind, err := domain.ParseEntityKind(r.PathValue("kind"))
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return "", uuid.Nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid movement ID format")
		return "", uuid.Nil, false
	}

	return kind, id, true
}

func parseMovementFilter(r *http.Request) (ports.MovementFilter, error) {
	q := r.URL.Query()

	filter := ports.MovementFilter{
		Search:       q.Get("search"),
		MovementType: q.Get("movement_type"),
		SortBy:       q.Get("sort"),
		SortOrder:    q.Get("order"),
		Page:         1,
		PageSize:     10,
	}

	if kind := q.Get("kind"); kind != "" {
		parsed, err := domain.ParseEntityKind(kind)
		if err != nil {
			return filter, err
		}
		filter.Kind = parsed
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.PageSize = limit
	}

	if from := q.Get("date_from"); from != "" {
		t, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return filter, fmt.Errorf("%w: date_from must be YYYY-MM-DD", domain.ErrInvalidParameter)
		}
		filter.DateFrom = &t
	}
	if to := q.Get("date_to"); to != "" {
		t, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return filter, fmt.Errorf("%w: date_to must be YYYY-MM-DD", domain.ErrInvalidParameter)
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}

	return filter, nil
}
