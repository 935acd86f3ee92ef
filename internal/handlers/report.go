// internal/handlers/report.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/Sheimsito/picm-server/internal/adapters/redis_adapter"
	"github.com/Sheimsito/picm-server/internal/adapters/storage"
	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/handlers/middleware"
	"github.com/Sheimsito/picm-server/internal/workers"
)

// ReportHandler serves ledger exports: a synchronous Excel download for
// small extracts and a background job that archives the workbook in object
// storage for the rest.
type ReportHandler struct {
	movements ports.MovementRepository
	tasks     *asynq.Client
	cache     ports.CacheRepository
	archive   storage.StorageClient
	logger    *slog.Logger
}

// reportLinkTTL bounds how long a handed-out download link stays valid.
const reportLinkTTL = 15 * time.Minute

// NewReportHandler creates a new report handler. archive may be nil, in
// which case finished jobs report their key without a download link.
func NewReportHandler(movements ports.MovementRepository, tasks *asynq.Client,
	cache ports.CacheRepository, archive storage.StorageClient, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		movements: movements,
		tasks:     tasks,
		cache:     cache,
		archive:   archive,
		logger:    logger.With(slog.String("handler", "report")),
	}
}

// ExportExcel handles GET /api/v1/reports/movements/excel
func (h *ReportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseMovementFilter(r)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}
	filter.Page = 1
	filter.PageSize = 1000
	filter.SortBy = "created_at"
	filter.SortOrder = "desc"

	page, err := h.movements.FindAll(ctx, filter)
	if err != nil {
		respondDomainError(w, r, h.logger, err)
		return
	}

	data, err := workers.BuildMovementsWorkbook(page.Items)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build workbook", "err", err)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("movements_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response", "err", err)
		return
	}

	h.logger.InfoContext(ctx, "movements export completed",
		slog.Int("rows", len(page.Items)),
		slog.String("filename", filename))
}

// ReportRequest is the background-report request body.
type ReportRequest struct {
	Kind         string     `json:"kind,omitempty"`
	Search       string     `json:"search,omitempty"`
	MovementType string     `json:"movement_type,omitempty"`
	DateFrom     *time.Time `json:"date_from,omitempty"`
	DateTo       *time.Time `json:"date_to,omitempty"`
}

// Enqueue handles POST /api/v1/reports/movements
func (h *ReportHandler) Enqueue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Kind != "" {
		if _, err := domain.ParseEntityKind(req.Kind); err != nil {
			respondDomainError(w, r, h.logger, err)
			return
		}
	}

	jobID := uuid.New().String()
	payload := workers.ReportMovementsPayload{
		JobID:       jobID,
		RequestedBy: middleware.Username(ctx),
		Filter: workers.ReportMovementsFilter{
			Kind:         req.Kind,
			Search:       req.Search,
			MovementType: req.MovementType,
			DateFrom:     req.DateFrom,
			DateTo:       req.DateTo,
		},
	}

	task, err := workers.NewReportMovementsTask(payload)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to build report task", "err", err)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to schedule report")
		return
	}

	status := workers.ReportStatus{
		JobID:       jobID,
		Status:      workers.ReportStatusPending,
		RequestedBy: payload.RequestedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.cache.SetWithTTL(ctx, redis_a.BuildKey(redis_a.PrefixReport, jobID),
		status, 24*time.Hour); err != nil {
		h.logger.WarnContext(ctx, "failed to persist report status", "err", err)
	}

	if _, err := h.tasks.EnqueueContext(ctx, task); err != nil {
		h.logger.ErrorContext(ctx, "failed to enqueue report task", "err", err)
		respondError(w, h.logger, http.StatusInternalServerError, "Failed to schedule report")
		return
	}

	h.logger.InfoContext(ctx, "movements report scheduled",
		slog.String("job_id", jobID),
		slog.String("requested_by", payload.RequestedBy))

	respondJSON(w, h.logger, http.StatusAccepted, map[string]string{
		"job_id": jobID,
		"status": workers.ReportStatusPending,
	})
}

// Status handles GET /api/v1/reports/movements/{job_id}
func (h *ReportHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	jobID, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var status workers.ReportStatus
	if err := h.cache.Get(ctx, redis_a.BuildKey(redis_a.PrefixReport, jobID.String()), &status); err != nil {
		if err == redis_a.ErrCacheMiss {
			respondError(w, h.logger, http.StatusNotFound, "Report job not found")
			return
		}
		respondDomainError(w, r, h.logger, err)
		return
	}

	if status.Status == workers.ReportStatusDone && status.Key != "" && h.archive != nil {
		url, err := h.archive.Presign(ctx, status.Key, reportLinkTTL)
		if err != nil {
			h.logger.WarnContext(ctx, "failed to presign report download", "err", err)
		} else {
			respondJSON(w, h.logger, http.StatusOK, struct {
				workers.ReportStatus
				DownloadURL string `json:"download_url"`
			}{ReportStatus: status, DownloadURL: url})
			return
		}
	}

	respondJSON(w, h.logger, http.StatusOK, status)
}
