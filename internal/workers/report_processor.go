// internal/workers/report_processor.go
package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	redis_a "github.com/Sheimsito/picm-server/internal/adapters/redis_adapter"
	"github.com/Sheimsito/picm-server/internal/adapters/storage"
	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

// Report job statuses stored in the cache under report:<job_id>.
const (
	ReportStatusPending   = "pending"
	ReportStatusRunning   = "running"
	ReportStatusDone      = "done"
	ReportStatusFailed    = "failed"
	reportStatusTTL       = 24 * time.Hour
	reportPageSize        = 500
	excelContentType      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportStatus is the job record the status endpoint reads back.
type ReportStatus struct {
	JobID       string     `json:"job_id"`
	Status      string     `json:"status"`
	RequestedBy string     `json:"requested_by,omitempty"`
	Rows        int        `json:"rows,omitempty"`
	Key         string     `json:"key,omitempty"`
	Location    string     `json:"location,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// ReportProcessor generates ledger workbooks in the background and archives
// them in object storage.
type ReportProcessor struct {
	movements ports.MovementRepository
	storage   storage.StorageClient
	cache     ports.CacheRepository
	client    *asynq.Client
	logger    *slog.Logger
}

// NewReportProcessor creates a new report processor
func NewReportProcessor(movements ports.MovementRepository, store storage.StorageClient,
	cache ports.CacheRepository, client *asynq.Client, logger *slog.Logger) *ReportProcessor {
	return &ReportProcessor{
		movements: movements,
		storage:   store,
		cache:     cache,
		client:    client,
		logger:    logger.With(slog.String("processor", "report")),
	}
}

// ProcessReportMovements handles report:movements tasks. The workbook is
// built from the full filtered ledger, uploaded, and the job status updated
// so the API can hand out the archive location.
func (p *ReportProcessor) ProcessReportMovements(ctx context.Context, t *asynq.Task) error {
	var payload ReportMovementsPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	p.logger.InfoContext(ctx, "generating movements report",
		slog.String("job_id", payload.JobID),
		slog.String("requested_by", payload.RequestedBy))

	status := ReportStatus{
		JobID:       payload.JobID,
		Status:      ReportStatusRunning,
		RequestedBy: payload.RequestedBy,
		CreatedAt:   time.Now().UTC(),
	}
	p.saveStatus(ctx, &status)

	rows, err := p.collectMovements(ctx, payload.Filter.ToMovementFilter())
	if err != nil {
		p.failStatus(ctx, &status, err)
		return fmt.Errorf("failed to collect movements: %w", err)
	}

	data, err := BuildMovementsWorkbook(rows)
	if err != nil {
		p.failStatus(ctx, &status, err)
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	key := fmt.Sprintf("reports/movements/%s_%s.xlsx",
		time.Now().UTC().Format("20060102_150405"), payload.JobID)
	location, err := p.storage.Upload(ctx, key, bytes.NewReader(data), excelContentType)
	if err != nil {
		p.failStatus(ctx, &status, err)
		return fmt.Errorf("failed to upload report: %w", err)
	}

	now := time.Now().UTC()
	status.Status = ReportStatusDone
	status.Rows = len(rows)
	status.Key = key
	status.Location = location
	status.FinishedAt = &now
	p.saveStatus(ctx, &status)

	p.notifyReportReady(ctx, payload, key)

	p.logger.InfoContext(ctx, "movements report archived",
		slog.String("job_id", payload.JobID),
		slog.Int("rows", len(rows)),
		slog.String("key", key))

	return nil
}

// collectMovements pages through the filtered ledger until exhausted.
func (p *ReportProcessor) collectMovements(ctx context.Context, filter ports.MovementFilter) ([]*domain.Movement, error) {
	filter.Page = 1
	filter.PageSize = reportPageSize
	filter.SortBy = "created_at"
	filter.SortOrder = "desc"

	var all []*domain.Movement
	for {
		page, err := p.movements.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if len(page.Items) < filter.PageSize || int64(len(all)) >= page.TotalCount {
			return all, nil
		}
		filter.Page++
	}
}

func (p *ReportProcessor) saveStatus(ctx context.Context, status *ReportStatus) {
	key := redis_a.BuildKey(redis_a.PrefixReport, status.JobID)
	if err := p.cache.SetWithTTL(ctx, key, status, reportStatusTTL); err != nil {
		p.logger.WarnContext(ctx, "failed to persist report status",
			slog.String("job_id", status.JobID),
			"err", err)
	}
}

func (p *ReportProcessor) failStatus(ctx context.Context, status *ReportStatus, err error) {
	now := time.Now().UTC()
	status.Status = ReportStatusFailed
	status.Error = err.Error()
	status.FinishedAt = &now
	p.saveStatus(ctx, status)
}

func (p *ReportProcessor) notifyReportReady(ctx context.Context, payload ReportMovementsPayload, key string) {
	if p.client == nil || payload.RequestedBy == "" {
		return
	}

	task, err := NewNotifyEmailTask(NotifyEmailPayload{
		To:       payload.RequestedBy,
		Subject:  "Movements report ready",
		Template: "report_ready",
		Body:     key,
	})
	if err != nil {
		p.logger.WarnContext(ctx, "failed to build notification task", "err", err)
		return
	}
	if _, err := p.client.EnqueueContext(ctx, task); err != nil {
		p.logger.WarnContext(ctx, "failed to enqueue notification", "err", err)
	}
}

// BuildMovementsWorkbook renders ledger rows into a single-sheet workbook.
// Shared by the synchronous download endpoint and the background job.
func BuildMovementsWorkbook(rows []*domain.Movement) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet("Movements")
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headers := []string{"ID", "Kind", "Entity", "Type", "Resulting Stock", "User", "Comment", "Date"}
	headerRow := sheet.AddRow()
	for _, header := range headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, m := range rows {
		row := sheet.AddRow()
		row.AddCell().Value = m.ID.String()
		row.AddCell().Value = string(m.EntityKind)
		row.AddCell().Value = m.EntityName
		row.AddCell().Value = string(m.MovementType)
		row.AddCell().SetInt(m.ModifiedStock)
		row.AddCell().Value = m.Username
		row.AddCell().Value = m.Comment
		row.AddCell().Value = m.CreatedAt.Format("2006-01-02 15:04:05")
	}

	for i := range headers {
		sheet.SetColWidth(i, i, 18)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}
