// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
)

// Task type names registered on the worker mux.
const (
	TypeReportMovements = "report:movements"
	TypeStatsWarm       = "stats:warm"
	TypeNotifyEmail     = "notify:email"
	TypeCleanupOldJobs  = "cleanup:old_jobs"
)

// ReportMovementsPayload describes one asynchronous ledger-report job.
type ReportMovementsPayload struct {
	JobID       string                `json:"job_id"`
	RequestedBy string                `json:"requested_by"`
	Filter      ReportMovementsFilter `json:"filter"`
}

// ReportMovementsFilter is the serializable subset of the ledger filter.
type ReportMovementsFilter struct {
	Kind         string     `json:"kind,omitempty"`
	Search       string     `json:"search,omitempty"`
	MovementType string     `json:"movement_type,omitempty"`
	DateFrom     *time.Time `json:"date_from,omitempty"`
	DateTo       *time.Time `json:"date_to,omitempty"`
}

// NotifyEmailPayload describes one outbound notification.
type NotifyEmailPayload struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Template string `json:"template"`
	Body     string `json:"body,omitempty"`
}

// NewReportMovementsTask builds the report-generation task.
func NewReportMovementsTask(payload ReportMovementsPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report payload: %w", err)
	}
	return asynq.NewTask(TypeReportMovements, data,
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
	), nil
}

// NewStatsWarmTask builds the cache-warming task.
func NewStatsWarmTask() *asynq.Task {
	return asynq.NewTask(TypeStatsWarm, nil, asynq.MaxRetry(1))
}

// NewNotifyEmailTask builds the notification task.
func NewNotifyEmailTask(payload NotifyEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	return asynq.NewTask(TypeNotifyEmail, data, asynq.MaxRetry(5)), nil
}

// NewCleanupOldJobsTask builds the periodic cleanup task.
func NewCleanupOldJobsTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupOldJobs, nil, asynq.MaxRetry(1))
}

// ToMovementFilter converts the serialized filter back to the repository
// filter. Pagination is set by the consumer.
func (f ReportMovementsFilter) ToMovementFilter() ports.MovementFilter {
	filter := ports.MovementFilter{
		Search:       f.Search,
		MovementType: f.MovementType,
		DateFrom:     f.DateFrom,
		DateTo:       f.DateTo,
	}
	if kind, err := domain.ParseEntityKind(f.Kind); err == nil {
		filter.Kind = kind
	}
	return filter
}
