// internal/handlers/report_handler_test.go
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	redis_a "github.com/Sheimsito/picm-server/internal/adapters/redis_adapter"
	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/handlers"
	"github.com/Sheimsito/picm-server/internal/workers"
	"github.com/Sheimsito/picm-server/test/helpers"
	"github.com/Sheimsito/picm-server/test/mocks"
)

// The asynq client is only touched by Enqueue, which the worker e2e path
// covers; these tests exercise the synchronous export and the status lookup.
func newReportHandler(t *testing.T) (*handlers.ReportHandler, *mocks.MockMovementRepository, ports.CacheRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	slogger := helpers.TestLogger()
	cache := redis_a.NewCache(client, time.Hour, slogger)

	ctrl := gomock.NewController(t)
	movements := mocks.NewMockMovementRepository(ctrl)

	return handlers.NewReportHandler(movements, nil, cache, nil, slogger), movements, cache
}

// stubArchive answers presign requests with a deterministic URL.
type stubArchive struct{}

func (stubArchive) Upload(_ context.Context, key string, _ io.Reader, _ string) (string, error) {
	return "s3://test-bucket/" + key, nil
}

func (stubArchive) Delete(_ context.Context, _ string) error { return nil }

func (stubArchive) List(_ context.Context, _ string) ([]string, error) { return nil, nil }

func (stubArchive) Presign(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://test-bucket.s3.amazonaws.com/" + key + "?signed", nil
}

func TestReportHandler_ExportExcel(t *testing.T) {
	handler, movements, _ := newReportHandler(t)

	rows := []*domain.Movement{
		helpers.CreateTestMovement(),
		helpers.CreateTestMovement(func(m *domain.Movement) {
			m.MovementType = domain.ProductExit
			m.ModifiedStock = 45
		}),
	}

	movements.EXPECT().
		FindAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
			assert.Equal(t, domain.KindProduct, filter.Kind)
			assert.Equal(t, 1000, filter.PageSize)
			assert.Equal(t, "created_at", filter.SortBy)
			assert.Equal(t, "desc", filter.SortOrder)
			return &ports.EntityPage[domain.Movement]{Items: rows, TotalCount: 2}, nil
		})

	req := httptest.NewRequest("GET", "/api/v1/reports/movements/excel?kind=products", nil)
	w := httptest.NewRecorder()

	handler.ExportExcel(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}

func TestReportHandler_ExportExcel_BadFilter(t *testing.T) {
	handler, _, _ := newReportHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/reports/movements/excel?date_from=tomorrow", nil)
	w := httptest.NewRecorder()

	handler.ExportExcel(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportHandler_Status(t *testing.T) {
	handler, _, cache := newReportHandler(t)

	jobID := uuid.New().String()
	stored := workers.ReportStatus{
		JobID:       jobID,
		Status:      workers.ReportStatusDone,
		RequestedBy: "admin",
		Rows:        42,
		Key:         "reports/movements_test.xlsx",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, cache.SetWithTTL(t.Context(),
		redis_a.BuildKey(redis_a.PrefixReport, jobID), stored, time.Hour))

	req := httptest.NewRequest("GET", "/api/v1/reports/movements/"+jobID, nil)
	req.SetPathValue("job_id", jobID)
	w := httptest.NewRecorder()

	handler.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var got workers.ReportStatus
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, jobID, got.JobID)
	assert.Equal(t, workers.ReportStatusDone, got.Status)
	assert.Equal(t, 42, got.Rows)
}

// TestReportHandler_Status_DownloadLink asserts that a finished job carries a
// presigned link when the archive is reachable.
func TestReportHandler_Status_DownloadLink(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	slogger := helpers.TestLogger()
	cache := redis_a.NewCache(client, time.Hour, slogger)
	movements := mocks.NewMockMovementRepository(gomock.NewController(t))

	handler := handlers.NewReportHandler(movements, nil, cache, stubArchive{}, slogger)

	jobID := uuid.New().String()
	key := "reports/movements/20260831_120000_" + jobID + ".xlsx"
	stored := workers.ReportStatus{
		JobID:     jobID,
		Status:    workers.ReportStatusDone,
		Rows:      7,
		Key:       key,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, cache.SetWithTTL(t.Context(),
		redis_a.BuildKey(redis_a.PrefixReport, jobID), stored, time.Hour))

	req := httptest.NewRequest("GET", "/api/v1/reports/movements/"+jobID, nil)
	req.SetPathValue("job_id", jobID)
	w := httptest.NewRecorder()

	handler.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "https://test-bucket.s3.amazonaws.com/"+key+"?signed", resp["download_url"])
	assert.Equal(t, workers.ReportStatusDone, resp["status"])

	// Jobs still in flight never expose a link.
	pendingID := uuid.New().String()
	require.NoError(t, cache.SetWithTTL(t.Context(),
		redis_a.BuildKey(redis_a.PrefixReport, pendingID),
		workers.ReportStatus{JobID: pendingID, Status: workers.ReportStatusRunning}, time.Hour))

	req = httptest.NewRequest("GET", "/api/v1/reports/movements/"+pendingID, nil)
	req.SetPathValue("job_id", pendingID)
	w = httptest.NewRecorder()

	handler.Status(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	resp = map[string]interface{}{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotContains(t, resp, "download_url")
}

func TestReportHandler_Status_NotFound(t *testing.T) {
	handler, _, _ := newReportHandler(t)

	jobID := uuid.New().String()
	req := httptest.NewRequest("GET", "/api/v1/reports/movements/"+jobID, nil)
	req.SetPathValue("job_id", jobID)
	w := httptest.NewRecorder()

	handler.Status(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Report job not found", resp["error"])
}

func TestReportHandler_Status_InvalidID(t *testing.T) {
	handler, _, _ := newReportHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/reports/movements/not-a-uuid", nil)
	req.SetPathValue("job_id", "not-a-uuid")
	w := httptest.NewRecorder()

	handler.Status(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportRequest_KindValidation(t *testing.T) {
	// Enqueue rejects an unknown kind before touching the queue, so a nil
	// asynq client is safe here.
	handler, _, _ := newReportHandler(t)

	body := bytes.NewBufferString(`{"kind":"vehicles"}`)
	req := httptest.NewRequest("POST", "/api/v1/reports/movements", body)
	w := httptest.NewRecorder()

	handler.Enqueue(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
