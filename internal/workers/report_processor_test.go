// internal/workers/report_processor_test.go
package workers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"
	"go.uber.org/mock/gomock"

	redis_a "github.com/Sheimsito/picm-server/internal/adapters/redis_adapter"
	"github.com/Sheimsito/picm-server/internal/core/domain"
	"github.com/Sheimsito/picm-server/internal/core/ports"
	"github.com/Sheimsito/picm-server/internal/workers"
	"github.com/Sheimsito/picm-server/test/helpers"
	"github.com/Sheimsito/picm-server/test/mocks"
)

// fakeStorage records uploads in memory; the S3 client itself is covered by
// the storage adapter's own tests.
type fakeStorage struct {
	uploads map[string][]byte
	err     error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, key string, data io.Reader, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return "", err
	}
	f.uploads[key] = b
	return "s3://test-bucket/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	delete(f.uploads, key)
	return nil
}

func (f *fakeStorage) List(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range f.uploads {
		keys = append(keys, k)
	}
	return keys, nil
}

func (f *fakeStorage) Presign(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://test-bucket/" + key, nil
}

func setupReportTest(t *testing.T) (*mocks.MockMovementRepository, *fakeStorage, ports.CacheRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ctrl := gomock.NewController(t)
	movements := mocks.NewMockMovementRepository(ctrl)
	cache := redis_a.NewCache(client, time.Hour, helpers.TestLogger())

	return movements, newFakeStorage(), cache
}

func TestReportProcessor_ProcessReportMovements(t *testing.T) {
	movements, store, cache := setupReportTest(t)

	rows := []*domain.Movement{
		helpers.CreateTestMovement(),
		helpers.CreateTestMovement(func(m *domain.Movement) {
			m.MovementType = domain.ProductExit
		}),
	}

	movements.EXPECT().
		FindAll(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ interface{}, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
			assert.Equal(t, domain.KindProduct, filter.Kind)
			assert.Equal(t, 500, filter.PageSize)
			return &ports.EntityPage[domain.Movement]{Items: rows, TotalCount: 2}, nil
		})

	processor := workers.NewReportProcessor(movements, store, cache, nil, helpers.TestLogger())

	jobID := uuid.New().String()
	payload := workers.ReportMovementsPayload{
		JobID:       jobID,
		RequestedBy: "admin",
		Filter:      workers.ReportMovementsFilter{Kind: "products"},
	}
	task, err := workers.NewReportMovementsTask(payload)
	require.NoError(t, err)

	err = processor.ProcessReportMovements(context.Background(), task)
	require.NoError(t, err)

	require.Len(t, store.uploads, 1)

	var status workers.ReportStatus
	require.NoError(t, cache.Get(context.Background(),
		redis_a.BuildKey(redis_a.PrefixReport, jobID), &status))
	assert.Equal(t, workers.ReportStatusDone, status.Status)
	assert.Equal(t, 2, status.Rows)
	assert.NotEmpty(t, status.Key)
	assert.NotEmpty(t, status.Location)
	require.NotNil(t, status.FinishedAt)
}

func TestReportProcessor_RepositoryFailure(t *testing.T) {
	movements, store, cache := setupReportTest(t)

	movements.EXPECT().
		FindAll(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	processor := workers.NewReportProcessor(movements, store, cache, nil, helpers.TestLogger())

	jobID := uuid.New().String()
	task, err := workers.NewReportMovementsTask(workers.ReportMovementsPayload{JobID: jobID})
	require.NoError(t, err)

	err = processor.ProcessReportMovements(context.Background(), task)
	require.Error(t, err)

	var status workers.ReportStatus
	require.NoError(t, cache.Get(context.Background(),
		redis_a.BuildKey(redis_a.PrefixReport, jobID), &status))
	assert.Equal(t, workers.ReportStatusFailed, status.Status)
	assert.Contains(t, status.Error, "connection reset")
	assert.Empty(t, store.uploads)
}

func TestReportProcessor_PagesUntilExhausted(t *testing.T) {
	movements, store, cache := setupReportTest(t)

	fullPage := make([]*domain.Movement, 500)
	for i := range fullPage {
		fullPage[i] = helpers.CreateTestMovement()
	}
	lastPage := []*domain.Movement{helpers.CreateTestMovement()}

	gomock.InOrder(
		movements.EXPECT().
			FindAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
				assert.Equal(t, 1, filter.Page)
				return &ports.EntityPage[domain.Movement]{Items: fullPage, TotalCount: 501}, nil
			}),
		movements.EXPECT().
			FindAll(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ interface{}, filter ports.MovementFilter) (*ports.EntityPage[domain.Movement], error) {
				assert.Equal(t, 2, filter.Page)
				return &ports.EntityPage[domain.Movement]{Items: lastPage, TotalCount: 501}, nil
			}),
	)

	processor := workers.NewReportProcessor(movements, store, cache, nil, helpers.TestLogger())

	jobID := uuid.New().String()
	task, err := workers.NewReportMovementsTask(workers.ReportMovementsPayload{JobID: jobID})
	require.NoError(t, err)

	require.NoError(t, processor.ProcessReportMovements(context.Background(), task))

	var status workers.ReportStatus
	require.NoError(t, cache.Get(context.Background(),
		redis_a.BuildKey(redis_a.PrefixReport, jobID), &status))
	assert.Equal(t, 501, status.Rows)
}

func TestBuildMovementsWorkbook(t *testing.T) {
	rows := []*domain.Movement{
		helpers.CreateTestMovement(func(m *domain.Movement) {
			m.EntityName = "Agua pura 600ml"
			m.Comment = "reposición"
		}),
		helpers.CreateTestMovement(func(m *domain.Movement) {
			m.EntityKind = domain.KindSupply
			m.MovementType = domain.SupplyDecrease
			m.EntityName = "Bolsas"
		}),
	}

	data, err := workers.BuildMovementsWorkbook(rows)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Movements", sheet.Name)
	// Header plus one row per movement.
	assert.Equal(t, 3, sheet.MaxRow)

	header, err := sheet.Row(0)
	require.NoError(t, err)
	assert.Equal(t, "ID", header.GetCell(0).Value)
	assert.Equal(t, "Entity", header.GetCell(2).Value)

	first, err := sheet.Row(1)
	require.NoError(t, err)
	assert.Equal(t, "Agua pura 600ml", first.GetCell(2).Value)
	assert.Equal(t, "Entrada", first.GetCell(3).Value)

	second, err := sheet.Row(2)
	require.NoError(t, err)
	assert.Equal(t, "supply", second.GetCell(1).Value)
	assert.Equal(t, "Disminución", second.GetCell(3).Value)
}

func TestReportMovementsFilter_ToMovementFilter(t *testing.T) {
	from := time.Now().UTC().AddDate(0, 0, -7)

	filter := workers.ReportMovementsFilter{
		Kind:     "productos",
		Search:   "agua",
		DateFrom: &from,
	}.ToMovementFilter()

	assert.Equal(t, domain.KindProduct, filter.Kind)
	assert.Equal(t, "agua", filter.Search)
	require.NotNil(t, filter.DateFrom)

	// An unknown kind serialization leaves the filter spanning both ledgers.
	open := workers.ReportMovementsFilter{Kind: "warehouses"}.ToMovementFilter()
	assert.Equal(t, domain.EntityKind(""), open.Kind)
}

func TestNewReportMovementsTask(t *testing.T) {
	payload := workers.ReportMovementsPayload{JobID: uuid.New().String(), RequestedBy: "admin"}

	task, err := workers.NewReportMovementsTask(payload)
	require.NoError(t, err)
	assert.Equal(t, workers.TypeReportMovements, task.Type())

	var decoded workers.ReportMovementsPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, payload.JobID, decoded.JobID)
}
