package workers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
	"github.com/Fatush13/simplestore/test/mocks"
)

// fakeUploader captures what the processor archives.
type fakeUploader struct {
	key         string
	body        []byte
	contentType string
	err         error
}

func (u *fakeUploader) Upload(_ context.Context, key string, body []byte, contentType string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.key = key
	u.body = body
	u.contentType = contentType
	return "file:///archive/" + key, nil
}

func reportTestItems() []*domain.Item {
	now := time.Now().UTC()
	return []*domain.Item{
		{ID: uuid.New(), Name: "Ceramic Mug", Price: decimal.RequireFromString("12.50"), Quantity: 10, CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), Name: "Oak Shelf", Price: decimal.RequireFromString("89.00"), Quantity: 2, CreatedAt: now, UpdatedAt: now},
	}
}

func TestReportProcessor_ProcessTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockStoreService(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	uploader := &fakeUploader{}
	processor := NewReportProcessor(service, uploader, cache, slog.New(slog.DiscardHandler))

	service.EXPECT().
		ListItems(gomock.Any(), gomock.Any()).
		Return(&ports.ItemPage{Items: reportTestItems(), Page: 1, TotalCount: 2, TotalPages: 1}, nil)

	var statuses []JobStatus
	cache.EXPECT().Get(gomock.Any(), "job:report-1", gomock.Any()).
		Return(errors.New("cache miss")).AnyTimes()
	cache.EXPECT().SetWithTTL(gomock.Any(), "job:report-1", gomock.Any(), JobStatusTTL).
		DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) error {
			statuses = append(statuses, value.(JobStatus))
			return nil
		}).Times(2)

	payload, err := json.Marshal(ReportPayload{
		JobID:       "report-1",
		Format:      "xlsx",
		RequestedAt: time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	err = processor.ProcessTask(context.Background(), asynq.NewTask(TypeReportGenerate, payload))
	require.NoError(t, err)

	assert.Equal(t, "reports/inventory-20260830-060000.xlsx", uploader.key)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", uploader.contentType)
	assert.NotEmpty(t, uploader.body)

	require.Len(t, statuses, 2)
	assert.Equal(t, JobStatusProcessing, statuses[0].Status)
	assert.Equal(t, JobStatusCompleted, statuses[1].Status)
	assert.Equal(t, 2, statuses[1].ItemCount)
	assert.Equal(t, "file:///archive/"+uploader.key, statuses[1].ResultURL)
	require.NotNil(t, statuses[1].CompletedAt)
}

// Scheduler entries carry a static payload; the processor assigns the
// per-run job ID and timestamp itself.
func TestReportProcessor_ProcessTask_SchedulerPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockStoreService(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	uploader := &fakeUploader{}
	processor := NewReportProcessor(service, uploader, cache, slog.New(slog.DiscardHandler))

	service.EXPECT().
		ListItems(gomock.Any(), gomock.Any()).
		Return(&ports.ItemPage{Items: reportTestItems(), Page: 1, TotalCount: 2, TotalPages: 1}, nil)

	var statusKeys []string
	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).AnyTimes()
	cache.EXPECT().SetWithTTL(gomock.Any(), gomock.Any(), gomock.Any(), JobStatusTTL).
		DoAndReturn(func(_ context.Context, key string, _ interface{}, _ time.Duration) error {
			statusKeys = append(statusKeys, key)
			return nil
		}).Times(2)

	err := processor.ProcessTask(context.Background(),
		asynq.NewTask(TypeReportGenerate, []byte(`{"format":"json"}`)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uploader.key, "reports/inventory-"))
	assert.True(t, strings.HasSuffix(uploader.key, ".json"))
	assert.Equal(t, "application/json", uploader.contentType)

	var archived []*domain.Item
	require.NoError(t, json.Unmarshal(uploader.body, &archived))
	assert.Len(t, archived, 2)

	require.Len(t, statusKeys, 2)
	assert.True(t, strings.HasPrefix(statusKeys[0], "job:"))
	assert.NotEqual(t, "job:", statusKeys[0])
	assert.Equal(t, statusKeys[0], statusKeys[1])
}

func TestReportProcessor_ProcessTask_CollectFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockStoreService(ctrl)
	cache := mocks.NewMockCacheRepository(ctrl)
	processor := NewReportProcessor(service, &fakeUploader{}, cache, slog.New(slog.DiscardHandler))

	service.EXPECT().
		ListItems(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	var statuses []JobStatus
	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).AnyTimes()
	cache.EXPECT().SetWithTTL(gomock.Any(), gomock.Any(), gomock.Any(), JobStatusTTL).
		DoAndReturn(func(_ context.Context, _ string, value interface{}, _ time.Duration) error {
			statuses = append(statuses, value.(JobStatus))
			return nil
		}).Times(2)

	err := processor.ProcessTask(context.Background(),
		asynq.NewTask(TypeReportGenerate, []byte(`{"job_id":"report-2","format":"xlsx"}`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collecting items")

	require.Len(t, statuses, 2)
	assert.Equal(t, JobStatusFailed, statuses[1].Status)
	assert.Contains(t, statuses[1].Error, "connection refused")
}
