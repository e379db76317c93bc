package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/tealeg/xlsx/v3"

	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
)

// ReportUploader archives generated reports, typically to S3.
type ReportUploader interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ReportProcessor handles TypeReportGenerate tasks: it snapshots the full
// item catalog into a spreadsheet or JSON document and archives it.
type ReportProcessor struct {
	service  ports.StoreService
	uploader ReportUploader
	cache    ports.CacheRepository
	logger   *slog.Logger
}

func NewReportProcessor(service ports.StoreService, uploader ReportUploader, cache ports.CacheRepository, logger *slog.Logger) *ReportProcessor {
	return &ReportProcessor{
		service:  service,
		uploader: uploader,
		cache:    cache,
		logger:   logger.With(slog.String("processor", "report")),
	}
}

func (p *ReportProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload ReportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshaling report payload: %v: %w", err, asynq.SkipRetry)
	}

	// Scheduler-enqueued tasks carry a static payload, so per-run fields
	// get filled in here.
	if payload.JobID == "" {
		payload.JobID = uuid.NewString()
	}
	if payload.RequestedAt.IsZero() {
		payload.RequestedAt = time.Now().UTC()
	}

	p.logger.InfoContext(ctx, "generating report",
		slog.String("job_id", payload.JobID),
		slog.String("format", payload.Format))

	p.setStatus(ctx, payload.JobID, func(s *JobStatus) {
		s.Status = JobStatusProcessing
	})

	items, err := p.collectItems(ctx)
	if err != nil {
		p.setStatus(ctx, payload.JobID, func(s *JobStatus) {
			now := time.Now().UTC()
			s.Status = JobStatusFailed
			s.Error = err.Error()
			s.CompletedAt = &now
		})
		return fmt.Errorf("collecting items for report: %w", err)
	}

	var (
		body        []byte
		contentType string
		ext         string
	)
	switch payload.Format {
	case "json":
		body, err = json.MarshalIndent(items, "", "  ")
		contentType = "application/json"
		ext = "json"
	default:
		body, err = buildWorkbook(items)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = "xlsx"
	}
	if err != nil {
		return fmt.Errorf("building %s report: %w", payload.Format, err)
	}

	key := fmt.Sprintf("reports/inventory-%s.%s", payload.RequestedAt.UTC().Format("20060102-150405"), ext)
	url, err := p.uploader.Upload(ctx, key, body, contentType)
	if err != nil {
		return fmt.Errorf("uploading report %s: %w", key, err)
	}

	p.setStatus(ctx, payload.JobID, func(s *JobStatus) {
		now := time.Now().UTC()
		s.Status = JobStatusCompleted
		s.ItemCount = len(items)
		s.ResultURL = url
		s.CompletedAt = &now
	})

	p.logger.InfoContext(ctx, "report archived",
		slog.String("job_id", payload.JobID),
		slog.String("key", key),
		slog.Int("items", len(items)))
	return nil
}

// collectItems pages through the catalog so very large stores do not get
// loaded in one query.
func (p *ReportProcessor) collectItems(ctx context.Context) ([]*domain.Item, error) {
	const pageSize = 500

	var items []*domain.Item
	for page := 1; ; page++ {
		result, err := p.service.ListItems(ctx, ports.ListParams{Page: page, PageSize: pageSize})
		if err != nil {
			return nil, err
		}
		items = append(items, result.Items...)
		if page >= result.TotalPages || len(result.Items) == 0 {
			break
		}
	}
	return items, nil
}

func buildWorkbook(items []*domain.Item) ([]byte, error) {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Inventory")
	if err != nil {
		return nil, fmt.Errorf("adding sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, col := range []string{"ID", "Name", "Price", "Quantity", "Created At", "Updated At"} {
		header.AddCell().SetString(col)
	}

	for _, item := range items {
		row := sheet.AddRow()
		row.AddCell().SetString(item.ID.String())
		row.AddCell().SetString(item.Name)
		row.AddCell().SetString(item.Price.StringFixed(2))
		row.AddCell().SetInt64(item.Quantity)
		row.AddCell().SetString(item.CreatedAt.UTC().Format(time.RFC3339))
		row.AddCell().SetString(item.UpdatedAt.UTC().Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (p *ReportProcessor) setStatus(ctx context.Context, jobID string, mutate func(*JobStatus)) {
	key := JobStatusKey(jobID)

	status := JobStatus{JobID: jobID, Type: TypeReportGenerate, CreatedAt: time.Now().UTC()}
	var existing JobStatus
	if err := p.cache.Get(ctx, key, &existing); err == nil {
		status = existing
	}
	mutate(&status)

	if err := p.cache.SetWithTTL(ctx, key, status, JobStatusTTL); err != nil {
		p.logger.ErrorContext(ctx, "updating job status",
			slog.String("job_id", jobID), slog.Any("error", err))
	}
}
