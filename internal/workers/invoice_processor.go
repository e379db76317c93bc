package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/hibiken/asynq"
	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
)

// invoiceLineRe matches supplier invoice lines of the form:
//
//	Widget Deluxe    12 x $4.99
//	Gadget           3 @ 10.50
var invoiceLineRe = regexp.MustCompile(`^(.+?)\s{2,}(\d+)\s*[x@]\s*\$?(\d+(?:,\d{3})*(?:\.\d{1,2})?)\s*$`)

// InvoiceProcessor handles TypeInvoiceImport tasks: it parses an uploaded
// supplier invoice PDF into line items and loads them into the store.
type InvoiceProcessor struct {
	service ports.StoreService
	cache   ports.CacheRepository
	logger  *slog.Logger
}

func NewInvoiceProcessor(service ports.StoreService, cache ports.CacheRepository, logger *slog.Logger) *InvoiceProcessor {
	return &InvoiceProcessor{
		service: service,
		cache:   cache,
		logger:  logger.With(slog.String("processor", "invoice")),
	}
}

func (p *InvoiceProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload InvoiceJobPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshaling invoice payload: %v: %w", err, asynq.SkipRetry)
	}

	p.logger.InfoContext(ctx, "processing invoice",
		slog.String("job_id", payload.JobID),
		slog.String("filename", payload.Filename))

	p.updateStatus(ctx, payload.JobID, func(s *JobStatus) {
		s.Status = JobStatusProcessing
	})

	items, err := p.extractItems(payload.FilePath)
	if err != nil {
		p.failJob(ctx, payload, fmt.Sprintf("extracting items: %v", err))
		// A malformed PDF will not get better on retry.
		return fmt.Errorf("extracting items from %s: %v: %w", payload.Filename, err, asynq.SkipRetry)
	}

	if len(items) == 0 {
		p.failJob(ctx, payload, "no line items found in invoice")
		return fmt.Errorf("no line items found in %s: %w", payload.Filename, asynq.SkipRetry)
	}

	if err := p.service.AddItems(ctx, items); err != nil {
		p.failJob(ctx, payload, fmt.Sprintf("saving items: %v", err))
		return fmt.Errorf("saving %d invoice items: %w", len(items), err)
	}

	p.updateStatus(ctx, payload.JobID, func(s *JobStatus) {
		now := time.Now().UTC()
		s.Status = JobStatusCompleted
		s.ItemCount = len(items)
		s.CompletedAt = &now
	})

	if err := os.Remove(payload.FilePath); err != nil && !os.IsNotExist(err) {
		p.logger.WarnContext(ctx, "failed to remove processed invoice",
			slog.String("path", payload.FilePath), slog.Any("error", err))
	}

	p.logger.InfoContext(ctx, "invoice processed",
		slog.String("job_id", payload.JobID),
		slog.Int("items", len(items)))
	return nil
}

func (p *InvoiceProcessor) extractItems(path string) ([]domain.Item, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var text strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", pageNum, err)
		}
		text.WriteString(content)
		text.WriteString("\n")
	}

	return parseInvoiceText(text.String())
}

func parseInvoiceText(text string) ([]domain.Item, error) {
	var items []domain.Item
	for _, line := range strings.Split(text, "\n") {
		m := invoiceLineRe.FindStringSubmatch(strings.TrimRight(line, " \t"))
		if m == nil {
			continue
		}

		quantity, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || quantity <= 0 {
			continue
		}

		price, err := decimal.NewFromString(strings.ReplaceAll(m[3], ",", ""))
		if err != nil {
			continue
		}

		item := domain.Item{
			Name:     strings.TrimSpace(m[1]),
			Price:    price,
			Quantity: quantity,
		}
		if err := item.Validate(); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *InvoiceProcessor) failJob(ctx context.Context, payload InvoiceJobPayload, msg string) {
	p.updateStatus(ctx, payload.JobID, func(s *JobStatus) {
		now := time.Now().UTC()
		s.Status = JobStatusFailed
		s.Error = msg
		s.CompletedAt = &now
	})
	if err := os.Remove(payload.FilePath); err != nil && !os.IsNotExist(err) {
		p.logger.WarnContext(ctx, "failed to remove invoice after failure",
			slog.String("path", payload.FilePath), slog.Any("error", err))
	}
}

func (p *InvoiceProcessor) updateStatus(ctx context.Context, jobID string, mutate func(*JobStatus)) {
	key := JobStatusKey(jobID)

	status := JobStatus{JobID: jobID, Type: TypeInvoiceImport, CreatedAt: time.Now().UTC()}
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
