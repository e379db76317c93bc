// internal/handlers/import.go
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	redis_a "github.com/Fatush13/simplestore/internal/adapters/redis_adapter"
	"github.com/Fatush13/simplestore/internal/core/ports"
	"github.com/Fatush13/simplestore/internal/workers"
)

// ImportHandler handles supplier invoice imports
type ImportHandler struct {
	tasks       ports.TaskEnqueuer
	cache       ports.CacheRepository
	logger      *slog.Logger
	maxFileSize int64
	uploadDir   string
}

// NewImportHandler creates a new import handler
func NewImportHandler(tasks ports.TaskEnqueuer, cache ports.CacheRepository, logger *slog.Logger, maxFileSize int64, uploadDir string) *ImportHandler {
	return &ImportHandler{
		tasks:       tasks,
		cache:       cache,
		logger:      logger.With(slog.String("handler", "import")),
		maxFileSize: maxFileSize,
		uploadDir:   uploadDir,
	}
}

// ImportInvoice handles POST /api/v1/store/import/invoice
func (h *ImportHandler) ImportInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if header.Header.Get("Content-Type") != "application/pdf" {
		h.respondError(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.logger.ErrorContext(ctx, "failed to create upload directory",
			slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Failed to prepare upload")
		return
	}

	tempFile := filepath.Join(h.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), header.Filename))
	dst, err := os.Create(tempFile)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to create temp file",
			slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to save file",
			slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Failed to save upload")
		return
	}

	jobID := uuid.New().String()

	// Seed the status record so a fast poll never sees an unknown job.
	status := workers.JobStatus{
		JobID:     jobID,
		Type:      workers.TypeInvoiceImport,
		Status:    workers.JobStatusPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.cache.SetWithTTL(ctx, workers.JobStatusKey(jobID), status, workers.JobStatusTTL); err != nil {
		h.logger.WarnContext(ctx, "failed to seed job status",
			slog.String("job_id", jobID),
			slog.Any("error", err))
	}

	payload := workers.InvoiceJobPayload{
		JobID:    jobID,
		FilePath: tempFile,
		Filename: header.Filename,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		os.Remove(tempFile)
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	task := asynq.NewTask(workers.TypeInvoiceImport, b)
	info, err := h.tasks.EnqueueContext(ctx, task,
		asynq.Queue(workers.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Retention(24*time.Hour))
	if err != nil {
		os.Remove(tempFile)
		h.logger.ErrorContext(ctx, "failed to enqueue task",
			slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Failed to queue import job")
		return
	}

	h.logger.InfoContext(ctx, "invoice import queued",
		slog.String("job_id", jobID),
		slog.String("task_id", info.ID),
		slog.String("filename", header.Filename))

	h.respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job_id":  jobID,
		"status":  workers.JobStatusPending,
		"message": "Invoice import has been queued for processing",
	})
}

// ImportStatus handles GET /api/v1/store/import/status/{jobId}
func (h *ImportHandler) ImportStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	jobID := r.PathValue("jobId")

	if _, err := uuid.Parse(jobID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid job ID format")
		return
	}

	var status workers.JobStatus
	err := h.cache.Get(ctx, workers.JobStatusKey(jobID), &status)
	if err != nil {
		if err == redis_a.ErrCacheMiss {
			h.respondError(w, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to load job status",
			slog.String("job_id", jobID),
			slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "Failed to load job status")
		return
	}

	h.respondJSON(w, http.StatusOK, status)
}

func (h *ImportHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *ImportHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
