package workers

import "time"

const (
	// TypeInvoiceImport processes an uploaded supplier invoice PDF and
	// loads the parsed line items into the store.
	TypeInvoiceImport = "invoice:import"

	// TypeReportGenerate builds an inventory report and archives it to S3.
	TypeReportGenerate = "report:generate"

	// TypeLowStockAlert notifies operators when an item's remaining stock
	// drops to or below the configured threshold after a sale.
	TypeLowStockAlert = "stock:low_alert"
)

const (
	QueueDefault  = "default"
	QueueCritical = "critical"
	QueueLow      = "low"
)

// InvoiceJobPayload is the payload for TypeInvoiceImport tasks.
type InvoiceJobPayload struct {
	JobID      string `json:"job_id"`
	FilePath   string `json:"file_path"`
	Filename   string `json:"filename"`
	UploadedBy string `json:"uploaded_by,omitempty"`
}

// ReportPayload is the payload for TypeReportGenerate tasks.
type ReportPayload struct {
	JobID       string    `json:"job_id"`
	Format      string    `json:"format"` // "xlsx" or "json"
	RequestedAt time.Time `json:"requested_at"`
}

// LowStockPayload is the payload for TypeLowStockAlert tasks.
type LowStockPayload struct {
	ItemID    string `json:"item_id"`
	Remaining int64  `json:"remaining"`
}

// JobStatus is the cached state of an asynchronous job, keyed by
// "job:<id>" in Redis so handlers can poll for progress.
type JobStatus struct {
	JobID       string     `json:"job_id"`
	Type        string     `json:"type"`
	Status      string     `json:"status"` // pending, processing, completed, failed
	ItemCount   int        `json:"item_count,omitempty"`
	ResultURL   string     `json:"result_url,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// JobStatusKey returns the cache key for a job's status record.
func JobStatusKey(jobID string) string {
	return "job:" + jobID
}

// JobStatusTTL bounds how long finished job records linger in the cache.
const JobStatusTTL = 24 * time.Hour
