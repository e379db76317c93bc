// internal/handlers/export.go
package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tealeg/xlsx/v3"

	redis_a "github.com/Fatush13/simplestore/internal/adapters/redis_adapter"
	"github.com/Fatush13/simplestore/internal/core/ports"
)

// ExportParams defines parameters for export operations
type ExportParams struct {
	IncludeDeleted bool `json:"include_deleted"`
}

// ExportRow is one catalog row joined with its lifetime sales
type ExportRow struct {
	ItemID    string    `json:"item_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Quantity  int64     `json:"quantity"`
	TotalSold int64     `json:"total_sold"`
	Deleted   bool      `json:"deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONExportResponse is the JSON export envelope
type JSONExportResponse struct {
	Items    []ExportRow    `json:"items"`
	Metadata ExportMetadata `json:"metadata"`
}

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportDate     time.Time `json:"export_date"`
	TotalItems     int       `json:"total_items"`
	IncludeDeleted bool      `json:"include_deleted"`
}

// ExportHandler handles export operations
type ExportHandler struct {
	db     ports.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(database ports.Database, cache ports.CacheRepository, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		db:     database,
		cache:  cache,
		logger: logger.With(slog.String("handler", "export")),
	}
}

// ExportExcel handles GET /api/v1/store/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := h.parseExportParams(r)

	data, err := h.getExportData(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve export data",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	excelData, err := h.generateExcelFile(data)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to generate Excel file")
		return
	}

	filename := fmt.Sprintf("store_export_%s.xlsx", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(excelData)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(excelData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.Int("total_rows", len(data)),
		slog.String("filename", filename))
}

// ExportJSON handles GET /api/v1/store/export/json
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := h.parseExportParams(r)

	cacheKey := redis_a.BuildKey(redis_a.PrefixExport, "json", strconv.FormatBool(params.IncludeDeleted))
	var cachedData []byte
	if err := h.cache.Get(ctx, cacheKey, &cachedData); err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Cache", "HIT")
		w.Header().Set("Content-Length", strconv.Itoa(len(cachedData)))

		if _, err := w.Write(cachedData); err != nil {
			h.logger.ErrorContext(ctx, "failed to write cached JSON response",
				slog.String("error", err.Error()))
		}
		return
	}

	data, err := h.getExportData(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to retrieve export data",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve data")
		return
	}

	response := JSONExportResponse{
		Items: data,
		Metadata: ExportMetadata{
			ExportDate:     time.Now().UTC(),
			TotalItems:     len(data),
			IncludeDeleted: params.IncludeDeleted,
		},
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to generate JSON")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Length", strconv.Itoa(len(responseData)))

	if _, err := w.Write(responseData); err != nil {
		h.logger.ErrorContext(ctx, "failed to write JSON response",
			slog.String("error", err.Error()))
		return
	}

	// Cache the rendered payload off the request path.
	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := h.cache.SetWithTTL(cacheCtx, cacheKey, responseData, 5*time.Minute); err != nil {
			h.logger.WarnContext(cacheCtx, "failed to cache JSON export",
				slog.String("error", err.Error()))
		}
	}()

	h.logger.InfoContext(ctx, "JSON export completed",
		slog.Int("total_rows", len(data)))
}

// Helper methods

func (h *ExportHandler) parseExportParams(r *http.Request) *ExportParams {
	return &ExportParams{
		IncludeDeleted: r.URL.Query().Get("include_deleted") == "true",
	}
}

// getExportData retrieves the full catalog joined with lifetime sales
func (h *ExportHandler) getExportData(ctx context.Context, params *ExportParams) ([]ExportRow, error) {
	query := `
		SELECT
			i.id, i.name, i.price::text, i.quantity,
			COALESCE(SUM(s.quantity_sold), 0) AS total_sold,
			i.deleted, i.created_at, i.updated_at
		FROM items i
		LEFT JOIN sales s ON s.item_id = i.id`
	if !params.IncludeDeleted {
		query += `
		WHERE NOT i.deleted`
	}
	query += `
		GROUP BY i.id
		ORDER BY i.created_at ASC`

	rows, err := h.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query export data: %w", err)
	}
	defer rows.Close()

	var data []ExportRow
	for rows.Next() {
		var row ExportRow
		if err := rows.Scan(
			&row.ItemID, &row.Name, &row.Price, &row.Quantity,
			&row.TotalSold, &row.Deleted, &row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan export row: %w", err)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating export rows: %w", err)
	}

	return data, nil
}

// generateExcelFile renders export rows into a workbook
func (h *ExportHandler) generateExcelFile(data []ExportRow) ([]byte, error) {
	wb := xlsx.NewFile()
	sheet, err := wb.AddSheet("Store")
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, col := range []string{"ID", "Name", "Price", "Quantity", "Total Sold", "Deleted", "Created At", "Updated At"} {
		header.AddCell().SetString(col)
	}

	for _, row := range data {
		r := sheet.AddRow()
		r.AddCell().SetString(row.ItemID)
		r.AddCell().SetString(row.Name)
		r.AddCell().SetString(row.Price)
		r.AddCell().SetInt64(row.Quantity)
		r.AddCell().SetInt64(row.TotalSold)
		r.AddCell().SetBool(row.Deleted)
		r.AddCell().SetString(row.CreatedAt.UTC().Format(time.RFC3339))
		r.AddCell().SetString(row.UpdatedAt.UTC().Format(time.RFC3339))
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func (h *ExportHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *ExportHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
