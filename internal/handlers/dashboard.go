// internal/handlers/dashboard.go
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Fatush13/simplestore/internal/adapters/db"
	redis_a "github.com/Fatush13/simplestore/internal/adapters/redis_adapter"
	"github.com/Fatush13/simplestore/internal/core/ports"
)

// DashboardHandler serves aggregated store statistics
type DashboardHandler struct {
	db     *db.Database
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(database *db.Database, cache ports.CacheRepository, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		db:     database,
		cache:  cache,
		logger: logger.With(slog.String("handler", "dashboard")),
	}
}

// DashboardData is the aggregated store snapshot
type DashboardData struct {
	TotalItems     int64           `json:"total_items"`
	TotalStock     int64           `json:"total_stock"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	TotalSales     int64           `json:"total_sales"`
	UnitsSold      int64           `json:"units_sold"`
	SalesLast24h   int64           `json:"sales_last_24h"`
	LowStockItems  []LowStockItem  `json:"low_stock_items"`
	Timestamp      time.Time       `json:"timestamp"`
}

// LowStockItem is a dashboard row for an item running out
type LowStockItem struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// GetDashboard handles GET /api/v1/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cacheKey := redis_a.BuildKey(redis_a.PrefixDashboard, "main")
	var dashboard DashboardData

	err := h.cache.GetOrSet(ctx, cacheKey, &dashboard, func() (interface{}, error) {
		return h.loadDashboardData(ctx)
	}, 5*time.Minute)

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load dashboard",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	h.respondJSON(w, http.StatusOK, dashboard)
}

func (h *DashboardHandler) loadDashboardData(ctx context.Context) (*DashboardData, error) {
	dashboard := &DashboardData{
		Timestamp:      time.Now().UTC(),
		InventoryValue: decimal.Zero,
	}

	summaryQuery := `
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity), 0),
			COALESCE(SUM(price * quantity), 0)
		FROM items
		WHERE NOT deleted`

	err := h.db.QueryRow(ctx, summaryQuery).Scan(
		&dashboard.TotalItems,
		&dashboard.TotalStock,
		&dashboard.InventoryValue,
	)
	if err != nil {
		return nil, err
	}

	salesQuery := `
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity_sold), 0),
			COUNT(*) FILTER (WHERE sold_at > now() - interval '24 hours')
		FROM sales`

	err = h.db.QueryRow(ctx, salesQuery).Scan(
		&dashboard.TotalSales,
		&dashboard.UnitsSold,
		&dashboard.SalesLast24h,
	)
	if err != nil {
		return nil, err
	}

	lowStockQuery := `
		SELECT id, name, quantity
		FROM items
		WHERE NOT deleted AND quantity <= 5
		ORDER BY quantity ASC, name ASC
		LIMIT 10`

	rows, err := h.db.Query(ctx, lowStockQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row LowStockItem
		if err := rows.Scan(&row.ItemID, &row.Name, &row.Quantity); err != nil {
			return nil, err
		}
		dashboard.LowStockItems = append(dashboard.LowStockItems, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return dashboard, nil
}

func (h *DashboardHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *DashboardHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
