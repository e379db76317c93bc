// internal/handlers/store.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
)

// StoreHandler handles store item and sale HTTP requests
type StoreHandler struct {
	service ports.StoreService
	logger  *slog.Logger
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(service ports.StoreService, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "store")),
	}
}

// CreateItem handles POST /api/v1/store/item
func (h *StoreHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := req.ToDomain()
	if err := h.service.AddItem(ctx, item); err != nil {
		h.logger.ErrorContext(ctx, "failed to create item",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to create item")
		return
	}

	h.respondJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/v1/store/item/{itemId}
func (h *StoreHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	var req ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	item := req.ToDomain()
	if err := h.service.UpdateItem(ctx, itemID, item); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			h.respondError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to update item",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to update item")
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/store/item/{itemId}
func (h *StoreHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteItem(ctx, itemID); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			h.respondError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete item",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to delete item")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{
		"message": "Item deleted",
		"item_id": itemID.String(),
	})
}

// GetItem handles GET /api/v1/store/item/{itemId}
func (h *StoreHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	item, err := h.service.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			h.respondError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get item",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve item")
		return
	}

	h.respondJSON(w, http.StatusOK, item)
}

// ListItems handles GET /api/v1/store/items
func (h *StoreHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.service.ListItems(ctx, h.parseListParams(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list items",
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list items")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// SellItem handles POST /api/v1/store/item/{itemId}/sale
func (h *StoreHandler) SellItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	quantity, err := parseSellQuantity(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.SellItem(ctx, itemID, quantity); err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			h.respondError(w, http.StatusNotFound, "Item not found")
		case errors.Is(err, domain.ErrInsufficientStock):
			h.respondError(w, http.StatusBadRequest, "Insufficient stock")
		default:
			h.logger.ErrorContext(ctx, "failed to sell item",
				slog.String("item_id", itemID.String()),
				slog.Int64("quantity", quantity),
				slog.String("error", err.Error()))
			h.respondError(w, http.StatusInternalServerError, "Failed to sell item")
		}
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Sale recorded",
		"item_id":  itemID.String(),
		"quantity": quantity,
	})
}

// GetSoldItems handles GET /api/v1/store/item/{itemId}/sales
func (h *StoreHandler) GetSoldItems(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetSoldItems(ctx, itemID, h.parseListParams(r))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list sales",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to list sales")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetTotalSold handles GET /api/v1/store/item/{itemId}/sales/total
func (h *StoreHandler) GetTotalSold(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	total, err := h.service.GetTotalSold(ctx, itemID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get total sold",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to compute total sold")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"item_id":    itemID.String(),
		"total_sold": total,
	})
}

// GetStock handles GET /api/v1/store/item/{itemId}/stock
func (h *StoreHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, ok := h.parseItemID(w, r)
	if !ok {
		return
	}

	quantity, err := h.service.GetStockQuantity(ctx, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			h.respondError(w, http.StatusNotFound, "Item not found")
			return
		}
		h.logger.ErrorContext(ctx, "failed to get stock",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve stock")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"item_id":  itemID.String(),
		"quantity": quantity,
	})
}

// parseItemID extracts and validates the {itemId} path value. On failure it
// writes the 400 response and returns ok=false.
func (h *StoreHandler) parseItemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	itemID, err := uuid.Parse(r.PathValue("itemId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid item ID format")
		return uuid.Nil, false
	}
	return itemID, true
}

func parseSellQuantity(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("quantity")
	if raw == "" {
		return 0, fmt.Errorf("quantity query parameter is required")
	}
	quantity, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("quantity must be an integer")
	}
	if quantity <= 0 {
		return 0, fmt.Errorf("quantity must be positive")
	}
	return quantity, nil
}

// parseListParams parses pagination query parameters
func (h *StoreHandler) parseListParams(r *http.Request) ports.ListParams {
	params := ports.ListParams{
		Page:      1,
		PageSize:  50,
		SortBy:    "created_at",
		SortOrder: "desc",
	}

	if page := r.URL.Query().Get("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil && p > 0 {
			params.Page = p
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil && l > 0 {
			params.PageSize = l
		}
	}

	if sortBy := r.URL.Query().Get("sort"); sortBy != "" {
		params.SortBy = sortBy
	}
	if order := r.URL.Query().Get("order"); order == "asc" || order == "desc" {
		params.SortOrder = order
	}

	return params
}

// Helper methods

func (h *StoreHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *StoreHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{
		"error":     message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Request/Response DTOs

// ItemRequest is the request body for creating or updating an item
type ItemRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

// Validate validates the item request
func (r *ItemRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > domain.MaxItemNameLength {
		return fmt.Errorf("name must be at most %d characters", domain.MaxItemNameLength)
	}
	if r.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if r.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

// ToDomain converts the request to a domain model
func (r *ItemRequest) ToDomain() *domain.Item {
	return &domain.Item{
		Name:     strings.TrimSpace(r.Name),
		Price:    r.Price,
		Quantity: r.Quantity,
	}
}
