// internal/core/services/store.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"

	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
	"github.com/Fatush13/simplestore/internal/workers"
)

const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

// Transactor runs a function inside a database transaction. The concrete
// implementation is the pgx database adapter.
type Transactor interface {
	Transaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// StoreService is the single writer of item stock. All mutations funnel
// through it; the repositories underneath are plain CRUD collections.
type StoreService struct {
	items             ports.ItemRepository
	sales             ports.SaleRepository
	db                Transactor
	tasks             ports.TaskEnqueuer
	lowStockThreshold int64
	logger            *slog.Logger
}

// Statically assert that *StoreService implements the StoreService port.
var _ ports.StoreService = (*StoreService)(nil)

// NewStoreService creates a new store service. tasks may be nil, in which
// case low-stock notifications are disabled.
func NewStoreService(items ports.ItemRepository, sales ports.SaleRepository, db Transactor,
	tasks ports.TaskEnqueuer, lowStockThreshold int64, logger *slog.Logger) *StoreService {
	return &StoreService{
		items:             items,
		sales:             sales,
		db:                db,
		tasks:             tasks,
		lowStockThreshold: lowStockThreshold,
		logger:            logger.With(slog.String("service", "store")),
	}
}

// AddItem creates a new catalog item.
func (s *StoreService) AddItem(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	item.PrepareForStorage()
	item.Deleted = false

	if err := s.items.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.InfoContext(ctx, "item added",
		slog.String("item_id", item.ID.String()),
		slog.String("name", item.Name),
		slog.Int64("quantity", item.Quantity))

	return nil
}

// AddItems creates multiple catalog items in one batch.
func (s *StoreService) AddItems(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		s.logger.InfoContext(ctx, "no items to add")
		return nil
	}

	for i := range items {
		if err := items[i].Validate(); err != nil {
			return fmt.Errorf("validation failed for item %q: %w", items[i].Name, err)
		}
		items[i].PrepareForStorage()
		items[i].Deleted = false
	}

	if err := s.items.SaveBatch(ctx, items); err != nil {
		return fmt.Errorf("failed to save items batch: %w", err)
	}

	s.logger.InfoContext(ctx, "items added", slog.Int("count", len(items)))
	return nil
}

// UpdateItem overwrites name, price and quantity of an active item. This is
// an administrative override: it may set quantity to any non-negative value,
// and only SellItem enforces stock sufficiency.
func (s *StoreService) UpdateItem(ctx context.Context, itemID uuid.UUID, item *domain.Item) error {
	item.ID = itemID

	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if err := s.items.Update(ctx, item); err != nil {
		return fmt.Errorf("failed to update item %s: %w", itemID, err)
	}

	s.logger.InfoContext(ctx, "item updated",
		slog.String("item_id", itemID.String()),
		slog.Int64("quantity", item.Quantity))

	return nil
}

// DeleteItem soft-deletes an item. The sale log is untouched. Deleting an
// already-deleted item succeeds; only identifiers that never existed fail.
func (s *StoreService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	exists, err := s.items.Exists(ctx, itemID)
	if err != nil {
		return fmt.Errorf("failed to check item existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("delete item %s: %w", itemID, domain.ErrItemNotFound)
	}

	if err := s.items.SoftDelete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, err)
	}

	s.logger.InfoContext(ctx, "item deleted", slog.String("item_id", itemID.String()))
	return nil
}

// GetItem retrieves an active item by ID.
func (s *StoreService) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("get item %s: %w", itemID, domain.ErrItemNotFound)
	}
	return item, nil
}

// ListItems retrieves active items with pagination.
func (s *StoreService) ListItems(ctx context.Context, params ports.ListParams) (*ports.ItemPage, error) {
	params = normalizeListParams(params)

	items, totalCount, err := s.items.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return &ports.ItemPage{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, params.PageSize),
	}, nil
}

// SellItem atomically decrements stock and appends a sale record. Either both
// mutations commit or neither does; a concurrent sell of the same item cannot
// pass the sufficiency check against stale stock.
func (s *StoreService) SellItem(ctx context.Context, itemID uuid.UUID, quantity int64) error {
	var remaining int64

	err := s.db.Transaction(ctx, func(tx pgx.Tx) error {
		rem, ok, err := s.items.DecrementStockTx(ctx, tx, itemID, quantity)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
		if !ok {
			active, err := s.items.ExistsActiveTx(ctx, tx, itemID)
			if err != nil {
				return fmt.Errorf("failed to check item existence: %w", err)
			}
			if !active {
				return fmt.Errorf("sell item %s: %w", itemID, domain.ErrItemNotFound)
			}
			return fmt.Errorf("sell item %s: %w", itemID, domain.ErrInsufficientStock)
		}
		remaining = rem

		sale := domain.NewSale(itemID, quantity)
		if err := sale.Validate(); err != nil {
			return fmt.Errorf("invalid sale: %w", err)
		}
		if err := s.sales.AppendTx(ctx, tx, sale); err != nil {
			return fmt.Errorf("failed to record sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "item sold",
		slog.String("item_id", itemID.String()),
		slog.Int64("quantity", quantity),
		slog.Int64("remaining", remaining))

	s.maybeNotifyLowStock(ctx, itemID, remaining)
	return nil
}

// GetSoldItems retrieves the sale log for an item, page-sliced. An unknown or
// deleted item yields an empty page rather than an error.
func (s *StoreService) GetSoldItems(ctx context.Context, itemID uuid.UUID, params ports.ListParams) (*ports.SalePage, error) {
	params = normalizeListParams(params)

	sales, totalCount, err := s.sales.FindByItemID(ctx, itemID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}

	return &ports.SalePage{
		Sales:      sales,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages(totalCount, params.PageSize),
	}, nil
}

// GetTotalSold returns the cumulative quantity sold for an item.
func (s *StoreService) GetTotalSold(ctx context.Context, itemID uuid.UUID) (int64, error) {
	total, err := s.sales.TotalSoldByItemID(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}

// GetStockQuantity returns the current stock level of an active item.
func (s *StoreService) GetStockQuantity(ctx context.Context, itemID uuid.UUID) (int64, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return 0, fmt.Errorf("failed to get item: %w", err)
	}
	if item == nil {
		return 0, fmt.Errorf("stock for item %s: %w", itemID, domain.ErrItemNotFound)
	}
	return item.Quantity, nil
}

// maybeNotifyLowStock enqueues a low-stock notification after a committed
// sale. Enqueue failures are logged, never surfaced: the sale already
// happened.
func (s *StoreService) maybeNotifyLowStock(ctx context.Context, itemID uuid.UUID, remaining int64) {
	if s.tasks == nil || remaining > s.lowStockThreshold {
		return
	}

	payload, err := json.Marshal(workers.LowStockPayload{
		ItemID:    itemID.String(),
		Remaining: remaining,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to marshal low stock payload",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		return
	}

	task := asynq.NewTask(workers.TypeLowStockAlert, payload)
	if _, err := s.tasks.EnqueueContext(ctx, task, asynq.Queue(workers.QueueDefault)); err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue low stock alert",
			slog.String("item_id", itemID.String()),
			slog.String("error", err.Error()))
		return
	}

	s.logger.DebugContext(ctx, "low stock alert enqueued",
		slog.String("item_id", itemID.String()),
		slog.Int64("remaining", remaining))
}

func normalizeListParams(params ports.ListParams) ports.ListParams {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize <= 0 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}
	return params
}

func totalPages(totalCount int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		pages++
	}
	return pages
}
