// internal/core/ports/store_service.go
package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/Fatush13/simplestore/internal/core/domain"
)

// StoreService defines the application service port for the store. It is the
// single authority over item state transitions and stock accounting.
//
// Operations that reference an item return domain.ErrItemNotFound when the
// identifier does not resolve to an active item (DeleteItem is the exception:
// it only fails for identifiers that were never valid, so re-deleting an
// already-deleted item is idempotent). SellItem additionally returns
// domain.ErrInsufficientStock when the requested quantity exceeds stock.
type StoreService interface {
	AddItem(ctx context.Context, item *domain.Item) error
	AddItems(ctx context.Context, items []domain.Item) error
	UpdateItem(ctx context.Context, itemID uuid.UUID, item *domain.Item) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	GetItem(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
	ListItems(ctx context.Context, params ListParams) (*ItemPage, error)
	SellItem(ctx context.Context, itemID uuid.UUID, quantity int64) error
	GetSoldItems(ctx context.Context, itemID uuid.UUID, params ListParams) (*SalePage, error)
	GetTotalSold(ctx context.Context, itemID uuid.UUID) (int64, error)
	GetStockQuantity(ctx context.Context, itemID uuid.UUID) (int64, error)
}

// ListParams holds pagination and ordering parameters.
type ListParams struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ItemPage is one page of active catalog items.
type ItemPage struct {
	Items      []*domain.Item `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}

// SalePage is one page of the sale log for a single item.
type SalePage struct {
	Sales      []*domain.Sale `json:"sales"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalCount int64          `json:"total_count"`
	TotalPages int            `json:"total_pages"`
}
