// internal/core/ports/item_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Fatush13/simplestore/internal/core/domain"
)

// ItemRepository defines the persistence port for catalog items.
// This interface is implemented by the database adapter.
//
// FindByID and FindAll see active (non-deleted) items only. Exists does not
// filter on the deleted flag; it answers whether the identifier was ever
// valid, which is what the idempotent delete path needs.
type ItemRepository interface {
	Save(ctx context.Context, item *domain.Item) error
	SaveBatch(ctx context.Context, items []domain.Item) error
	Update(ctx context.Context, item *domain.Item) error
	FindByID(ctx context.Context, itemID uuid.UUID) (*domain.Item, error)
	FindAll(ctx context.Context, params ListParams) ([]*domain.Item, int64, error)
	SoftDelete(ctx context.Context, itemID uuid.UUID) error
	Exists(ctx context.Context, itemID uuid.UUID) (bool, error)
	Count(ctx context.Context) (int64, error)

	// Tx variants participate in a caller-owned transaction. DecrementStockTx
	// performs the conditional decrement that guards the stock invariant: it
	// succeeds only when the item is active and holds at least quantity units,
	// and reports the remaining stock on success.
	DecrementStockTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, quantity int64) (remaining int64, ok bool, err error)
	ExistsActiveTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (bool, error)
}
