// internal/core/ports/sale_repository.go
package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Fatush13/simplestore/internal/core/domain"
)

// SaleRepository defines the persistence port for the append-only sale log.
// Sales are never updated or deleted.
type SaleRepository interface {
	// AppendTx inserts a sale record inside a caller-owned transaction so the
	// append commits or rolls back together with the stock decrement.
	AppendTx(ctx context.Context, tx pgx.Tx, sale *domain.Sale) error

	FindByItemID(ctx context.Context, itemID uuid.UUID, params ListParams) ([]*domain.Sale, int64, error)
	TotalSoldByItemID(ctx context.Context, itemID uuid.UUID) (int64, error)
}
