// internal/adapters/db/sale_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
)

// saleRepository implements ports.SaleRepository
type saleRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *Database, logger *slog.Logger) ports.SaleRepository {
	return &saleRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "sales")),
	}
}

// AppendTx inserts a sale record inside the caller's transaction
func (r *saleRepository) AppendTx(ctx context.Context, tx pgx.Tx, sale *domain.Sale) error {
	query := `
		INSERT INTO sales (id, item_id, quantity_sold, sold_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := tx.Exec(ctx, query, sale.ID, sale.ItemID, sale.QuantitySold, sale.SoldAt); err != nil {
		return fmt.Errorf("failed to append sale: %w", err)
	}

	r.logger.DebugContext(ctx, "sale appended",
		slog.String("sale_id", sale.ID.String()),
		slog.String("item_id", sale.ItemID.String()),
		slog.Int64("quantity", sale.QuantitySold))

	return nil
}

// FindByItemID retrieves the sale log for an item, newest first
func (r *saleRepository) FindByItemID(ctx context.Context, itemID uuid.UUID, params ports.ListParams) ([]*domain.Sale, int64, error) {
	var totalCount int64
	countQuery := `SELECT COUNT(*) FROM sales WHERE item_id = $1`
	if err := r.db.QueryRow(ctx, countQuery, itemID).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	query := `
		SELECT id, item_id, quantity_sold, sold_at
		FROM sales
		WHERE item_id = $1
		ORDER BY sold_at DESC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, itemID, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		sale := &domain.Sale{}
		if err := rows.Scan(&sale.ID, &sale.ItemID, &sale.QuantitySold, &sale.SoldAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return sales, totalCount, nil
}

// TotalSoldByItemID sums the quantities ever sold for an item. Unknown items
// sum to zero.
func (r *saleRepository) TotalSoldByItemID(ctx context.Context, itemID uuid.UUID) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity_sold), 0) FROM sales WHERE item_id = $1`

	var total int64
	if err := r.db.QueryRow(ctx, query, itemID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}

	return total, nil
}
