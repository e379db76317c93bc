// internal/adapters/db/item_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
)

// itemRepository implements ports.ItemRepository
type itemRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *Database, logger *slog.Logger) ports.ItemRepository {
	return &itemRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "items")),
	}
}

const itemColumns = `id, name, price, quantity, deleted, created_at, updated_at`

// Save creates a new catalog item
func (r *itemRepository) Save(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (id, name, price, quantity, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		item.ID, item.Name, item.Price, item.Quantity,
		item.Deleted, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	r.logger.DebugContext(ctx, "item saved",
		slog.String("item_id", item.ID.String()),
		slog.String("name", item.Name))

	return nil
}

// SaveBatch saves multiple items in a single transaction
func (r *itemRepository) SaveBatch(ctx context.Context, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}

		query := `
			INSERT INTO items (id, name, price, quantity, deleted, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`

		for i := range items {
			batch.Queue(query,
				items[i].ID, items[i].Name, items[i].Price, items[i].Quantity,
				items[i].Deleted, items[i].CreatedAt, items[i].UpdatedAt,
			)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for i := range items {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("failed to save item %d (%s): %w", i, items[i].Name, err)
			}
		}

		return nil
	})
}

// Update overwrites the mutable fields of an active item
func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	query := `
		UPDATE items SET
			name = $2, price = $3, quantity = $4, updated_at = now()
		WHERE id = $1 AND NOT deleted
		RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		item.ID, item.Name, item.Price, item.Quantity,
	).Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return fmt.Errorf("update item %s: %w", item.ID, domain.ErrItemNotFound)
		}
		return fmt.Errorf("failed to update item: %w", err)
	}

	r.logger.DebugContext(ctx, "item updated",
		slog.String("item_id", item.ID.String()))

	return nil
}

// FindByID retrieves an active item by ID. Returns nil when no active item
// carries the identifier.
func (r *itemRepository) FindByID(ctx context.Context, itemID uuid.UUID) (*domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE id = $1 AND NOT deleted`

	item := &domain.Item{}
	err := r.db.QueryRow(ctx, query, itemID).Scan(
		&item.ID, &item.Name, &item.Price, &item.Quantity,
		&item.Deleted, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find item: %w", err)
	}

	return item, nil
}

// FindAll retrieves active items with pagination and ordering
func (r *itemRepository) FindAll(ctx context.Context, params ports.ListParams) ([]*domain.Item, int64, error) {
	qb := squirrel.Select("id", "name", "price", "quantity", "deleted", "created_at", "updated_at").
		From("items").
		Where("NOT deleted").
		PlaceholderFormat(squirrel.Dollar)

	countSQL, countArgs, err := squirrel.Select("COUNT(*)").
		From("items").
		Where("NOT deleted").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var totalCount int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count items: %w", err)
	}

	direction := "ASC"
	if params.SortOrder == "desc" {
		direction = "DESC"
	}
	orderBy := "created_at " + direction
	switch params.SortBy {
	case "name":
		orderBy = "name " + direction
	case "price":
		orderBy = "price " + direction
	case "quantity":
		orderBy = "quantity " + direction
	case "updated":
		orderBy = "updated_at " + direction
	}
	// Secondary key keeps pages stable when the primary key ties.
	qb = qb.OrderBy(orderBy, "id ASC")

	if params.PageSize > 0 {
		qb = qb.Limit(uint64(params.PageSize))
	}
	if offset := params.Offset(); offset > 0 {
		qb = qb.Offset(uint64(offset))
	}

	querySQL, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		item := &domain.Item{}
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Price, &item.Quantity,
			&item.Deleted, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, totalCount, nil
}

// SoftDelete marks an item as deleted. Already-deleted items are left alone,
// so the operation reports success on repeat calls.
func (r *itemRepository) SoftDelete(ctx context.Context, itemID uuid.UUID) error {
	query := `UPDATE items SET deleted = TRUE, updated_at = now() WHERE id = $1 AND NOT deleted`

	if _, err := r.db.Exec(ctx, query, itemID); err != nil {
		return fmt.Errorf("failed to soft delete item: %w", err)
	}

	r.logger.InfoContext(ctx, "item soft deleted",
		slog.String("item_id", itemID.String()))

	return nil
}

// Exists reports whether the identifier was ever assigned, deleted or not
func (r *itemRepository) Exists(ctx context.Context, itemID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM items WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}

	return exists, nil
}

// Count returns the number of active items
func (r *itemRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM items WHERE NOT deleted`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}

	return count, nil
}

// DecrementStockTx conditionally decrements stock inside the caller's
// transaction. The WHERE clause is the whole invariant: the row only changes
// when the item is active and holds enough units, and concurrent sellers
// serialize on the row lock the UPDATE takes.
func (r *itemRepository) DecrementStockTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID, quantity int64) (int64, bool, error) {
	query := `
		UPDATE items
		SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND NOT deleted AND quantity >= $2
		RETURNING quantity`

	var remaining int64
	err := tx.QueryRow(ctx, query, itemID, quantity).Scan(&remaining)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return remaining, true, nil
}

// ExistsActiveTx reports whether an active item exists, inside the caller's
// transaction
func (r *itemRepository) ExistsActiveTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM items WHERE id = $1 AND NOT deleted)`

	var exists bool
	if err := tx.QueryRow(ctx, query, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active existence: %w", err)
	}

	return exists, nil
}
