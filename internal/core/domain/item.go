// internal/core/domain/item.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxItemNameLength is the longest name the item table accepts.
const MaxItemNameLength = 255

// Item represents a stock-keeping unit in the store catalog.
type Item struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Deleted   bool            `json:"deleted"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate performs domain validation on the item
func (i *Item) Validate() error {
	name := strings.TrimSpace(i.Name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if len(name) > MaxItemNameLength {
		return fmt.Errorf("name exceeds %d characters", MaxItemNameLength)
	}
	if i.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if i.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative")
	}
	return nil
}

// PrepareForStorage prepares the item for database storage
func (i *Item) PrepareForStorage() {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}

	i.Name = strings.TrimSpace(i.Name)

	now := time.Now()
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
}

// InStock reports whether the requested quantity can currently be sold.
func (i *Item) InStock(quantity int64) bool {
	return !i.Deleted && i.Quantity >= quantity
}
