// internal/core/domain/sale.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sale is one immutable entry in the append-only sale log. It references the
// sold item by identifier only; soft-deleting the item leaves its sales valid.
type Sale struct {
	ID           uuid.UUID `json:"id"`
	ItemID       uuid.UUID `json:"item_id"`
	QuantitySold int64     `json:"quantity_sold"`
	SoldAt       time.Time `json:"sold_at"`
}

// NewSale builds a sale record for the given item and quantity.
func NewSale(itemID uuid.UUID, quantity int64) *Sale {
	return &Sale{
		ID:           uuid.New(),
		ItemID:       itemID,
		QuantitySold: quantity,
		SoldAt:       time.Now(),
	}
}

// Validate performs domain validation on the sale record
func (s *Sale) Validate() error {
	if s.ItemID == uuid.Nil {
		return fmt.Errorf("item_id is required")
	}
	if s.QuantitySold <= 0 {
		return fmt.Errorf("quantity_sold must be positive")
	}
	return nil
}
