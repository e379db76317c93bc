package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Fatush13/simplestore/internal/adapters/db"
	"github.com/Fatush13/simplestore/internal/core/domain"
	"github.com/Fatush13/simplestore/internal/core/ports"
	"github.com/Fatush13/simplestore/internal/core/services"
	"github.com/Fatush13/simplestore/test/helpers"
)

func BenchmarkStoreOperations(b *testing.B) {
	// Setup
	testDB := helpers.SetupTestDB(b)
	defer testDB.Database.Close()

	itemRepo := db.NewItemRepository(testDB.Database, helpers.TestLogger())
	saleRepo := db.NewSaleRepository(testDB.Database, helpers.TestLogger())
	service := services.NewStoreService(itemRepo, saleRepo, testDB.Database, nil, 5, helpers.TestLogger())
	ctx := context.Background()

	b.Run("Create", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			item := &domain.Item{
				ID:       uuid.New(),
				Name:     fmt.Sprintf("Benchmark Item %d", i),
				Price:    decimal.NewFromFloat(19.99),
				Quantity: 10,
			}
			_ = service.AddItem(ctx, item)
		}
	})

	// Pre-create items for read benchmarks
	var itemIDs []uuid.UUID
	for i := 0; i < 100; i++ {
		item := helpers.CreateTestItem()
		_ = service.AddItem(ctx, item)
		itemIDs = append(itemIDs, item.ID)
	}

	b.Run("Read", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.GetItem(ctx, itemIDs[i%len(itemIDs)])
		}
	})

	b.Run("List", func(b *testing.B) {
		params := ports.ListParams{
			Page:      1,
			PageSize:  50,
			SortBy:    "created_at",
			SortOrder: "desc",
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _ = service.ListItems(ctx, params)
		}
	})

	b.Run("Sell", func(b *testing.B) {
		// A single item with enough stock to survive the run.
		item := helpers.CreateTestItem(func(it *domain.Item) {
			it.Quantity = int64(b.N) + 1_000_000
		})
		if err := service.AddItem(ctx, item); err != nil {
			b.Fatalf("seed item: %v", err)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_ = service.SellItem(ctx, item.ID, 1)
		}
	})

	b.Run("BatchCreate", func(b *testing.B) {
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			items := helpers.CreateTestItems(100)
			_ = service.AddItems(ctx, items)
		}
	})
}

func BenchmarkMemoryAllocation(b *testing.B) {
	b.Run("ItemAllocation", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			item := &domain.Item{
				ID:       uuid.New(),
				Name:     "Memory Test Item",
				Price:    decimal.NewFromFloat(42.50),
				Quantity: 3,
			}
			_ = item
		}
	})

	b.Run("ItemPageAllocation", func(b *testing.B) {
		items := make([]*domain.Item, 100)
		for i := range items {
			items[i] = helpers.CreateTestItem()
		}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			page := &ports.ItemPage{
				Items:      items,
				Page:       1,
				PageSize:   100,
				TotalCount: 100,
				TotalPages: 1,
			}
			_ = page
		}
	})
}
