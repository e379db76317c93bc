package workers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fatush13/simplestore/internal/core/domain"
)

func TestParseInvoiceText(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantCount int
		check     func(t *testing.T, items []domain.Item)
	}{
		{
			name: "parses_standard_lines",
			text: "ACME SUPPLY CO\n" +
				"Invoice #4417\n" +
				"Widget Deluxe    12 x $4.99\n" +
				"Gadget Mini      3 @ 10.50\n" +
				"Subtotal: $91.38\n",
			wantCount: 2,
			check: func(t *testing.T, items []domain.Item) {
				assert.Equal(t, "Widget Deluxe", items[0].Name)
				assert.Equal(t, int64(12), items[0].Quantity)
				assert.True(t, items[0].Price.Equal(decimal.RequireFromString("4.99")))
				assert.Equal(t, "Gadget Mini", items[1].Name)
				assert.Equal(t, int64(3), items[1].Quantity)
				assert.True(t, items[1].Price.Equal(decimal.RequireFromString("10.50")))
			},
		},
		{
			name:      "handles_thousands_separators",
			text:      "Industrial Press    2 x $1,250.00\n",
			wantCount: 1,
			check: func(t *testing.T, items []domain.Item) {
				assert.True(t, items[0].Price.Equal(decimal.RequireFromString("1250.00")))
			},
		},
		{
			name:      "skips_zero_quantity_lines",
			text:      "Phantom Item    0 x $5.00\n",
			wantCount: 0,
		},
		{
			name:      "ignores_non_item_text",
			text:      "Thank you for your business\nTerms: Net 30\n",
			wantCount: 0,
		},
		{
			name:      "empty_input",
			text:      "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := parseInvoiceText(tt.text)
			require.NoError(t, err)
			require.Len(t, items, tt.wantCount)

			if tt.check != nil {
				tt.check(t, items)
			}
		})
	}
}

func TestJobStatusKey(t *testing.T) {
	assert.Equal(t, "job:abc-123", JobStatusKey("abc-123"))
}
