package checkout

import (
	"context"
	"fmt"

	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/shopspring/decimal"
)

// Aggregate consolidates raw cart entries into priced line items in
// first-occurrence order, plus the grand total.
//
// A line item's total is accumulated by adding the unit price once per
// occurrence rather than multiplying quantity by price at the end, so
// the result is the exact decimal sum of that many unit prices and the
// summation order stays reproducible.
//
// An entry that no longer resolves in the catalog fails the whole call:
// such a cart is corrupted state, not an item to skip silently.
func Aggregate(ctx context.Context, entries []int64, catalog port.CatalogRepository) ([]domain.LineItem, decimal.Decimal, error) {
	var (
		items   []domain.LineItem
		indexOf = make(map[string]int)
		total   = decimal.Zero
	)

	for _, id := range entries {
		product, err := catalog.Get(ctx, id)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("catalog.Get[%d]: %w", id, err)
		}

		price := product.Price.Amount

		i, seen := indexOf[product.Name]
		if !seen {
			indexOf[product.Name] = len(items)
			items = append(items, domain.LineItem{
				Name:     product.Name,
				Quantity: 1,
				Total:    price,
			})
		} else {
			items[i].Quantity++
			items[i].Total = items[i].Total.Add(price)
		}

		total = total.Add(price)
	}

	return items, total, nil
}
