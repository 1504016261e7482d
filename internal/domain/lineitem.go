package domain

import "github.com/shopspring/decimal"

// LineItem is a priced per-product summary derived from cart entries.
// Total is the sum of that many unit prices, not quantity times price.
type LineItem struct {
	Name     string
	Quantity int
	Total    decimal.Decimal
}
