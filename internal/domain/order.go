package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a point-in-time record of a completed checkout. Items is a
// snapshot keyed by product name; it never changes after persistence,
// even if catalog prices do.
type Order struct {
	ID        int64
	CreatedAt time.Time
	Email     string
	Items     map[string]OrderItem
}

type OrderItem struct {
	Quantity int
	Total    decimal.Decimal
}
