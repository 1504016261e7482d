package port

import (
	"context"

	"github.com/nikolayk812/checkout-demo/internal/domain"
)

type OrderRepository interface {
	// Create assigns the order ID and creation timestamp, persists the
	// order atomically and returns the assigned ID.
	Create(ctx context.Context, order domain.Order) (int64, error)

	// Get reports found=false for a missing ID instead of an error,
	// callers use it in routing-style lookups.
	Get(ctx context.Context, id int64) (domain.Order, bool, error)
}
