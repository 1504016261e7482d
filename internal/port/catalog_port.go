package port

import (
	"context"

	"github.com/nikolayk812/checkout-demo/internal/domain"
)

// CatalogRepository is the read-only product catalog. This core never
// writes to it.
type CatalogRepository interface {
	Get(ctx context.Context, id int64) (domain.Product, error)
	GetByName(ctx context.Context, name string) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
