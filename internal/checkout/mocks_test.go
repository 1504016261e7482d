package checkout_test

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/checkout-demo/internal/domain"
)

// fakeCatalog implements port.CatalogRepository over a fixed product map.
type fakeCatalog struct {
	products map[int64]domain.Product
}

func (f *fakeCatalog) Get(_ context.Context, id int64) (domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (f *fakeCatalog) GetByName(_ context.Context, name string) (domain.Product, error) {
	for _, p := range f.products {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product[%s]: %w", name, domain.ErrNotFound)
}

func (f *fakeCatalog) List(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

// fakeOrderRepo implements port.OrderRepository in memory, capturing the
// orders passed to Create.
type fakeOrderRepo struct {
	nextID    int64
	orders    map[int64]domain.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]domain.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order domain.Order) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}

	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now().UTC()
	f.orders[order.ID] = order

	return order.ID, nil
}

func (f *fakeOrderRepo) Get(_ context.Context, id int64) (domain.Order, bool, error) {
	order, ok := f.orders[id]
	return order, ok, nil
}
