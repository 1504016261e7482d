package repository_test

import (
	"context"

	"github.com/nikolayk812/checkout-demo/internal/testdb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	return testdb.StartPostgres(ctx,
		"migrations/01_products.up.sql",
		"migrations/02_orders.up.sql",
	)
}
