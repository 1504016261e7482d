package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type catalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) Get(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, fmt.Errorf("id is not positive")
	}

	row := r.pool.QueryRow(ctx,
		`SELECT id, name, price_amount, price_currency FROM products WHERE id = $1`, id)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}

	return product, nil
}

func (r *catalogRepository) GetByName(ctx context.Context, name string) (domain.Product, error) {
	if name == "" {
		return domain.Product{}, fmt.Errorf("name is empty")
	}

	row := r.pool.QueryRow(ctx,
		`SELECT id, name, price_amount, price_currency FROM products WHERE name = $1`, name)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("scanProduct: %w", err)
	}

	return product, nil
}

func (r *catalogRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, price_amount, price_currency FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("pool.Query: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanProduct: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows.Err: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		product      domain.Product
		amount       decimal.Decimal
		currencyCode string
	)

	if err := row.Scan(&product.ID, &product.Name, &amount, &currencyCode); err != nil {
		return domain.Product{}, err
	}

	parsedCurrency, err := currency.ParseISO(currencyCode)
	if err != nil {
		return domain.Product{}, fmt.Errorf("currency[%s] is not valid: %w", currencyCode, err)
	}

	product.Price = domain.NewMoney(amount, parsedCurrency)
	return product, nil
}
