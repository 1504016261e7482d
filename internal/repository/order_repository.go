package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
)

type orderRepository struct {
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{pool: pool}
}

// Create writes the order row and its line-item snapshot in a single
// transaction: either the whole order exists afterwards or nothing does.
// The ID and creation timestamp are assigned here, never by the caller.
func (r *orderRepository) Create(ctx context.Context, order domain.Order) (int64, error) {
	if order.Email == "" {
		return 0, fmt.Errorf("email is empty")
	}

	return withTx(ctx, r.pool, func(tx pgx.Tx) (int64, error) {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO orders (email) VALUES ($1) RETURNING id`,
			order.Email,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert order: %w", err)
		}

		for name, item := range order.Items {
			_, err := tx.Exec(ctx,
				`INSERT INTO order_items (order_id, product_name, quantity, total)
				 VALUES ($1, $2, $3, $4)`,
				id, name, item.Quantity, item.Total,
			)
			if err != nil {
				return 0, fmt.Errorf("insert order_item[%s]: %w", name, err)
			}
		}

		return id, nil
	})
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, bool, error) {
	var order domain.Order

	err := r.pool.QueryRow(ctx,
		`SELECT id, email, created_at FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.Email, &order.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, false, nil
	}
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("select order: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT product_name, quantity, total FROM order_items WHERE order_id = $1`, id)
	if err != nil {
		return domain.Order{}, false, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	order.Items = make(map[string]domain.OrderItem)
	for rows.Next() {
		var (
			name string
			item domain.OrderItem
		)
		if err := rows.Scan(&name, &item.Quantity, &item.Total); err != nil {
			return domain.Order{}, false, fmt.Errorf("scan order_item: %w", err)
		}
		order.Items[name] = item
	}
	if err := rows.Err(); err != nil {
		return domain.Order{}, false, fmt.Errorf("rows.Err: %w", err)
	}

	return order, true, nil
}
