package checkout_test

import (
	"log/slog"
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/checkout-demo/internal/cart"
	"github.com/nikolayk812/checkout-demo/internal/checkout"
	"github.com/nikolayk812/checkout-demo/internal/dispatch"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/repository"
	"github.com/nikolayk812/checkout-demo/internal/session"
	"github.com/nikolayk812/checkout-demo/internal/tasks"
	"github.com/nikolayk812/checkout-demo/internal/testdb"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The whole pipeline against a real store: session cart in, durable
// order out, confirmation scheduled, completion view read once.
func TestCheckoutPipeline(t *testing.T) {
	ctx := t.Context()

	_, connStr, err := testdb.StartPostgres(ctx)
	require.NoError(t, err)

	ddl, err := repository.SchemaDDL()
	require.NoError(t, err)

	err = testdb.WithEphemeralStore(ctx, connStr, ddl, func(pool *pgxpool.Pool) error {
		recorder := dispatch.NewRecorder()
		svc := checkout.NewService(
			repository.NewOrder(pool),
			repository.NewCatalog(pool),
			recorder,
			slog.Default(),
		)

		flossID := seedProduct(t, pool, "Floss", "1.50")
		brushID := seedProduct(t, pool, "Toothbrush", "2.99")

		_, sess := session.NewStore().New()
		cart.Ensure(sess)
		for _, id := range []int64{flossID, flossID, brushID} {
			_, err := cart.Add(sess, strconv.FormatInt(id, 10))
			require.NoError(t, err)
		}

		email := gofakeit.Email()
		orderID, err := svc.Complete(ctx, sess, email)
		require.NoError(t, err)

		assert.Empty(t, cart.Items(sess))

		calls := recorder.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, tasks.SendConfirmationEmail, calls[0].Task)
		assert.Equal(t, tasks.ConfirmationArgs(email), calls[0].Args)

		order, pending, err := svc.ShowCompletion(ctx, sess)
		require.NoError(t, err)
		require.True(t, pending)

		assert.Equal(t, orderID, order.ID)
		assert.Equal(t, email, order.Email)
		assert.False(t, order.CreatedAt.IsZero())

		wantItems := map[string]domain.OrderItem{
			"Floss":      {Quantity: 2, Total: decimal.RequireFromString("3.00")},
			"Toothbrush": {Quantity: 1, Total: decimal.RequireFromString("2.99")},
		}
		decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
			return x.Equal(y)
		})
		assert.Empty(t, cmp.Diff(wantItems, order.Items, decimalComparer))

		// one-shot: the second view has nothing pending
		_, pending, err = svc.ShowCompletion(ctx, sess)
		require.NoError(t, err)
		assert.False(t, pending)

		return nil
	})
	require.NoError(t, err)
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, name, price string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(t.Context(),
		`INSERT INTO products (name, price_amount, price_currency) VALUES ($1, $2, 'GBP') RETURNING id`,
		name, decimal.RequireFromString(price),
	).Scan(&id)
	require.NoError(t, err)

	return id
}
