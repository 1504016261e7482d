package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/checkout-demo/internal/domain"
	"github.com/nikolayk812/checkout-demo/internal/port"
	"github.com/nikolayk812/checkout-demo/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type orderRepositorySuite struct {
	suite.Suite

	repo port.OrderRepository
	pool *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo = repository.NewOrder(suite.pool)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *orderRepositorySuite) TestCreate() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		order     domain.Order
		wantError string
	}{
		{
			name: "create order with items: ok",
			order: domain.Order{
				Email: gofakeit.Email(),
				Items: randomOrderItems(3),
			},
		},
		{
			name: "create order with empty snapshot: ok",
			order: domain.Order{
				Email: gofakeit.Email(),
				Items: map[string]domain.OrderItem{},
			},
		},
		{
			name:      "create order with empty email: error",
			order:     domain.Order{Items: randomOrderItems(1)},
			wantError: "email is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			id, err := suite.repo.Create(ctx, tt.order)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			require.Positive(t, id)

			// Round-trip: the stored snapshot equals the submitted one
			got, found, err := suite.repo.Get(ctx, id)
			require.NoError(t, err)
			require.True(t, found)

			assert.Equal(t, id, got.ID)
			assert.Equal(t, tt.order.Email, got.Email)
			assert.False(t, got.CreatedAt.IsZero())
			assertOrderItems(t, tt.order.Items, got.Items)
		})
	}
}

func (suite *orderRepositorySuite) TestGet_Missing() {
	t := suite.T()
	ctx := t.Context()

	_, found, err := suite.repo.Get(ctx, 987654321)
	require.NoError(t, err)
	assert.False(t, found)
}

func (suite *orderRepositorySuite) TestCreate_AssignsDistinctIDs() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()

	id1, err := suite.repo.Create(ctx, domain.Order{Email: gofakeit.Email(), Items: randomOrderItems(1)})
	require.NoError(t, err)

	id2, err := suite.repo.Create(ctx, domain.Order{Email: gofakeit.Email(), Items: randomOrderItems(1)})
	require.NoError(t, err)

	assert.NotEqual(t, id1, id2)
}

func (suite *orderRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE orders CASCADE")
	suite.NoError(err)
}

func randomOrderItems(n int) map[string]domain.OrderItem {
	items := make(map[string]domain.OrderItem, n)

	for len(items) < n {
		name := gofakeit.ProductName()
		if _, ok := items[name]; ok {
			continue
		}

		items[name] = domain.OrderItem{
			Quantity: gofakeit.Number(1, 5),
			Total:    decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2),
		}
	}

	return items
}

func assertOrderItems(t *testing.T, expected, actual map[string]domain.OrderItem) {
	t.Helper()

	decimalComparer := cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	})

	diff := cmp.Diff(expected, actual, decimalComparer)
	assert.Empty(t, diff)
}
