package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/invtrack/inventory-manager/internal/entity"
	"github.com/invtrack/inventory-manager/internal/gerr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to the database named by POSTGRES_TEST_DSN and
// applies migrations. Tests are skipped when the variable is unset.
func newTestDB(t *testing.T) *PGStore {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN is not set")
	}

	ps, err := New(context.Background(), Config{
		DSN:         dsn,
		Automigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(ps.Close)
	return ps
}

func addTestProduct(t *testing.T, ps *PGStore, name string, price string) *entity.Product {
	t.Helper()
	p, err := ps.Products().AddProduct(context.Background(), &entity.ProductInsert{
		Name:        name,
		Description: "integration test product",
		Price:       decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return p
}

func TestProductLifecycle(t *testing.T) {
	ps := newTestDB(t)
	ctx := context.Background()

	created := addTestProduct(t, ps, "Steel Widget", "19.99")
	assert.True(t, created.Price.Equal(decimal.RequireFromString("19.99")))
	assert.Equal(t, 0, created.CurrentStock)
	assert.Equal(t, entity.StockStatusFor(0), created.StockStatus)

	got, err := ps.Products().GetProductById(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)

	newName := "Steel Widget Mk2"
	updated, err := ps.Products().UpdateProduct(ctx, created.Id, &entity.ProductUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.True(t, updated.Price.Equal(created.Price))

	inv, err := ps.Inventory().SetQuantity(ctx, created.Id, 25)
	require.NoError(t, err)
	assert.Equal(t, 25, inv.Quantity)

	require.NoError(t, ps.Products().DeleteProductById(ctx, created.Id))

	_, err = ps.Products().GetProductById(ctx, created.Id)
	assert.ErrorIs(t, err, gerr.ErrNotFound)
}

func TestProductNotFound(t *testing.T) {
	ps := newTestDB(t)
	ctx := context.Background()

	_, err := ps.Products().GetProductById(ctx, -1)
	assert.ErrorIs(t, err, gerr.ErrNotFound)

	_, err = ps.Products().UpdateProduct(ctx, -1, &entity.ProductUpdate{Name: ptr("nothing")})
	assert.ErrorIs(t, err, gerr.ErrNotFound)

	assert.ErrorIs(t, ps.Products().DeleteProductById(ctx, -1), gerr.ErrNotFound)
}

func TestOrderShipmentPrecondition(t *testing.T) {
	ps := newTestDB(t)
	ctx := context.Background()

	product := addTestProduct(t, ps, "Copper Fitting", "4.50")

	customer, err := ps.Customers().AddCustomer(ctx, &entity.AccountInsert{
		Name:        "Acme Retail",
		ContactInfo: "orders@acme.test",
	})
	require.NoError(t, err)

	supplier, err := ps.Suppliers().AddSupplier(ctx, &entity.AccountInsert{
		Name:        "Copperworks",
		ContactInfo: "sales@copperworks.test",
	})
	require.NoError(t, err)

	order, err := ps.Orders().CreateOrder(ctx, &entity.OrderNew{
		CustomerId: customer.Id,
		SupplierId: supplier.Id,
		Items:      []entity.OrderItemInsert{{ProductId: product.Id, Quantity: 3}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.UUID)

	shipped := time.Now()
	shipment, err := ps.Shipments().CreateShipment(ctx, &entity.ShipmentNew{
		OrderId:      order.Id,
		ShipmentDate: &shipped,
		Items:        []entity.ShipmentItemInsert{{ProductId: product.Id, Quantity: 3}},
	})
	require.NoError(t, err)

	// a shipped order cannot be removed
	assert.ErrorIs(t, ps.Orders().DeleteOrder(ctx, order.Id), gerr.ErrOrderShipped)

	// a customer with order history cannot be removed either
	assert.ErrorIs(t, ps.Customers().DeleteCustomerById(ctx, customer.Id), gerr.ErrHasDependents)

	require.NoError(t, ps.Shipments().DeleteShipment(ctx, shipment.Id))
	require.NoError(t, ps.Orders().DeleteOrder(ctx, order.Id))
	require.NoError(t, ps.Customers().DeleteCustomerById(ctx, customer.Id))
	require.NoError(t, ps.Suppliers().DeleteSupplierById(ctx, supplier.Id))
	require.NoError(t, ps.Products().DeleteProductById(ctx, product.Id))
}

func TestProductRollupMonthlyVelocity(t *testing.T) {
	ps := newTestDB(t)
	ctx := context.Background()

	product := addTestProduct(t, ps, "Velocity Gauge", "2.00")

	customer, err := ps.Customers().AddCustomer(ctx, &entity.AccountInsert{
		Name:        "Gauge Depot",
		ContactInfo: "buy@gaugedepot.test",
	})
	require.NoError(t, err)

	supplier, err := ps.Suppliers().AddSupplier(ctx, &entity.AccountInsert{
		Name:        "Gaugeworks",
		ContactInfo: "sales@gaugeworks.test",
	})
	require.NoError(t, err)

	orderIds := make([]int, 0, 2)
	for _, date := range []time.Time{
		time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC),
	} {
		order, err := ps.Orders().CreateOrder(ctx, &entity.OrderNew{
			OrderDate:  date,
			CustomerId: customer.Id,
			SupplierId: supplier.Id,
			Items:      []entity.OrderItemInsert{{ProductId: product.Id, Quantity: 30}},
		})
		require.NoError(t, err)
		orderIds = append(orderIds, order.Id)
	}

	rollup, err := ps.Analytics().GetProductRollup(ctx)
	require.NoError(t, err)

	var found bool
	for _, r := range rollup {
		if r.ProductId != product.Id {
			continue
		}
		found = true
		assert.Equal(t, 60, r.Units)
		// two active months; the idle months in between don't dilute
		assert.InDelta(t, 30.0, r.MonthlyVelocity, 0.001)
	}
	require.True(t, found, "product missing from rollup")

	for _, id := range orderIds {
		require.NoError(t, ps.Orders().DeleteOrder(ctx, id))
	}
	require.NoError(t, ps.Customers().DeleteCustomerById(ctx, customer.Id))
	require.NoError(t, ps.Suppliers().DeleteSupplierById(ctx, supplier.Id))
	require.NoError(t, ps.Products().DeleteProductById(ctx, product.Id))
}

func ptr[T any](v T) *T { return &v }
