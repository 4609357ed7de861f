package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilterEmpty(t *testing.T) {
	f := NewFilter()
	assert.Empty(t, f.Where())
	assert.Empty(t, f.Clause())
	assert.Empty(t, f.Params(nil))
}

func TestFilterSkipsNilValues(t *testing.T) {
	f := NewFilter().
		Equal("o.supplier_id", "supplierId", nil).
		From("o.order_date", "from", nil).
		To("o.order_date", "to", nil)
	assert.Empty(t, f.Where())
	assert.Empty(t, f.Params(nil))
}

func TestFilterComposition(t *testing.T) {
	supplierId := 7
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	f := NewFilter().
		Equal("o.supplier_id", "supplierId", &supplierId).
		From("o.order_date", "from", &from).
		To("o.order_date", "to", &to)

	assert.Equal(t,
		" WHERE o.supplier_id = :supplierId AND o.order_date >= :from AND o.order_date <= :to",
		f.Where())
	assert.Equal(t,
		" AND o.supplier_id = :supplierId AND o.order_date >= :from AND o.order_date <= :to",
		f.Clause())

	params := f.Params(map[string]any{"base": 1})
	assert.Equal(t, 1, params["base"])
	assert.Equal(t, supplierId, params["supplierId"])
	assert.Equal(t, from, params["from"])
	assert.Equal(t, to, params["to"])
}

func TestFilterValuesNeverInterpolated(t *testing.T) {
	id := 42
	f := NewFilter().Equal("co.customer_id", "customerId", &id)
	assert.NotContains(t, f.Where(), "42")
}
