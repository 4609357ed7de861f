package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatusFor(t *testing.T) {
	assert.Equal(t, StockStatusOut, StockStatusFor(0))
	assert.Equal(t, StockStatusLow, StockStatusFor(1))
	assert.Equal(t, StockStatusLow, StockStatusFor(9))
	assert.Equal(t, StockStatusIn, StockStatusFor(10))
	assert.Equal(t, StockStatusIn, StockStatusFor(250))
}

func TestOrderStatusFor(t *testing.T) {
	// shipment dominates payment
	assert.Equal(t, OrderStatusShipped, OrderStatusFor(true, true))
	assert.Equal(t, OrderStatusShipped, OrderStatusFor(true, false))
	assert.Equal(t, OrderStatusPaid, OrderStatusFor(false, true))
	assert.Equal(t, OrderStatusPending, OrderStatusFor(false, false))
}

func TestDeliveryTierFor(t *testing.T) {
	assert.Equal(t, DeliveryTierExcellent, DeliveryTierFor(0))
	assert.Equal(t, DeliveryTierExcellent, DeliveryTierFor(3))
	assert.Equal(t, DeliveryTierGood, DeliveryTierFor(3.01))
	assert.Equal(t, DeliveryTierGood, DeliveryTierFor(5))
	assert.Equal(t, DeliveryTierFair, DeliveryTierFor(7))
	assert.Equal(t, DeliveryTierPoor, DeliveryTierFor(7.01))
}
