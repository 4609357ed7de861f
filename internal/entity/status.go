package entity

// Threshold below which a stocked product counts as low stock.
const LowStockThreshold = 10

// StockStatus is a read-time label derived from the inventory quantity,
// never persisted.
type StockStatus string

const (
	StockStatusOut StockStatus = "Out of Stock"
	StockStatusLow StockStatus = "Low Stock"
	StockStatusIn  StockStatus = "In Stock"
)

// StockStatusFor classifies an inventory quantity. A quantity of exactly
// LowStockThreshold is already "In Stock".
func StockStatusFor(quantity int) StockStatus {
	switch {
	case quantity <= 0:
		return StockStatusOut
	case quantity < LowStockThreshold:
		return StockStatusLow
	default:
		return StockStatusIn
	}
}

// OrderStatus is derived from the existence of related shipment and
// payment rows. Shipment existence dominates payment existence.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "Pending"
	OrderStatusPaid    OrderStatus = "Paid"
	OrderStatusShipped OrderStatus = "Shipped"
)

func OrderStatusFor(hasShipment, hasPayment bool) OrderStatus {
	switch {
	case hasShipment:
		return OrderStatusShipped
	case hasPayment:
		return OrderStatusPaid
	default:
		return OrderStatusPending
	}
}

// DeliveryTier buckets a supplier's average delivery time in days.
type DeliveryTier string

const (
	DeliveryTierExcellent DeliveryTier = "Excellent"
	DeliveryTierGood      DeliveryTier = "Good"
	DeliveryTierFair      DeliveryTier = "Fair"
	DeliveryTierPoor      DeliveryTier = "Poor"
)

// DeliveryTierFor classifies an average delivery span. Boundaries are
// inclusive: exactly 3 days is still "Excellent", exactly 7 still "Fair".
func DeliveryTierFor(avgDays float64) DeliveryTier {
	switch {
	case avgDays <= 3:
		return DeliveryTierExcellent
	case avgDays <= 5:
		return DeliveryTierGood
	case avgDays <= 7:
		return DeliveryTierFair
	default:
		return DeliveryTierPoor
	}
}
