package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesPeriod is one bucket of the daily sales rollup. PrevRevenue is
// nil only for the first period in the series; GrowthRate is also nil
// when the preceding period's revenue is exactly zero.
type SalesPeriod struct {
	Period        time.Time        `db:"period" json:"period"`
	OrderCount    int              `db:"order_count" json:"orderCount"`
	CustomerCount int              `db:"customer_count" json:"customerCount"`
	Units         int              `db:"units" json:"units"`
	Revenue       decimal.Decimal  `db:"revenue" json:"revenue"`
	PrevRevenue   *decimal.Decimal `db:"-" json:"prevRevenue,omitempty"`
	GrowthRate    *float64         `db:"-" json:"growthRate,omitempty"`
}

// ProductRollup aggregates sales per product over the whole relation.
type ProductRollup struct {
	ProductId       int             `db:"product_id" json:"productId"`
	Name            string          `db:"name" json:"name"`
	OrderCount      int             `db:"order_count" json:"orderCount"`
	Units           int             `db:"units" json:"units"`
	Revenue         decimal.Decimal `db:"revenue" json:"revenue"`
	AvgOrderSize    float64         `db:"avg_order_size" json:"avgOrderSize"`
	CurrentStock    int             `db:"current_stock" json:"currentStock"`
	MonthlyVelocity float64         `db:"monthly_velocity" json:"monthlyVelocity"`
}

// CustomerRollup aggregates lifetime spend per customer.
type CustomerRollup struct {
	CustomerId    int             `db:"customer_id" json:"customerId"`
	Name          string          `db:"name" json:"name"`
	OrderCount    int             `db:"order_count" json:"orderCount"`
	TotalSpent    decimal.Decimal `db:"total_spent" json:"totalSpent"`
	FirstOrder    time.Time       `db:"first_order" json:"firstOrder"`
	LastOrder     time.Time       `db:"last_order" json:"lastOrder"`
	AvgOrderValue decimal.Decimal `db:"avg_order_value" json:"avgOrderValue"`
	LifetimeDays  int             `db:"lifetime_days" json:"lifetimeDays"`
}

// SupplierRollup aggregates order volume and delivery performance per
// supplier. AvgDeliveryDays is nil when the supplier has no shipped
// order; the tier is derived only when an average exists.
type SupplierRollup struct {
	SupplierId      int             `db:"supplier_id" json:"supplierId"`
	Name            string          `db:"name" json:"name"`
	OrderCount      int             `db:"order_count" json:"orderCount"`
	Units           int             `db:"units" json:"units"`
	TotalValue      decimal.Decimal `db:"total_value" json:"totalValue"`
	AvgDeliveryDays *float64        `db:"avg_delivery_days" json:"avgDeliveryDays,omitempty"`
	AvgOrderValue   decimal.Decimal `db:"avg_order_value" json:"avgOrderValue"`
	PerformanceTier DeliveryTier    `db:"-" json:"performanceTier,omitempty"`
}

// MonthlyTrend is one bucket of the monthly trend report.
type MonthlyTrend struct {
	Month            time.Time        `db:"month" json:"month"`
	OrderCount       int              `db:"order_count" json:"orderCount"`
	CustomerCount    int              `db:"customer_count" json:"customerCount"`
	Units            int              `db:"units" json:"units"`
	Revenue          decimal.Decimal  `db:"revenue" json:"revenue"`
	UniqueProducts   int              `db:"unique_products" json:"uniqueProducts"`
	PrevRevenue      *decimal.Decimal `db:"-" json:"prevRevenue,omitempty"`
	GrowthRate       *float64         `db:"-" json:"growthRate,omitempty"`
	AvgOrderValue    decimal.Decimal  `db:"avg_order_value" json:"avgOrderValue"`
	AvgUnitsPerOrder float64          `db:"avg_units_per_order" json:"avgUnitsPerOrder"`
}

// SalesFilter carries optional date bounds for the sales rollup.
type SalesFilter struct {
	From *time.Time
	To   *time.Time
}
