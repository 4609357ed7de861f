package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Overview is the trailing-30-day dashboard headline.
type Overview struct {
	MonthlyOrders   int             `db:"monthly_orders" json:"monthlyOrders"`
	MonthlyRevenue  decimal.Decimal `db:"monthly_revenue" json:"monthlyRevenue"`
	ActiveCustomers int             `db:"active_customers" json:"activeCustomers"`
	LowStockItems   int             `db:"low_stock_items" json:"lowStockItems"`
}

// MonthlyMetric is one of the trailing twelve monthly buckets.
type MonthlyMetric struct {
	Month         time.Time       `db:"month" json:"month"`
	OrderCount    int             `db:"order_count" json:"orderCount"`
	Revenue       decimal.Decimal `db:"revenue" json:"revenue"`
	CustomerCount int             `db:"customer_count" json:"customerCount"`
}

// TopProduct ranks products by trailing-30-day revenue.
type TopProduct struct {
	ProductId int             `db:"product_id" json:"productId"`
	Name      string          `db:"name" json:"name"`
	TotalSold int             `db:"total_sold" json:"totalSold"`
	Revenue   decimal.Decimal `db:"revenue" json:"revenue"`
}

// TopCustomer ranks customers by trailing-30-day spend.
type TopCustomer struct {
	CustomerId int             `db:"customer_id" json:"customerId"`
	Name       string          `db:"name" json:"name"`
	OrderCount int             `db:"order_count" json:"orderCount"`
	TotalSpent decimal.Decimal `db:"total_spent" json:"totalSpent"`
}

// DashboardSummary bundles every dashboard widget into one response.
type DashboardSummary struct {
	Overview     *Overview       `json:"overview"`
	Monthly      []MonthlyMetric `json:"monthly"`
	TopProducts  []TopProduct    `json:"topProducts"`
	TopCustomers []TopCustomer   `json:"topCustomers"`
}
