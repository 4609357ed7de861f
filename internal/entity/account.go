package entity

import (
	"database/sql"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
)

// Customer is the customer listing projection with spend aggregates.
type Customer struct {
	Id          int             `db:"id" json:"customerId"`
	Name        string          `db:"name" json:"name"`
	ContactInfo string          `db:"contact_info" json:"contactInfo"`
	OrderCount  int             `db:"order_count" json:"orderCount"`
	TotalSpent  decimal.Decimal `db:"total_spent" json:"totalSpent"`
}

// Supplier is the supplier listing projection. AvgDeliveryDays follows
// the legacy listing semantics: orders without a shipment count as zero
// days (the analytics ranking excludes them instead).
type Supplier struct {
	Id              int     `db:"id" json:"supplierId"`
	Name            string  `db:"name" json:"name"`
	ContactInfo     string  `db:"contact_info" json:"contactInfo"`
	OrderCount      int     `db:"order_count" json:"orderCount"`
	AvgDeliveryDays float64 `db:"avg_delivery_days" json:"avgDeliveryDays"`
}

// SupplierPerformance ranks suppliers by shipped-order volume. Only
// suppliers with at least one shipped order qualify.
type SupplierPerformance struct {
	Id              int     `db:"id" json:"supplierId"`
	Name            string  `db:"name" json:"name"`
	OrderCount      int     `db:"order_count" json:"orderCount"`
	AvgDeliveryDays float64 `db:"avg_delivery_days" json:"avgDeliveryDays"`
}

type AccountInsert struct {
	Name        string `json:"name" valid:"required"`
	ContactInfo string `json:"contactInfo" valid:"required"`
}

func (a *AccountInsert) Validate() error {
	_, err := govalidator.ValidateStruct(a)
	return err
}

// AccountUpdate carries a partial update; nil fields are left untouched.
type AccountUpdate struct {
	Name        *string `json:"name"`
	ContactInfo *string `json:"contactInfo"`
}

// CustomerOrderLine is one purchased line in a customer's order history.
type CustomerOrderLine struct {
	OrderId     int             `db:"order_id" json:"orderId"`
	OrderDate   time.Time       `db:"order_date" json:"orderDate"`
	ProductName string          `db:"product_name" json:"productName"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"totalPrice"`
}

// User is an account allowed to authenticate against the service.
type User struct {
	Id           int            `db:"id" json:"userId"`
	Username     string         `db:"username" json:"username"`
	ContactInfo  sql.NullString `db:"contact_info" json:"-"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         string         `db:"role" json:"role"`
}
