package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Order is the order listing projection: header fields, customer and
// supplier names, line aggregates and the derived status.
type Order struct {
	Id            int             `db:"id" json:"orderId"`
	UUID          string          `db:"uuid" json:"orderRef"`
	OrderDate     time.Time       `db:"order_date" json:"orderDate"`
	SupplierId    int             `db:"supplier_id" json:"supplierId"`
	SupplierName  string          `db:"supplier_name" json:"supplierName"`
	CustomerId    int             `db:"customer_id" json:"customerId"`
	CustomerName  string          `db:"customer_name" json:"customerName"`
	TotalItems    int             `db:"total_items" json:"totalItems"`
	TotalQuantity int             `db:"total_quantity" json:"totalQuantity"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"totalAmount"`
	AmountPaid    decimal.Decimal `db:"amount_paid" json:"amountPaid"`
	HasShipment   bool            `db:"has_shipment" json:"-"`
	HasPayment    bool            `db:"has_payment" json:"-"`
	Status        OrderStatus     `db:"-" json:"status"`
}

// OrderSummary is the condensed listing used by the summary report.
type OrderSummary struct {
	Id           int             `db:"id" json:"orderId"`
	OrderDate    time.Time       `db:"order_date" json:"orderDate"`
	SupplierName string          `db:"supplier_name" json:"supplierName"`
	CustomerName string          `db:"customer_name" json:"customerName"`
	TotalAmount  decimal.Decimal `db:"total_amount" json:"totalAmount"`
}

// OrderItem is one line of an order with its priced extension.
type OrderItem struct {
	Id          int             `db:"id" json:"orderItemId"`
	ProductId   int             `db:"product_id" json:"productId"`
	ProductName string          `db:"product_name" json:"productName"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"totalPrice"`
}

type OrderItemInsert struct {
	ProductId int `json:"productId"`
	Quantity  int `json:"quantity"`
}

func (oi *OrderItemInsert) Validate() error {
	if oi.ProductId <= 0 {
		return fmt.Errorf("product id must be positive, got %d", oi.ProductId)
	}
	if oi.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", oi.Quantity)
	}
	return nil
}

type OrderNew struct {
	OrderDate  time.Time         `json:"orderDate"`
	SupplierId int               `json:"supplierId"`
	CustomerId int               `json:"customerId"`
	Items      []OrderItemInsert `json:"items"`
}

func (on *OrderNew) Validate() error {
	if on.SupplierId <= 0 {
		return fmt.Errorf("supplier id must be positive, got %d", on.SupplierId)
	}
	if on.CustomerId <= 0 {
		return fmt.Errorf("customer id must be positive, got %d", on.CustomerId)
	}
	if len(on.Items) == 0 {
		return fmt.Errorf("order must contain at least one item")
	}
	for i := range on.Items {
		if err := on.Items[i].Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// OrderUpdate carries a partial header update. A non-nil Items slice
// replaces every existing line.
type OrderUpdate struct {
	OrderDate  *time.Time        `json:"orderDate"`
	SupplierId *int              `json:"supplierId"`
	Items      []OrderItemInsert `json:"items"`
}

func (ou *OrderUpdate) Validate() error {
	if ou.SupplierId != nil && *ou.SupplierId <= 0 {
		return fmt.Errorf("supplier id must be positive, got %d", *ou.SupplierId)
	}
	for i := range ou.Items {
		if err := ou.Items[i].Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

// OrderFilter carries the optional listing constraints. Zero values
// impose no constraint.
type OrderFilter struct {
	From       *time.Time
	To         *time.Time
	CustomerId *int
	SupplierId *int
}
