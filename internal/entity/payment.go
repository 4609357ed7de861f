package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the payment listing projection joined with order and
// customer context.
type Payment struct {
	Id           int             `db:"id" json:"paymentId"`
	OrderId      int             `db:"order_id" json:"orderId"`
	PaymentDate  time.Time       `db:"payment_date" json:"paymentDate"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	OrderDate    time.Time       `db:"order_date" json:"orderDate"`
	CustomerName string          `db:"customer_name" json:"customerName"`
}

type PaymentInsert struct {
	OrderId     int             `json:"orderId"`
	PaymentDate time.Time       `json:"paymentDate"`
	Amount      decimal.Decimal `json:"amount"`
}

func (pi *PaymentInsert) Validate() error {
	if pi.OrderId <= 0 {
		return fmt.Errorf("order id must be positive, got %d", pi.OrderId)
	}
	if !pi.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", pi.Amount)
	}
	return nil
}

// PaymentBucket is one row of the daily/monthly payment analysis.
type PaymentBucket struct {
	Date   string          `db:"bucket_date" json:"date"`
	Period string          `db:"period" json:"period"`
	Total  decimal.Decimal `db:"total_payments" json:"totalPayments"`
}

// PaymentFilter carries optional date bounds for the payment listing.
type PaymentFilter struct {
	From *time.Time
	To   *time.Time
}
