package entity

import (
	"fmt"
	"time"
)

// Shipment is the shipment listing projection. ShipmentDate is nil
// until the order actually ships; DeliveryDays is zero in that case.
type Shipment struct {
	Id           int            `db:"id" json:"shipmentId"`
	OrderId      int            `db:"order_id" json:"orderId"`
	ShipmentDate *time.Time     `db:"shipment_date" json:"shipmentDate"`
	OrderDate    time.Time      `db:"order_date" json:"orderDate"`
	DeliveryDays float64        `db:"delivery_days" json:"deliveryDays"`
	Items        []ShipmentItem `db:"-" json:"items"`
}

type ShipmentItem struct {
	Id          int    `db:"id" json:"shipmentItemId"`
	ShipmentId  int    `db:"shipment_id" json:"-"`
	ProductId   int    `db:"product_id" json:"productId"`
	ProductName string `db:"product_name" json:"productName"`
	Quantity    int    `db:"quantity" json:"quantity"`
}

// LateShipment reports orders that are unshipped or took more than
// seven days to ship.
type LateShipment struct {
	OrderId      int        `db:"order_id" json:"orderId"`
	OrderDate    time.Time  `db:"order_date" json:"orderDate"`
	ShipmentId   *int       `db:"shipment_id" json:"shipmentId"`
	ShipmentDate *time.Time `db:"shipment_date" json:"shipmentDate"`
	DeliveryDays float64    `db:"delivery_days" json:"deliveryDays"`
}

type ShipmentItemInsert struct {
	ProductId int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type ShipmentNew struct {
	OrderId      int                  `json:"orderId"`
	ShipmentDate *time.Time           `json:"shipmentDate"`
	Items        []ShipmentItemInsert `json:"items"`
}

func (sn *ShipmentNew) Validate() error {
	if sn.OrderId <= 0 {
		return fmt.Errorf("order id must be positive, got %d", sn.OrderId)
	}
	for i, item := range sn.Items {
		if item.ProductId <= 0 {
			return fmt.Errorf("item %d: product id must be positive", i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("item %d: quantity must be positive", i)
		}
	}
	return nil
}

// ShipmentUpdate carries a partial update. A non-nil Items slice
// replaces every existing line.
type ShipmentUpdate struct {
	ShipmentDate *time.Time           `json:"shipmentDate"`
	Items        []ShipmentItemInsert `json:"items"`
}
