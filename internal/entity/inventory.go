package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is the inventory listing projection.
type InventoryItem struct {
	Id          int             `db:"id" json:"inventoryId"`
	ProductId   int             `db:"product_id" json:"productId"`
	ProductName string          `db:"product_name" json:"productName"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Quantity    int             `db:"quantity" json:"quantity"`
	Status      StockStatus     `db:"-" json:"status"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updatedAt"`
}

type InventoryUpdate struct {
	Quantity int `json:"quantity"`
}

func (iu *InventoryUpdate) Validate() error {
	if iu.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative, got %d", iu.Quantity)
	}
	return nil
}
