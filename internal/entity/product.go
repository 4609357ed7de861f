package entity

import (
	"fmt"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/shopspring/decimal"
)

// Product is the read projection of a product joined with its inventory
// row. StockStatus is computed by the result mapper, not scanned.
type Product struct {
	Id           int             `db:"id" json:"productId"`
	Name         string          `db:"name" json:"name"`
	Description  string          `db:"description" json:"description"`
	Price        decimal.Decimal `db:"price" json:"price"`
	CurrentStock int             `db:"current_stock" json:"currentStock"`
	StockStatus  StockStatus     `db:"-" json:"stockStatus"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

type ProductInsert struct {
	Name        string          `json:"name" valid:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

func (p *ProductInsert) Validate() error {
	if _, err := govalidator.ValidateStruct(p); err != nil {
		return err
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", p.Price)
	}
	return nil
}

// ProductUpdate carries a partial update; nil fields are left untouched.
type ProductUpdate struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
}

func (p *ProductUpdate) Validate() error {
	if p.Name == nil && p.Description == nil && p.Price == nil {
		return fmt.Errorf("no fields to update")
	}
	if p.Price != nil && !p.Price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", p.Price)
	}
	return nil
}
