package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/invtrack/inventory-manager/internal/dependency"
	"github.com/invtrack/inventory-manager/internal/entity"
	"github.com/invtrack/inventory-manager/internal/gerr"
)

type inventoryStore struct {
	*PGStore
}

// Inventory returns an object implementing inventory-related operations.
func (ps *PGStore) Inventory() dependency.Inventory {
	return &inventoryStore{PGStore: ps}
}

const inventorySelect = `
	SELECT i.id, i.product_id, p.name AS product_name, p.price,
		i.quantity, i.updated_at
	FROM inventory i
	JOIN product p ON p.id = i.product_id
`

func classifyInventory(items []entity.InventoryItem) []entity.InventoryItem {
	for i := range items {
		items[i].Status = entity.StockStatusFor(items[i].Quantity)
	}
	return items
}

func (ps *PGStore) GetInventory(ctx context.Context) ([]entity.InventoryItem, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	items, err := QueryListNamed[entity.InventoryItem](ctx, ps.DB(),
		inventorySelect+` ORDER BY p.name, i.id`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get inventory: %w", err)
	}
	return classifyInventory(items), nil
}

// GetLowStock lists items strictly below the low-stock threshold,
// emptiest first.
func (ps *PGStore) GetLowStock(ctx context.Context) ([]entity.InventoryItem, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	items, err := QueryListNamed[entity.InventoryItem](ctx, ps.DB(),
		inventorySelect+` WHERE i.quantity < :threshold ORDER BY i.quantity, i.id`,
		map[string]any{"threshold": entity.LowStockThreshold})
	if err != nil {
		return nil, fmt.Errorf("can't get low stock items: %w", err)
	}
	return classifyInventory(items), nil
}

func (ps *PGStore) GetInventoryByProduct(ctx context.Context, productId int) (*entity.InventoryItem, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	item, err := QueryNamedOne[entity.InventoryItem](ctx, ps.DB(),
		inventorySelect+` WHERE i.product_id = :productId`,
		map[string]any{"productId": productId})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get inventory by product: %w", err)
	}
	item.Status = entity.StockStatusFor(item.Quantity)
	return &item, nil
}

// SetQuantity upserts the inventory row of a product. The product must
// exist; inventory rows never outlive their product.
func (ps *PGStore) SetQuantity(ctx context.Context, productId int, quantity int) (*entity.InventoryItem, error) {
	upd := entity.InventoryUpdate{Quantity: quantity}
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	err := ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		count, err := QueryCountNamed(ctx, rep.DB(), `
		SELECT COUNT(*) FROM product WHERE id = :productId`,
			map[string]any{"productId": productId})
		if err != nil {
			return fmt.Errorf("can't check product existence: %w", err)
		}
		if count == 0 {
			return gerr.ErrNotFound
		}

		return ExecNamed(ctx, rep.DB(), `
		INSERT INTO inventory (product_id, quantity, updated_at)
		VALUES (:productId, :quantity, :now)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = :quantity, updated_at = :now`, map[string]any{
			"productId": productId,
			"quantity":  quantity,
			"now":       rep.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return ps.GetInventoryByProduct(ctx, productId)
}
