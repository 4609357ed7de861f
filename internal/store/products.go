package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/invtrack/inventory-manager/internal/dependency"
	"github.com/invtrack/inventory-manager/internal/entity"
	"github.com/invtrack/inventory-manager/internal/gerr"
)

type productStore struct {
	*PGStore
}

// Products returns an object implementing product-related operations.
func (ps *PGStore) Products() dependency.Products {
	return &productStore{PGStore: ps}
}

const productSelect = `
	SELECT p.id, p.name, COALESCE(p.description, '') AS description, p.price,
		COALESCE(i.quantity, 0) AS current_stock,
		p.created_at, p.updated_at
	FROM product p
	LEFT JOIN inventory i ON i.product_id = p.id
`

func (ps *PGStore) GetProducts(ctx context.Context) ([]entity.Product, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	prds, err := QueryListNamed[entity.Product](ctx, ps.DB(),
		productSelect+` ORDER BY p.name, p.id`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get products: %w", err)
	}
	for i := range prds {
		prds[i].StockStatus = entity.StockStatusFor(prds[i].CurrentStock)
	}
	return prds, nil
}

func (ps *PGStore) GetProductById(ctx context.Context, id int) (*entity.Product, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	prd, err := QueryNamedOne[entity.Product](ctx, ps.DB(),
		productSelect+` WHERE p.id = :id`, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get product by id: %w", err)
	}
	prd.StockStatus = entity.StockStatusFor(prd.CurrentStock)
	return &prd, nil
}

func (ps *PGStore) SearchProducts(ctx context.Context, term string) ([]entity.Product, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := productSelect + `
	WHERE p.name ILIKE :pattern OR p.description ILIKE :pattern
	ORDER BY p.name, p.id`

	prds, err := QueryListNamed[entity.Product](ctx, ps.DB(), query, map[string]any{
		"pattern": "%" + term + "%",
	})
	if err != nil {
		return nil, fmt.Errorf("can't search products: %w", err)
	}
	for i := range prds {
		prds[i].StockStatus = entity.StockStatusFor(prds[i].CurrentStock)
	}
	return prds, nil
}

// AddProduct inserts the product together with an empty inventory row so
// stock projections never miss a product.
func (ps *PGStore) AddProduct(ctx context.Context, prd *entity.ProductInsert) (*entity.Product, error) {
	if err := prd.Validate(); err != nil {
		return nil, err
	}

	var id int
	err := ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		query := `
		INSERT INTO product (name, description, price, created_at, updated_at)
		VALUES (:name, :description, :price, :now, :now)
		RETURNING id`
		pid, err := ExecNamedReturningId(ctx, rep.DB(), query, map[string]any{
			"name":        prd.Name,
			"description": prd.Description,
			"price":       prd.Price,
			"now":         rep.Now(),
		})
		if err != nil {
			return fmt.Errorf("can't insert product: %w", err)
		}

		err = ExecNamed(ctx, rep.DB(), `
		INSERT INTO inventory (product_id, quantity, updated_at)
		VALUES (:productId, 0, :now)`, map[string]any{
			"productId": pid,
			"now":       rep.Now(),
		})
		if err != nil {
			return fmt.Errorf("can't insert inventory row: %w", err)
		}
		id = pid
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ps.GetProductById(ctx, id)
}

func (ps *PGStore) UpdateProduct(ctx context.Context, id int, upd *entity.ProductUpdate) (*entity.Product, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	sets := make([]string, 0, 4)
	params := map[string]any{"id": id, "now": ps.Now()}
	if upd.Name != nil {
		sets = append(sets, "name = :name")
		params["name"] = *upd.Name
	}
	if upd.Description != nil {
		sets = append(sets, "description = :description")
		params["description"] = *upd.Description
	}
	if upd.Price != nil {
		sets = append(sets, "price = :price")
		params["price"] = *upd.Price
	}
	sets = append(sets, "updated_at = :now")

	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := fmt.Sprintf("UPDATE product SET %s WHERE id = :id", strings.Join(sets, ", "))
	affected, err := ExecNamedAffected(ctx, ps.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("can't update product: %w", err)
	}
	if affected == 0 {
		return nil, gerr.ErrNotFound
	}

	return ps.GetProductById(ctx, id)
}

// DeleteProductById removes the product and its inventory row. Order
// lines referencing the product keep it alive.
func (ps *PGStore) DeleteProductById(ctx context.Context, id int) error {
	return ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		count, err := QueryCountNamed(ctx, rep.DB(), `
		SELECT COUNT(*) FROM order_item WHERE product_id = :id`,
			map[string]any{"id": id})
		if err != nil {
			return fmt.Errorf("can't count product order lines: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: product is referenced by %d order items", gerr.ErrHasDependents, count)
		}

		err = ExecNamed(ctx, rep.DB(), `DELETE FROM inventory WHERE product_id = :id`,
			map[string]any{"id": id})
		if err != nil {
			return fmt.Errorf("can't delete inventory row: %w", err)
		}

		affected, err := ExecNamedAffected(ctx, rep.DB(), `DELETE FROM product WHERE id = :id`,
			map[string]any{"id": id})
		if err != nil {
			if ps.IsErrForeignKeyViolation(err) {
				return fmt.Errorf("%w: product is still referenced", gerr.ErrHasDependents)
			}
			return fmt.Errorf("can't delete product: %w", err)
		}
		if affected == 0 {
			return gerr.ErrNotFound
		}
		return nil
	})
}
