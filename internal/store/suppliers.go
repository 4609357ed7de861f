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

type supplierStore struct {
	*PGStore
}

// Suppliers returns an object implementing supplier-related operations.
func (ps *PGStore) Suppliers() dependency.Suppliers {
	return &supplierStore{PGStore: ps}
}

// deliveryDaysExpr is the fractional day span between order placement
// and shipment.
const deliveryDaysExpr = `EXTRACT(EPOCH FROM (sh.shipment_date - o.order_date)) / 86400`

// The listing average counts unshipped orders as zero days, matching the
// legacy report the listing replaces. The performance ranking below uses
// shipped orders only.
const supplierSelect = `
	SELECT s.id, s.name, COALESCE(s.contact_info, '') AS contact_info,
		COUNT(DISTINCT o.id) AS order_count,
		COALESCE(AVG(COALESCE(` + deliveryDaysExpr + `, 0)), 0) AS avg_delivery_days
	FROM supplier s
	LEFT JOIN orders o ON o.supplier_id = s.id
	LEFT JOIN shipment sh ON sh.order_id = o.id
`

const supplierGroup = ` GROUP BY s.id, s.name, s.contact_info`

func (ps *PGStore) GetSuppliers(ctx context.Context) ([]entity.Supplier, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	suppliers, err := QueryListNamed[entity.Supplier](ctx, ps.DB(),
		supplierSelect+supplierGroup+` ORDER BY s.name, s.id`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get suppliers: %w", err)
	}
	return suppliers, nil
}

func (ps *PGStore) GetSupplierById(ctx context.Context, id int) (*entity.Supplier, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	s, err := QueryNamedOne[entity.Supplier](ctx, ps.DB(),
		supplierSelect+` WHERE s.id = :id`+supplierGroup, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get supplier by id: %w", err)
	}
	return &s, nil
}

// GetSupplierPerformance ranks suppliers beating the fleet-wide average
// delivery time, computed over shipped orders only.
func (ps *PGStore) GetSupplierPerformance(ctx context.Context) ([]entity.SupplierPerformance, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	WITH shipped AS (
		SELECT o.supplier_id, ` + deliveryDaysExpr + ` AS days
		FROM orders o
		JOIN shipment sh ON sh.order_id = o.id
		WHERE sh.shipment_date IS NOT NULL
	)
	SELECT s.id, s.name, COUNT(*) AS order_count, AVG(d.days) AS avg_delivery_days
	FROM shipped d
	JOIN supplier s ON s.id = d.supplier_id
	GROUP BY s.id, s.name
	HAVING AVG(d.days) < (SELECT AVG(days) FROM shipped)
	ORDER BY avg_delivery_days, s.id`

	perf, err := QueryListNamed[entity.SupplierPerformance](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get supplier performance: %w", err)
	}
	return perf, nil
}

func (ps *PGStore) SearchSuppliers(ctx context.Context, term string) ([]entity.Supplier, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := supplierSelect + `
	WHERE s.name ILIKE :pattern OR s.contact_info ILIKE :pattern` +
		supplierGroup + ` ORDER BY s.name, s.id`

	suppliers, err := QueryListNamed[entity.Supplier](ctx, ps.DB(), query,
		map[string]any{"pattern": "%" + term + "%"})
	if err != nil {
		return nil, fmt.Errorf("can't search suppliers: %w", err)
	}
	return suppliers, nil
}

func (ps *PGStore) AddSupplier(ctx context.Context, ins *entity.AccountInsert) (*entity.Supplier, error) {
	if err := ins.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	id, err := ExecNamedReturningId(ctx, ps.DB(), `
	INSERT INTO supplier (name, contact_info)
	VALUES (:name, :contactInfo)
	RETURNING id`, map[string]any{
		"name":        ins.Name,
		"contactInfo": ins.ContactInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("can't insert supplier: %w", err)
	}

	return ps.GetSupplierById(ctx, id)
}

func (ps *PGStore) UpdateSupplier(ctx context.Context, id int, upd *entity.AccountUpdate) (*entity.Supplier, error) {
	sets, params := accountUpdateSets(id, upd)
	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := fmt.Sprintf("UPDATE supplier SET %s WHERE id = :id", strings.Join(sets, ", "))
	affected, err := ExecNamedAffected(ctx, ps.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("can't update supplier: %w", err)
	}
	if affected == 0 {
		return nil, gerr.ErrNotFound
	}

	return ps.GetSupplierById(ctx, id)
}

// DeleteSupplierById refuses to remove a supplier with order history.
func (ps *PGStore) DeleteSupplierById(ctx context.Context, id int) error {
	return ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		count, err := QueryCountNamed(ctx, rep.DB(), `
		SELECT COUNT(*) FROM orders WHERE supplier_id = :id`,
			map[string]any{"id": id})
		if err != nil {
			return fmt.Errorf("can't count supplier orders: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: supplier has %d orders", gerr.ErrHasDependents, count)
		}

		affected, err := ExecNamedAffected(ctx, rep.DB(), `DELETE FROM supplier WHERE id = :id`,
			map[string]any{"id": id})
		if err != nil {
			if ps.IsErrForeignKeyViolation(err) {
				return fmt.Errorf("%w: supplier is still referenced", gerr.ErrHasDependents)
			}
			return fmt.Errorf("can't delete supplier: %w", err)
		}
		if affected == 0 {
			return gerr.ErrNotFound
		}
		return nil
	})
}
