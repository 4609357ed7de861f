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

type shipmentStore struct {
	*PGStore
}

// Shipments returns an object implementing shipment-related operations.
func (ps *PGStore) Shipments() dependency.Shipments {
	return &shipmentStore{PGStore: ps}
}

const shipmentSelect = `
	SELECT sh.id, sh.order_id, sh.shipment_date, o.order_date,
		COALESCE(EXTRACT(EPOCH FROM (sh.shipment_date - o.order_date)) / 86400, 0) AS delivery_days
	FROM shipment sh
	JOIN orders o ON o.id = sh.order_id
`

func (ps *PGStore) GetShipments(ctx context.Context) ([]entity.Shipment, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	shipments, err := QueryListNamed[entity.Shipment](ctx, ps.DB(),
		shipmentSelect+` ORDER BY o.order_date DESC, sh.id DESC`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get shipments: %w", err)
	}
	if len(shipments) == 0 {
		return shipments, nil
	}

	ids := make([]int, 0, len(shipments))
	for _, sh := range shipments {
		ids = append(ids, sh.Id)
	}
	items, err := ps.shipmentItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range shipments {
		shipments[i].Items = items[shipments[i].Id]
	}
	return shipments, nil
}

func (ps *PGStore) shipmentItems(ctx context.Context, shipmentIds []int) (map[int][]entity.ShipmentItem, error) {
	query := `
	SELECT si.id, si.shipment_id, si.product_id, p.name AS product_name, si.quantity
	FROM shipment_item si
	JOIN product p ON p.id = si.product_id
	WHERE si.shipment_id IN (:ids)
	ORDER BY si.id`

	rows, err := QueryListNamed[entity.ShipmentItem](ctx, ps.DB(), query,
		map[string]any{"ids": shipmentIds})
	if err != nil {
		return nil, fmt.Errorf("can't get shipment items: %w", err)
	}
	byShipment := make(map[int][]entity.ShipmentItem, len(shipmentIds))
	for _, r := range rows {
		byShipment[r.ShipmentId] = append(byShipment[r.ShipmentId], r)
	}
	return byShipment, nil
}

// lateDeliveryDays is the span beyond which a shipped order counts as
// late.
const lateDeliveryDays = 7

// GetLateShipments reports orders that never shipped together with
// orders that took longer than a week, slowest first.
func (ps *PGStore) GetLateShipments(ctx context.Context) ([]entity.LateShipment, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT o.id AS order_id, o.order_date, sh.id AS shipment_id, sh.shipment_date,
		COALESCE(EXTRACT(EPOCH FROM (sh.shipment_date - o.order_date)) / 86400, 0) AS delivery_days
	FROM orders o
	LEFT JOIN shipment sh ON sh.order_id = o.id
	WHERE sh.id IS NULL
		OR sh.shipment_date IS NULL
		OR EXTRACT(EPOCH FROM (sh.shipment_date - o.order_date)) / 86400 > :late
	ORDER BY delivery_days DESC, o.order_date, o.id`

	late, err := QueryListNamed[entity.LateShipment](ctx, ps.DB(), query,
		map[string]any{"late": lateDeliveryDays})
	if err != nil {
		return nil, fmt.Errorf("can't get late shipments: %w", err)
	}
	return late, nil
}

func (ps *PGStore) GetShipmentById(ctx context.Context, id int) (*entity.Shipment, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	sh, err := QueryNamedOne[entity.Shipment](ctx, ps.DB(),
		shipmentSelect+` WHERE sh.id = :id`, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get shipment by id: %w", err)
	}

	items, err := ps.shipmentItems(ctx, []int{sh.Id})
	if err != nil {
		return nil, err
	}
	sh.Items = items[sh.Id]
	return &sh, nil
}

func insertShipmentItems(ctx context.Context, rep dependency.Repository, shipmentId int, items []entity.ShipmentItemInsert) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]map[string]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, map[string]any{
			"shipment_id": shipmentId,
			"product_id":  it.ProductId,
			"quantity":    it.Quantity,
		})
	}
	return BulkInsert(ctx, rep.DB(), "shipment_item",
		[]string{"shipment_id", "product_id", "quantity"}, rows)
}

// CreateShipment records the shipment header and its items in one
// transaction. An order carries at most one shipment.
func (ps *PGStore) CreateShipment(ctx context.Context, shipmentNew *entity.ShipmentNew) (*entity.Shipment, error) {
	if err := shipmentNew.Validate(); err != nil {
		return nil, err
	}

	var id int
	err := ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		count, err := QueryCountNamed(ctx, rep.DB(),
			`SELECT COUNT(*) FROM orders WHERE id = :id`,
			map[string]any{"id": shipmentNew.OrderId})
		if err != nil {
			return fmt.Errorf("can't check order existence: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: order %d", gerr.ErrNotFound, shipmentNew.OrderId)
		}

		existing, err := QueryCountNamed(ctx, rep.DB(),
			`SELECT COUNT(*) FROM shipment WHERE order_id = :id`,
			map[string]any{"id": shipmentNew.OrderId})
		if err != nil {
			return fmt.Errorf("can't count order shipments: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: order %d is already shipped", gerr.ErrHasDependents, shipmentNew.OrderId)
		}

		sid, err := ExecNamedReturningId(ctx, rep.DB(), `
		INSERT INTO shipment (order_id, shipment_date, created_at)
		VALUES (:orderId, :shipmentDate, :now)
		RETURNING id`, map[string]any{
			"orderId":      shipmentNew.OrderId,
			"shipmentDate": shipmentNew.ShipmentDate,
			"now":          rep.Now(),
		})
		if err != nil {
			return fmt.Errorf("can't insert shipment: %w", err)
		}

		if err := insertShipmentItems(ctx, rep, sid, shipmentNew.Items); err != nil {
			return fmt.Errorf("can't insert shipment items: %w", err)
		}
		id = sid
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ps.GetShipmentById(ctx, id)
}

// UpdateShipment patches the shipment date and, when Items is non-nil,
// replaces every item.
func (ps *PGStore) UpdateShipment(ctx context.Context, id int, upd *entity.ShipmentUpdate) (*entity.Shipment, error) {
	err := ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		sets := make([]string, 0, 1)
		params := map[string]any{"id": id}
		if upd.ShipmentDate != nil {
			sets = append(sets, "shipment_date = :shipmentDate")
			params["shipmentDate"] = *upd.ShipmentDate
		}

		if len(sets) > 0 {
			query := fmt.Sprintf("UPDATE shipment SET %s WHERE id = :id", strings.Join(sets, ", "))
			affected, err := ExecNamedAffected(ctx, rep.DB(), query, params)
			if err != nil {
				return fmt.Errorf("can't update shipment: %w", err)
			}
			if affected == 0 {
				return gerr.ErrNotFound
			}
		} else {
			count, err := QueryCountNamed(ctx, rep.DB(),
				`SELECT COUNT(*) FROM shipment WHERE id = :id`, map[string]any{"id": id})
			if err != nil {
				return fmt.Errorf("can't check shipment existence: %w", err)
			}
			if count == 0 {
				return gerr.ErrNotFound
			}
		}

		if upd.Items != nil {
			err := ExecNamed(ctx, rep.DB(), `DELETE FROM shipment_item WHERE shipment_id = :id`,
				map[string]any{"id": id})
			if err != nil {
				return fmt.Errorf("can't clear shipment items: %w", err)
			}
			if err := insertShipmentItems(ctx, rep, id, upd.Items); err != nil {
				return fmt.Errorf("can't replace shipment items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ps.GetShipmentById(ctx, id)
}

func (ps *PGStore) DeleteShipment(ctx context.Context, id int) error {
	return ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		err := ExecNamed(ctx, rep.DB(), `DELETE FROM shipment_item WHERE shipment_id = :id`,
			map[string]any{"id": id})
		if err != nil {
			return fmt.Errorf("can't delete shipment items: %w", err)
		}

		affected, err := ExecNamedAffected(ctx, rep.DB(), `DELETE FROM shipment WHERE id = :id`,
			map[string]any{"id": id})
		if err != nil {
			return fmt.Errorf("can't delete shipment: %w", err)
		}
		if affected == 0 {
			return gerr.ErrNotFound
		}
		return nil
	})
}
