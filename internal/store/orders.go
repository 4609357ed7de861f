package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/invtrack/inventory-manager/internal/dependency"
	"github.com/invtrack/inventory-manager/internal/entity"
	"github.com/invtrack/inventory-manager/internal/gerr"
	"github.com/shopspring/decimal"
)

type orderStore struct {
	*PGStore
}

// Orders returns an object implementing order-related operations.
func (ps *PGStore) Orders() dependency.Orders {
	return &orderStore{PGStore: ps}
}

const orderSelect = `
	SELECT o.id, o.uuid, o.order_date,
		o.supplier_id, s.name AS supplier_name,
		co.customer_id, c.name AS customer_name,
		COUNT(oi.id) AS total_items,
		COALESCE(SUM(oi.quantity), 0) AS total_quantity,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_amount,
		COALESCE((SELECT SUM(p.amount) FROM payment p WHERE p.order_id = o.id), 0) AS amount_paid,
		EXISTS (SELECT 1 FROM shipment sh WHERE sh.order_id = o.id) AS has_shipment,
		EXISTS (SELECT 1 FROM payment p WHERE p.order_id = o.id) AS has_payment
	FROM orders o
	JOIN supplier s ON s.id = o.supplier_id
	JOIN customer_order co ON co.order_id = o.id
	JOIN customer c ON c.id = co.customer_id
	JOIN order_item oi ON oi.order_id = o.id
`

const orderGroup = ` GROUP BY o.id, o.uuid, o.order_date, o.supplier_id, s.name, co.customer_id, c.name`

func classifyOrders(orders []entity.Order) []entity.Order {
	for i := range orders {
		orders[i].Status = entity.OrderStatusFor(orders[i].HasShipment, orders[i].HasPayment)
	}
	return orders
}

func (ps *PGStore) GetOrders(ctx context.Context, f *entity.OrderFilter) ([]entity.Order, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	flt := NewFilter()
	if f != nil {
		flt.From("o.order_date", "from", f.From).
			To("o.order_date", "to", f.To).
			Equal("co.customer_id", "customerId", f.CustomerId).
			Equal("o.supplier_id", "supplierId", f.SupplierId)
	}

	query := orderSelect + flt.Where() + orderGroup + ` ORDER BY o.order_date DESC, o.id DESC`
	orders, err := QueryListNamed[entity.Order](ctx, ps.DB(), query, flt.Params(nil))
	if err != nil {
		return nil, fmt.Errorf("can't get orders: %w", err)
	}
	return classifyOrders(orders), nil
}

func (ps *PGStore) GetOrderSummary(ctx context.Context) ([]entity.OrderSummary, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT o.id, o.order_date, s.name AS supplier_name, c.name AS customer_name,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_amount
	FROM orders o
	JOIN supplier s ON s.id = o.supplier_id
	JOIN customer_order co ON co.order_id = o.id
	JOIN customer c ON c.id = co.customer_id
	JOIN order_item oi ON oi.order_id = o.id
	GROUP BY o.id, o.order_date, s.name, c.name
	ORDER BY o.order_date DESC, o.id DESC`

	summary, err := QueryListNamed[entity.OrderSummary](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get order summary: %w", err)
	}
	return summary, nil
}

// GetOrderStatusList is the unfiltered listing with derived statuses,
// newest first.
func (ps *PGStore) GetOrderStatusList(ctx context.Context) ([]entity.Order, error) {
	return ps.GetOrders(ctx, nil)
}

func (ps *PGStore) GetOrderById(ctx context.Context, id int) (*entity.Order, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	o, err := QueryNamedOne[entity.Order](ctx, ps.DB(),
		orderSelect+` WHERE o.id = :id`+orderGroup, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get order by id: %w", err)
	}
	o.Status = entity.OrderStatusFor(o.HasShipment, o.HasPayment)
	return &o, nil
}

func (ps *PGStore) GetOrderItems(ctx context.Context, orderId int) ([]entity.OrderItem, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	count, err := QueryCountNamed(ctx, ps.DB(),
		`SELECT COUNT(*) FROM orders WHERE id = :id`, map[string]any{"id": orderId})
	if err != nil {
		return nil, fmt.Errorf("can't check order existence: %w", err)
	}
	if count == 0 {
		return nil, gerr.ErrNotFound
	}

	query := `
	SELECT oi.id, oi.product_id, p.name AS product_name, oi.quantity, oi.unit_price,
		oi.quantity * oi.unit_price AS total_price
	FROM order_item oi
	JOIN product p ON p.id = oi.product_id
	WHERE oi.order_id = :orderId
	ORDER BY oi.id`

	items, err := QueryListNamed[entity.OrderItem](ctx, ps.DB(), query,
		map[string]any{"orderId": orderId})
	if err != nil {
		return nil, fmt.Errorf("can't get order items: %w", err)
	}
	return items, nil
}

// productPrices resolves current unit prices for the given products. A
// missing product surfaces as gerr.ErrNotFound.
func productPrices(ctx context.Context, rep dependency.Repository, productIds []int) (map[int]decimal.Decimal, error) {
	type row struct {
		Id    int             `db:"id"`
		Price decimal.Decimal `db:"price"`
	}
	rows, err := QueryListNamed[row](ctx, rep.DB(),
		`SELECT id, price FROM product WHERE id IN (:ids)`,
		map[string]any{"ids": productIds})
	if err != nil {
		return nil, fmt.Errorf("can't get product prices: %w", err)
	}
	prices := make(map[int]decimal.Decimal, len(rows))
	for _, r := range rows {
		prices[r.Id] = r.Price
	}
	for _, id := range productIds {
		if _, ok := prices[id]; !ok {
			return nil, fmt.Errorf("%w: product %d", gerr.ErrNotFound, id)
		}
	}
	return prices, nil
}

func insertOrderItems(ctx context.Context, rep dependency.Repository, orderId int, items []entity.OrderItemInsert) error {
	productIds := make([]int, 0, len(items))
	for _, it := range items {
		productIds = append(productIds, it.ProductId)
	}
	prices, err := productPrices(ctx, rep, productIds)
	if err != nil {
		return err
	}

	rows := make([]map[string]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, map[string]any{
			"order_id":   orderId,
			"product_id": it.ProductId,
			"quantity":   it.Quantity,
			"unit_price": prices[it.ProductId],
		})
	}
	return BulkInsert(ctx, rep.DB(), "order_item",
		[]string{"order_id", "product_id", "quantity", "unit_price"}, rows)
}

// CreateOrder writes the header, the customer association and every
// line in one serializable transaction, so a failed line insert never
// leaves a dangling header. Unit prices are snapshotted from the
// product catalog at creation time.
func (ps *PGStore) CreateOrder(ctx context.Context, orderNew *entity.OrderNew) (*entity.Order, error) {
	if err := orderNew.Validate(); err != nil {
		return nil, err
	}

	orderDate := orderNew.OrderDate
	var id int
	err := ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		if orderDate.IsZero() {
			orderDate = rep.Now()
		}

		for table, ref := range map[string]int{
			"supplier": orderNew.SupplierId,
			"customer": orderNew.CustomerId,
		} {
			count, err := QueryCountNamed(ctx, rep.DB(),
				fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = :id", table),
				map[string]any{"id": ref})
			if err != nil {
				return fmt.Errorf("can't check %s existence: %w", table, err)
			}
			if count == 0 {
				return fmt.Errorf("%w: %s %d", gerr.ErrNotFound, table, ref)
			}
		}

		oid, err := ExecNamedReturningId(ctx, rep.DB(), `
		INSERT INTO orders (uuid, order_date, supplier_id, created_at)
		VALUES (:uuid, :orderDate, :supplierId, :now)
		RETURNING id`, map[string]any{
			"uuid":       uuid.New().String(),
			"orderDate":  orderDate,
			"supplierId": orderNew.SupplierId,
			"now":        rep.Now(),
		})
		if err != nil {
			return fmt.Errorf("can't insert order: %w", err)
		}

		err = ExecNamed(ctx, rep.DB(), `
		INSERT INTO customer_order (customer_id, order_id)
		VALUES (:customerId, :orderId)`, map[string]any{
			"customerId": orderNew.CustomerId,
			"orderId":    oid,
		})
		if err != nil {
			return fmt.Errorf("can't link order to customer: %w", err)
		}

		if err := insertOrderItems(ctx, rep, oid, orderNew.Items); err != nil {
			return fmt.Errorf("can't insert order items: %w", err)
		}
		id = oid
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ps.GetOrderById(ctx, id)
}

// UpdateOrder patches the header and, when Items is non-nil, replaces
// every line. All of it runs in one transaction.
func (ps *PGStore) UpdateOrder(ctx context.Context, id int, upd *entity.OrderUpdate) (*entity.Order, error) {
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	err := ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		sets := make([]string, 0, 2)
		params := map[string]any{"id": id}
		if upd.OrderDate != nil {
			sets = append(sets, "order_date = :orderDate")
			params["orderDate"] = *upd.OrderDate
		}
		if upd.SupplierId != nil {
			sets = append(sets, "supplier_id = :supplierId")
			params["supplierId"] = *upd.SupplierId
		}

		if len(sets) > 0 {
			query := fmt.Sprintf("UPDATE orders SET %s WHERE id = :id", strings.Join(sets, ", "))
			affected, err := ExecNamedAffected(ctx, rep.DB(), query, params)
			if err != nil {
				return fmt.Errorf("can't update order: %w", err)
			}
			if affected == 0 {
				return gerr.ErrNotFound
			}
		} else {
			count, err := QueryCountNamed(ctx, rep.DB(),
				`SELECT COUNT(*) FROM orders WHERE id = :id`, map[string]any{"id": id})
			if err != nil {
				return fmt.Errorf("can't check order existence: %w", err)
			}
			if count == 0 {
				return gerr.ErrNotFound
			}
		}

		if upd.Items != nil {
			err := ExecNamed(ctx, rep.DB(), `DELETE FROM order_item WHERE order_id = :id`,
				map[string]any{"id": id})
			if err != nil {
				return fmt.Errorf("can't clear order items: %w", err)
			}
			if err := insertOrderItems(ctx, rep, id, upd.Items); err != nil {
				return fmt.Errorf("can't replace order items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ps.GetOrderById(ctx, id)
}

// DeleteOrder removes the order with its lines, links and payments.
// Shipped orders are immutable history and stay put.
func (ps *PGStore) DeleteOrder(ctx context.Context, id int) error {
	return ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		shipped, err := QueryCountNamed(ctx, rep.DB(),
			`SELECT COUNT(*) FROM shipment WHERE order_id = :id`, map[string]any{"id": id})
		if err != nil {
			return fmt.Errorf("can't count order shipments: %w", err)
		}
		if shipped > 0 {
			return gerr.ErrOrderShipped
		}

		for _, query := range []string{
			`DELETE FROM payment WHERE order_id = :id`,
			`DELETE FROM order_item WHERE order_id = :id`,
			`DELETE FROM customer_order WHERE order_id = :id`,
		} {
			if err := ExecNamed(ctx, rep.DB(), query, map[string]any{"id": id}); err != nil {
				return fmt.Errorf("can't delete order records: %w", err)
			}
		}

		affected, err := ExecNamedAffected(ctx, rep.DB(), `DELETE FROM orders WHERE id = :id`,
			map[string]any{"id": id})
		if err != nil {
			if ps.IsErrForeignKeyViolation(err) {
				return gerr.ErrOrderShipped
			}
			return fmt.Errorf("can't delete order: %w", err)
		}
		if affected == 0 {
			return gerr.ErrNotFound
		}
		return nil
	})
}
