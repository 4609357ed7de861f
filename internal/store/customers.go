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

type customerStore struct {
	*PGStore
}

// Customers returns an object implementing customer-related operations.
func (ps *PGStore) Customers() dependency.Customers {
	return &customerStore{PGStore: ps}
}

const customerSelect = `
	SELECT c.id, c.name, COALESCE(c.contact_info, '') AS contact_info,
		COUNT(DISTINCT co.order_id) AS order_count,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_spent
	FROM customer c
	LEFT JOIN customer_order co ON co.customer_id = c.id
	LEFT JOIN order_item oi ON oi.order_id = co.order_id
`

const customerGroup = ` GROUP BY c.id, c.name, c.contact_info`

func (ps *PGStore) GetCustomers(ctx context.Context) ([]entity.Customer, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	customers, err := QueryListNamed[entity.Customer](ctx, ps.DB(),
		customerSelect+customerGroup+` ORDER BY c.name, c.id`, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get customers: %w", err)
	}
	return customers, nil
}

func (ps *PGStore) GetCustomerById(ctx context.Context, id int) (*entity.Customer, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	c, err := QueryNamedOne[entity.Customer](ctx, ps.DB(),
		customerSelect+` WHERE c.id = :id`+customerGroup, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get customer by id: %w", err)
	}
	return &c, nil
}

func (ps *PGStore) GetCustomerOrders(ctx context.Context, id int) ([]entity.CustomerOrderLine, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	count, err := QueryCountNamed(ctx, ps.DB(),
		`SELECT COUNT(*) FROM customer WHERE id = :id`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("can't check customer existence: %w", err)
	}
	if count == 0 {
		return nil, gerr.ErrNotFound
	}

	query := `
	SELECT o.id AS order_id, o.order_date, p.name AS product_name,
		oi.quantity, oi.unit_price,
		oi.quantity * oi.unit_price AS total_price
	FROM customer_order co
	JOIN orders o ON o.id = co.order_id
	JOIN order_item oi ON oi.order_id = o.id
	JOIN product p ON p.id = oi.product_id
	WHERE co.customer_id = :id
	ORDER BY o.order_date DESC, o.id DESC, oi.id`

	lines, err := QueryListNamed[entity.CustomerOrderLine](ctx, ps.DB(), query,
		map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("can't get customer orders: %w", err)
	}
	return lines, nil
}

// vipSpendThreshold is the lifetime spend above which a customer counts
// as VIP.
const vipSpendThreshold = 1000

func (ps *PGStore) GetVIPCustomers(ctx context.Context) ([]entity.Customer, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := customerSelect + customerGroup + `
	HAVING COALESCE(SUM(oi.quantity * oi.unit_price), 0) > :threshold
	ORDER BY total_spent DESC, c.id`

	customers, err := QueryListNamed[entity.Customer](ctx, ps.DB(), query,
		map[string]any{"threshold": vipSpendThreshold})
	if err != nil {
		return nil, fmt.Errorf("can't get vip customers: %w", err)
	}
	return customers, nil
}

func (ps *PGStore) SearchCustomers(ctx context.Context, term string) ([]entity.Customer, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := customerSelect + `
	WHERE c.name ILIKE :pattern OR c.contact_info ILIKE :pattern` +
		customerGroup + ` ORDER BY c.name, c.id`

	customers, err := QueryListNamed[entity.Customer](ctx, ps.DB(), query,
		map[string]any{"pattern": "%" + term + "%"})
	if err != nil {
		return nil, fmt.Errorf("can't search customers: %w", err)
	}
	return customers, nil
}

func (ps *PGStore) AddCustomer(ctx context.Context, ins *entity.AccountInsert) (*entity.Customer, error) {
	if err := ins.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	id, err := ExecNamedReturningId(ctx, ps.DB(), `
	INSERT INTO customer (name, contact_info)
	VALUES (:name, :contactInfo)
	RETURNING id`, map[string]any{
		"name":        ins.Name,
		"contactInfo": ins.ContactInfo,
	})
	if err != nil {
		return nil, fmt.Errorf("can't insert customer: %w", err)
	}

	return ps.GetCustomerById(ctx, id)
}

func (ps *PGStore) UpdateCustomer(ctx context.Context, id int, upd *entity.AccountUpdate) (*entity.Customer, error) {
	sets, params := accountUpdateSets(id, upd)
	if len(sets) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := fmt.Sprintf("UPDATE customer SET %s WHERE id = :id", strings.Join(sets, ", "))
	affected, err := ExecNamedAffected(ctx, ps.DB(), query, params)
	if err != nil {
		return nil, fmt.Errorf("can't update customer: %w", err)
	}
	if affected == 0 {
		return nil, gerr.ErrNotFound
	}

	return ps.GetCustomerById(ctx, id)
}

// DeleteCustomerById refuses to remove a customer with order history.
func (ps *PGStore) DeleteCustomerById(ctx context.Context, id int) error {
	return ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		count, err := QueryCountNamed(ctx, rep.DB(), `
		SELECT COUNT(*) FROM customer_order WHERE customer_id = :id`,
			map[string]any{"id": id})
		if err != nil {
			return fmt.Errorf("can't count customer orders: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: customer has %d orders", gerr.ErrHasDependents, count)
		}

		affected, err := ExecNamedAffected(ctx, rep.DB(), `DELETE FROM customer WHERE id = :id`,
			map[string]any{"id": id})
		if err != nil {
			if ps.IsErrForeignKeyViolation(err) {
				return fmt.Errorf("%w: customer is still referenced", gerr.ErrHasDependents)
			}
			return fmt.Errorf("can't delete customer: %w", err)
		}
		if affected == 0 {
			return gerr.ErrNotFound
		}
		return nil
	})
}

func accountUpdateSets(id int, upd *entity.AccountUpdate) ([]string, map[string]any) {
	sets := make([]string, 0, 2)
	params := map[string]any{"id": id}
	if upd.Name != nil {
		sets = append(sets, "name = :name")
		params["name"] = *upd.Name
	}
	if upd.ContactInfo != nil {
		sets = append(sets, "contact_info = :contactInfo")
		params["contactInfo"] = *upd.ContactInfo
	}
	return sets, params
}
