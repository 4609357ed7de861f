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

type paymentStore struct {
	*PGStore
}

// Payments returns an object implementing payment-related operations.
func (ps *PGStore) Payments() dependency.Payments {
	return &paymentStore{PGStore: ps}
}

const paymentSelect = `
	SELECT p.id, p.order_id, p.payment_date, p.amount,
		o.order_date, c.name AS customer_name
	FROM payment p
	JOIN orders o ON o.id = p.order_id
	JOIN customer_order co ON co.order_id = o.id
	JOIN customer c ON c.id = co.customer_id
`

func (ps *PGStore) GetPayments(ctx context.Context, f *entity.PaymentFilter) ([]entity.Payment, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	flt := NewFilter()
	if f != nil {
		flt.From("p.payment_date", "from", f.From).
			To("p.payment_date", "to", f.To)
	}

	query := paymentSelect + flt.Where() + ` ORDER BY p.payment_date DESC, p.id DESC`
	payments, err := QueryListNamed[entity.Payment](ctx, ps.DB(), query, flt.Params(nil))
	if err != nil {
		return nil, fmt.Errorf("can't get payments: %w", err)
	}
	return payments, nil
}

// GetPaymentAnalysis returns daily totals followed by monthly totals,
// newest buckets first inside each period.
func (ps *PGStore) GetPaymentAnalysis(ctx context.Context) ([]entity.PaymentBucket, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT TO_CHAR(payment_date, 'YYYY-MM-DD') AS bucket_date, 'daily' AS period,
		SUM(amount) AS total_payments
	FROM payment
	GROUP BY TO_CHAR(payment_date, 'YYYY-MM-DD')
	UNION ALL
	SELECT TO_CHAR(DATE_TRUNC('month', payment_date), 'YYYY-MM') AS bucket_date,
		'monthly' AS period, SUM(amount) AS total_payments
	FROM payment
	GROUP BY TO_CHAR(DATE_TRUNC('month', payment_date), 'YYYY-MM')
	ORDER BY period, bucket_date DESC`

	buckets, err := QueryListNamed[entity.PaymentBucket](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get payment analysis: %w", err)
	}
	return buckets, nil
}

func (ps *PGStore) GetPaymentById(ctx context.Context, id int) (*entity.Payment, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	p, err := QueryNamedOne[entity.Payment](ctx, ps.DB(),
		paymentSelect+` WHERE p.id = :id`, map[string]any{"id": id})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, gerr.ErrNotFound
		}
		return nil, fmt.Errorf("can't get payment by id: %w", err)
	}
	return &p, nil
}

func (ps *PGStore) AddPayment(ctx context.Context, ins *entity.PaymentInsert) (*entity.Payment, error) {
	if err := ins.Validate(); err != nil {
		return nil, err
	}

	var id int
	err := ps.Tx(ctx, func(ctx context.Context, rep dependency.Repository) error {
		count, err := QueryCountNamed(ctx, rep.DB(),
			`SELECT COUNT(*) FROM orders WHERE id = :id`,
			map[string]any{"id": ins.OrderId})
		if err != nil {
			return fmt.Errorf("can't check order existence: %w", err)
		}
		if count == 0 {
			return fmt.Errorf("%w: order %d", gerr.ErrNotFound, ins.OrderId)
		}

		paymentDate := ins.PaymentDate
		if paymentDate.IsZero() {
			paymentDate = rep.Now()
		}

		pid, err := ExecNamedReturningId(ctx, rep.DB(), `
		INSERT INTO payment (order_id, payment_date, amount)
		VALUES (:orderId, :paymentDate, :amount)
		RETURNING id`, map[string]any{
			"orderId":     ins.OrderId,
			"paymentDate": paymentDate,
			"amount":      ins.Amount,
		})
		if err != nil {
			return fmt.Errorf("can't insert payment: %w", err)
		}
		id = pid
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ps.GetPaymentById(ctx, id)
}
