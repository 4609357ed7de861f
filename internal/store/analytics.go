package store

import (
	"context"
	"fmt"

	"github.com/invtrack/inventory-manager/internal/dependency"
	"github.com/invtrack/inventory-manager/internal/entity"
	"github.com/shopspring/decimal"
)

type analyticsStore struct {
	*PGStore
}

// Analytics returns an object implementing the reporting rollups.
func (ps *PGStore) Analytics() dependency.Analytics {
	return &analyticsStore{PGStore: ps}
}

// growthRate returns the percent change from prev to cur, nil when prev
// is zero.
func growthRate(cur, prev decimal.Decimal) *float64 {
	if prev.IsZero() {
		return nil
	}
	rate, _ := cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	return &rate
}

// applyGrowth annotates rows ordered ASC by period with the preceding
// period's revenue and the percent change. Only the first row keeps nil
// annotations; a zero predecessor still surfaces as PrevRevenue with a
// nil rate.
func applyGrowth[T any](
	rows []T,
	revenue func(*T) decimal.Decimal,
	annotate func(*T, *decimal.Decimal, *float64),
) {
	for i := 1; i < len(rows); i++ {
		prev := revenue(&rows[i-1])
		annotate(&rows[i], &prev, growthRate(revenue(&rows[i]), prev))
	}
}

// reverse flips a rollup computed ASC into the DESC presentation order.
func reverse[T any](rows []T) []T {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	return rows
}

// GetSalesByPeriod groups order revenue by day inside the optional date
// bounds. Growth annotations compare each day against the previous one
// present in the result; the series comes back newest first.
func (ps *PGStore) GetSalesByPeriod(ctx context.Context, f *entity.SalesFilter) ([]entity.SalesPeriod, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	flt := NewFilter()
	if f != nil {
		flt.From("o.order_date", "from", f.From).
			To("o.order_date", "to", f.To)
	}

	query := `
	SELECT DATE_TRUNC('day', o.order_date) AS period,
		COUNT(DISTINCT o.id) AS order_count,
		COUNT(DISTINCT co.customer_id) AS customer_count,
		COALESCE(SUM(oi.quantity), 0) AS units,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue
	FROM orders o
	JOIN customer_order co ON co.order_id = o.id
	JOIN order_item oi ON oi.order_id = o.id` + flt.Where() + `
	GROUP BY DATE_TRUNC('day', o.order_date)
	ORDER BY period`

	periods, err := QueryListNamed[entity.SalesPeriod](ctx, ps.DB(), query, flt.Params(nil))
	if err != nil {
		return nil, fmt.Errorf("can't get sales by period: %w", err)
	}

	applyGrowth(periods,
		func(p *entity.SalesPeriod) decimal.Decimal { return p.Revenue },
		func(p *entity.SalesPeriod, prev *decimal.Decimal, rate *float64) {
			p.PrevRevenue = prev
			p.GrowthRate = rate
		})
	return reverse(periods), nil
}

// GetProductRollup aggregates lifetime sales per product. Monthly
// velocity divides units by the number of distinct months with at least
// one sale, so idle months between sales don't dilute it.
func (ps *PGStore) GetProductRollup(ctx context.Context) ([]entity.ProductRollup, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT p.id AS product_id, p.name,
		COUNT(DISTINCT oi.order_id) AS order_count,
		COALESCE(SUM(oi.quantity), 0) AS units,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue,
		COALESCE(AVG(oi.quantity), 0) AS avg_order_size,
		COALESCE(MAX(i.quantity), 0) AS current_stock,
		COALESCE(
			SUM(oi.quantity)::float / NULLIF(COUNT(DISTINCT DATE_TRUNC('month', o.order_date)), 0),
			0
		) AS monthly_velocity
	FROM product p
	LEFT JOIN inventory i ON i.product_id = p.id
	LEFT JOIN order_item oi ON oi.product_id = p.id
	LEFT JOIN orders o ON o.id = oi.order_id
	GROUP BY p.id, p.name
	ORDER BY revenue DESC, p.id`

	rollup, err := QueryListNamed[entity.ProductRollup](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get product rollup: %w", err)
	}
	return rollup, nil
}

// GetCustomerRollup aggregates lifetime spend per customer with at
// least one order.
func (ps *PGStore) GetCustomerRollup(ctx context.Context) ([]entity.CustomerRollup, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT c.id AS customer_id, c.name,
		COUNT(DISTINCT o.id) AS order_count,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_spent,
		MIN(o.order_date) AS first_order,
		MAX(o.order_date) AS last_order,
		COALESCE(SUM(oi.quantity * oi.unit_price) / NULLIF(COUNT(DISTINCT o.id), 0), 0) AS avg_order_value,
		EXTRACT(EPOCH FROM (MAX(o.order_date) - MIN(o.order_date)))::bigint / 86400 AS lifetime_days
	FROM customer c
	JOIN customer_order co ON co.customer_id = c.id
	JOIN orders o ON o.id = co.order_id
	JOIN order_item oi ON oi.order_id = o.id
	GROUP BY c.id, c.name
	ORDER BY total_spent DESC, c.id`

	rollup, err := QueryListNamed[entity.CustomerRollup](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get customer rollup: %w", err)
	}
	return rollup, nil
}

// GetSupplierRollup aggregates order volume and delivery performance
// per supplier. The delivery average covers shipped orders only; a
// supplier with none keeps a nil average and no tier.
func (ps *PGStore) GetSupplierRollup(ctx context.Context) ([]entity.SupplierRollup, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	WITH supplier_orders AS (
		SELECT o.supplier_id, o.id,
			(SELECT EXTRACT(EPOCH FROM (sh.shipment_date - o.order_date)) / 86400
				FROM shipment sh
				WHERE sh.order_id = o.id AND sh.shipment_date IS NOT NULL) AS days,
			COALESCE(SUM(oi.quantity), 0) AS units,
			COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS value
		FROM orders o
		LEFT JOIN order_item oi ON oi.order_id = o.id
		GROUP BY o.supplier_id, o.id
	)
	SELECT s.id AS supplier_id, s.name,
		COUNT(so.id) AS order_count,
		COALESCE(SUM(so.units), 0) AS units,
		COALESCE(SUM(so.value), 0) AS total_value,
		AVG(so.days) AS avg_delivery_days,
		COALESCE(SUM(so.value) / NULLIF(COUNT(so.id), 0), 0) AS avg_order_value
	FROM supplier s
	JOIN supplier_orders so ON so.supplier_id = s.id
	GROUP BY s.id, s.name
	ORDER BY total_value DESC, s.id`

	rollup, err := QueryListNamed[entity.SupplierRollup](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get supplier rollup: %w", err)
	}
	for i := range rollup {
		if rollup[i].AvgDeliveryDays != nil {
			rollup[i].PerformanceTier = entity.DeliveryTierFor(*rollup[i].AvgDeliveryDays)
		}
	}
	return rollup, nil
}

// GetMonthlyTrend groups the whole order history by calendar month,
// newest first, with month-over-month growth annotations.
func (ps *PGStore) GetMonthlyTrend(ctx context.Context) ([]entity.MonthlyTrend, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT DATE_TRUNC('month', o.order_date) AS month,
		COUNT(DISTINCT o.id) AS order_count,
		COUNT(DISTINCT co.customer_id) AS customer_count,
		COALESCE(SUM(oi.quantity), 0) AS units,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue,
		COUNT(DISTINCT oi.product_id) AS unique_products,
		COALESCE(SUM(oi.quantity * oi.unit_price) / NULLIF(COUNT(DISTINCT o.id), 0), 0) AS avg_order_value,
		COALESCE(SUM(oi.quantity)::float / NULLIF(COUNT(DISTINCT o.id), 0), 0) AS avg_units_per_order
	FROM orders o
	JOIN customer_order co ON co.order_id = o.id
	JOIN order_item oi ON oi.order_id = o.id
	GROUP BY DATE_TRUNC('month', o.order_date)
	ORDER BY month`

	trend, err := QueryListNamed[entity.MonthlyTrend](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get monthly trend: %w", err)
	}

	applyGrowth(trend,
		func(t *entity.MonthlyTrend) decimal.Decimal { return t.Revenue },
		func(t *entity.MonthlyTrend, prev *decimal.Decimal, rate *float64) {
			t.PrevRevenue = prev
			t.GrowthRate = rate
		})
	return reverse(trend), nil
}
