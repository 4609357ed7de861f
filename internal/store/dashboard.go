package store

import (
	"context"
	"fmt"

	"github.com/invtrack/inventory-manager/internal/dependency"
	"github.com/invtrack/inventory-manager/internal/entity"
	"golang.org/x/sync/errgroup"
)

type dashboardStore struct {
	*PGStore
}

// Dashboard returns an object implementing the dashboard widgets.
func (ps *PGStore) Dashboard() dependency.Dashboard {
	return &dashboardStore{PGStore: ps}
}

// GetOverview returns the trailing-30-day headline numbers.
func (ps *PGStore) GetOverview(ctx context.Context) (*entity.Overview, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT
		(SELECT COUNT(*) FROM orders
			WHERE order_date >= NOW() - INTERVAL '30 days') AS monthly_orders,
		(SELECT COALESCE(SUM(oi.quantity * oi.unit_price), 0)
			FROM orders o
			JOIN order_item oi ON oi.order_id = o.id
			WHERE o.order_date >= NOW() - INTERVAL '30 days') AS monthly_revenue,
		(SELECT COUNT(DISTINCT co.customer_id)
			FROM customer_order co
			JOIN orders o ON o.id = co.order_id
			WHERE o.order_date >= NOW() - INTERVAL '30 days') AS active_customers,
		(SELECT COUNT(*) FROM inventory WHERE quantity < :threshold) AS low_stock_items`

	ov, err := QueryNamedOne[entity.Overview](ctx, ps.DB(), query,
		map[string]any{"threshold": entity.LowStockThreshold})
	if err != nil {
		return nil, fmt.Errorf("can't get dashboard overview: %w", err)
	}
	return &ov, nil
}

// GetMonthlyMetrics returns order, revenue and customer counts for the
// trailing twelve months, oldest first for charting.
func (ps *PGStore) GetMonthlyMetrics(ctx context.Context) ([]entity.MonthlyMetric, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT DATE_TRUNC('month', o.order_date) AS month,
		COUNT(DISTINCT o.id) AS order_count,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue,
		COUNT(DISTINCT co.customer_id) AS customer_count
	FROM orders o
	JOIN customer_order co ON co.order_id = o.id
	JOIN order_item oi ON oi.order_id = o.id
	WHERE o.order_date >= NOW() - INTERVAL '12 months'
	GROUP BY DATE_TRUNC('month', o.order_date)
	ORDER BY month`

	metrics, err := QueryListNamed[entity.MonthlyMetric](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("can't get monthly metrics: %w", err)
	}
	return metrics, nil
}

const dashboardTopLimit = 5

// GetTopProducts ranks the best selling products of the trailing 30
// days by revenue.
func (ps *PGStore) GetTopProducts(ctx context.Context) ([]entity.TopProduct, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT p.id AS product_id, p.name,
		COALESCE(SUM(oi.quantity), 0) AS total_sold,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS revenue
	FROM order_item oi
	JOIN product p ON p.id = oi.product_id
	JOIN orders o ON o.id = oi.order_id
	WHERE o.order_date >= NOW() - INTERVAL '30 days'
	GROUP BY p.id, p.name
	ORDER BY revenue DESC, p.id
	LIMIT :limit`

	top, err := QueryListNamed[entity.TopProduct](ctx, ps.DB(), query,
		map[string]any{"limit": dashboardTopLimit})
	if err != nil {
		return nil, fmt.Errorf("can't get top products: %w", err)
	}
	return top, nil
}

// GetTopCustomers ranks the biggest spenders of the trailing 30 days.
func (ps *PGStore) GetTopCustomers(ctx context.Context) ([]entity.TopCustomer, error) {
	ctx, cancel := ps.queryCtx(ctx)
	defer cancel()

	query := `
	SELECT c.id AS customer_id, c.name,
		COUNT(DISTINCT o.id) AS order_count,
		COALESCE(SUM(oi.quantity * oi.unit_price), 0) AS total_spent
	FROM customer c
	JOIN customer_order co ON co.customer_id = c.id
	JOIN orders o ON o.id = co.order_id
	JOIN order_item oi ON oi.order_id = o.id
	WHERE o.order_date >= NOW() - INTERVAL '30 days'
	GROUP BY c.id, c.name
	ORDER BY total_spent DESC, c.id
	LIMIT :limit`

	top, err := QueryListNamed[entity.TopCustomer](ctx, ps.DB(), query,
		map[string]any{"limit": dashboardTopLimit})
	if err != nil {
		return nil, fmt.Errorf("can't get top customers: %w", err)
	}
	return top, nil
}

// GetSummary fetches all four widgets. Outside a transaction the
// sub-queries run concurrently; a transaction connection serializes
// them instead.
func (ps *PGStore) GetSummary(ctx context.Context) (*entity.DashboardSummary, error) {
	summary := &entity.DashboardSummary{}

	if ps.InTx() {
		var err error
		if summary.Overview, err = ps.GetOverview(ctx); err != nil {
			return nil, err
		}
		if summary.Monthly, err = ps.GetMonthlyMetrics(ctx); err != nil {
			return nil, err
		}
		if summary.TopProducts, err = ps.GetTopProducts(ctx); err != nil {
			return nil, err
		}
		if summary.TopCustomers, err = ps.GetTopCustomers(ctx); err != nil {
			return nil, err
		}
		return summary, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ov, err := ps.GetOverview(gctx)
		if err != nil {
			return err
		}
		summary.Overview = ov
		return nil
	})
	g.Go(func() error {
		m, err := ps.GetMonthlyMetrics(gctx)
		if err != nil {
			return err
		}
		summary.Monthly = m
		return nil
	})
	g.Go(func() error {
		tp, err := ps.GetTopProducts(gctx)
		if err != nil {
			return err
		}
		summary.TopProducts = tp
		return nil
	})
	g.Go(func() error {
		tc, err := ps.GetTopCustomers(gctx)
		if err != nil {
			return err
		}
		summary.TopCustomers = tc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("can't get dashboard summary: %w", err)
	}
	return summary, nil
}
