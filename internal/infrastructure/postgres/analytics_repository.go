package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de agregación para el dashboard. Siempre va contra
// el pool; no participa en transacciones.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics agrega ventas, ingresos y caja de un rango. Las
// devoluciones tienen totales negativos, por eso las sumas netean solas.
func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (*repository.SalesMetrics, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE e.kind = 'SALE'),
		       COALESCE(SUM(e.total), 0),
		       COALESCE(SUM(e.total) FILTER (WHERE pm.affects_cash), 0)
		FROM ledger_entries e
		LEFT JOIN payment_methods pm ON pm.id = e.payment_method_id
		WHERE e.created_at BETWEEN $1 AND $2`
	var m repository.SalesMetrics
	err := r.q.QueryRow(ctx, query, from, to).Scan(&m.SaleCount, &m.Revenue, &m.CashTotal)
	if err != nil {
		return nil, fmt.Errorf("get sales metrics: %w", err)
	}
	return &m, nil
}

// ListSalesByCashier desglosa las ventas del rango por cajero.
func (r *AnalyticsRepo) ListSalesByCashier(ctx context.Context, from, to time.Time) ([]repository.CashierSales, error) {
	query := `
		SELECT u.id, u.username,
		       COUNT(*) FILTER (WHERE e.kind = 'SALE'),
		       COALESCE(SUM(e.total), 0)
		FROM ledger_entries e
		JOIN users u ON u.id = e.user_id
		WHERE e.created_at BETWEEN $1 AND $2
		GROUP BY u.id, u.username
		ORDER BY COALESCE(SUM(e.total), 0) DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales by cashier: %w", err)
	}
	defer rows.Close()

	var result []repository.CashierSales
	for rows.Next() {
		var c repository.CashierSales
		if err := rows.Scan(&c.UserID, &c.Username, &c.SaleCount, &c.Total); err != nil {
			return nil, fmt.Errorf("scan cashier sales: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// CountActiveProducts cuenta los productos activos del catálogo.
func (r *AnalyticsRepo) CountActiveProducts(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE active`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count active products: %w", err)
	}
	return count, nil
}

// CountLowStock cuenta los productos activos en o bajo su stock mínimo.
func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE active AND stock <= min_stock`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return count, nil
}
