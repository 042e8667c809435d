package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesMetrics agregados de ventas de un rango de fechas. Las devoluciones
// están guardadas con totales negativos, así que las sumas ya netean.
type SalesMetrics struct {
	SaleCount int64
	Revenue   decimal.Decimal
	CashTotal decimal.Decimal // solo métodos de pago con affects_cash
}

// CashierSales ventas del día por cajero.
type CashierSales struct {
	UserID    string
	Username  string
	SaleCount int64
	Total     decimal.Decimal
}

// AnalyticsRepository consultas read-only para el dashboard.
// Solo lee los datos resultantes del libro; no participa en sus invariantes.
type AnalyticsRepository interface {
	GetSalesMetrics(ctx context.Context, from, to time.Time) (*SalesMetrics, error)
	ListSalesByCashier(ctx context.Context, from, to time.Time) ([]CashierSales, error)
	CountActiveProducts(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)
}
