package dto

import "github.com/shopspring/decimal"

// CashierSalesDTO ventas del día por cajero.
type CashierSalesDTO struct {
	UserID    string          `json:"user_id"`
	Username  string          `json:"username"`
	SaleCount int64           `json:"sales_count"`
	Total     decimal.Decimal `json:"total"`
}

// DailyStatsDTO resumen del día para GET /api/stats.
type DailyStatsDTO struct {
	Date           string            `json:"date"` // YYYY-MM-DD
	SaleCount      int64             `json:"sales"`
	Revenue        decimal.Decimal   `json:"revenue"`
	CashTotal      decimal.Decimal   `json:"cash_total"`
	ActiveProducts int64             `json:"products"`
	LowStockCount  int64             `json:"low_stock"`
	SalesByCashier []CashierSalesDTO `json:"sales_by_cashier"`
}
