// Package analytics contiene el caso de uso del resumen diario del panel.
// Solo lee los datos que deja el libro de transacciones; no participa en sus
// invariantes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// StatsCache cache de lectura opcional para el resumen (nil lo desactiva).
type StatsCache interface {
	GetDailyStats(ctx context.Context, key string) (*dto.DailyStatsDTO, error)
	SetDailyStats(ctx context.Context, key string, stats *dto.DailyStatsDTO, ttl time.Duration) error
}

const statsCacheTTL = 30 * time.Second

// DashboardUseCase genera el resumen del día: ventas, ingresos, arqueo de
// caja, productos activos, bajo stock y ventas por cajero.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         StatsCache
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache StatsCache) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache}
}

// GetDailyStats construye el DailyStatsDTO de hoy.
//
// Tres consultas en paralelo:
//  1. GetSalesMetrics(hoy)     → ventas, ingresos, caja
//  2. ListSalesByCashier(hoy)  → desglose por cajero
//  3. conteos de catálogo      → activos + bajo stock
func (uc *DashboardUseCase) GetDailyStats(ctx context.Context) (*dto.DailyStatsDTO, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)
	key := dayStart.Format("2006-01-02")

	if uc.cache != nil {
		if cached, err := uc.cache.GetDailyStats(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	type metricsResult struct {
		metrics *repository.SalesMetrics
		err     error
	}
	type cashierResult struct {
		rows []repository.CashierSales
		err  error
	}
	type countsResult struct {
		active   int64
		lowStock int64
		err      error
	}

	metricsCh := make(chan metricsResult, 1)
	cashierCh := make(chan cashierResult, 1)
	countsCh := make(chan countsResult, 1)

	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, dayStart, dayEnd)
		metricsCh <- metricsResult{m, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.ListSalesByCashier(ctx, dayStart, dayEnd)
		cashierCh <- cashierResult{rows, err}
	}()
	go func() {
		active, err := uc.analyticsRepo.CountActiveProducts(ctx)
		if err != nil {
			countsCh <- countsResult{err: err}
			return
		}
		low, err := uc.analyticsRepo.CountLowStock(ctx)
		countsCh <- countsResult{active: active, lowStock: low, err: err}
	}()

	metrics := <-metricsCh
	cashiers := <-cashierCh
	counts := <-countsCh

	if metrics.err != nil {
		return nil, fmt.Errorf("stats: métricas del día: %w", metrics.err)
	}
	if cashiers.err != nil {
		return nil, fmt.Errorf("stats: ventas por cajero: %w", cashiers.err)
	}
	if counts.err != nil {
		return nil, fmt.Errorf("stats: conteos de catálogo: %w", counts.err)
	}

	out := &dto.DailyStatsDTO{
		Date:           key,
		SaleCount:      metrics.metrics.SaleCount,
		Revenue:        metrics.metrics.Revenue.Round(2),
		CashTotal:      metrics.metrics.CashTotal.Round(2),
		ActiveProducts: counts.active,
		LowStockCount:  counts.lowStock,
		SalesByCashier: make([]dto.CashierSalesDTO, 0, len(cashiers.rows)),
	}
	for _, r := range cashiers.rows {
		out.SalesByCashier = append(out.SalesByCashier, dto.CashierSalesDTO{
			UserID:    r.UserID,
			Username:  r.Username,
			SaleCount: r.SaleCount,
			Total:     r.Total.Round(2),
		})
	}

	if uc.cache != nil {
		_ = uc.cache.SetDailyStats(ctx, key, out, statsCacheTTL)
	}
	return out, nil
}
