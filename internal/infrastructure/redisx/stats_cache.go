package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/PuntoVenta-api/internal/application/analytics"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
)

var _ analytics.StatsCache = (*StatsCache)(nil)

// StatsCache cache del resumen diario sobre Redis (JSON con TTL corto).
type StatsCache struct {
	rdb *redis.Client
}

// NewStatsCache construye el cache sobre un cliente ya conectado.
func NewStatsCache(rdb *redis.Client) *StatsCache {
	return &StatsCache{rdb: rdb}
}

// GetDailyStats devuelve el resumen cacheado o (nil, nil) si no hay entrada.
func (c *StatsCache) GetDailyStats(ctx context.Context, key string) (*dto.DailyStatsDTO, error) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(keyDailyStats, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("stats cache get: %w", err)
	}
	var stats dto.DailyStatsDTO
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("stats cache decode: %w", err)
	}
	return &stats, nil
}

// SetDailyStats guarda el resumen con TTL.
func (c *StatsCache) SetDailyStats(ctx context.Context, key string, stats *dto.DailyStatsDTO, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, fmt.Sprintf(keyDailyStats, key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("stats cache set: %w", err)
	}
	return nil
}
