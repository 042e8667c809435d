// Package redisx contiene el cliente Redis y el cache de lectura del
// dashboard. Es infraestructura opcional: si no hay Redis configurado la API
// funciona igual, solo que cada /api/stats va a la base.
package redisx

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// New crea un cliente Redis y verifica conectividad.
func New(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
