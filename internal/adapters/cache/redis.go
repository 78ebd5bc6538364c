package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/eurokeys/internal/domain"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "eurokeys:"

// Redis implementa ports.AnalysisCache sobre Redis, para compartir el
// dashboard entre varias instancias del servidor.
type Redis struct {
	rdb *redis.Client
}

// RedisOptions son los parámetros de conexión.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedis conecta y verifica la conexión con PING.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("cache.NewRedis: ping %s: %w", opts.Addr, err)
	}
	return &Redis{rdb: rdb}, nil
}

// Get devuelve el dashboard guardado. Cualquier error cuenta como miss.
func (r *Redis) Get(ctx context.Context, key string) (domain.Dashboard, bool) {
	data, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis get failed", "key", key, "err", err)
		}
		return domain.Dashboard{}, false
	}
	var d domain.Dashboard
	if err := json.Unmarshal(data, &d); err != nil {
		slog.Warn("redis value corrupt", "key", key, "err", err)
		return domain.Dashboard{}, false
	}
	return d, true
}

// Set guarda el dashboard como JSON con caducidad ttl.
func (r *Redis) Set(ctx context.Context, key string, d domain.Dashboard, ttl time.Duration) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("cache.Set: encode: %w", err)
	}
	if err := r.rdb.Set(ctx, keyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("cache.Set: %w", err)
	}
	return nil
}

// Invalidate borra la clave.
func (r *Redis) Invalidate(ctx context.Context, key string) error {
	if err := r.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("cache.Invalidate: %w", err)
	}
	return nil
}

// Close cierra el cliente.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
