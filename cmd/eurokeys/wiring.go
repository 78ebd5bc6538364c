package main

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/eurokeys/config"
	"github.com/alejandrodnm/eurokeys/internal/adapters/cache"
	"github.com/alejandrodnm/eurokeys/internal/adapters/storage"
	"github.com/alejandrodnm/eurokeys/internal/ports"
)

// openStore abre el almacenamiento configurado. Con el driver json también
// devuelve el store para vigilar el archivo; con los demás watcher es nil.
func openStore(ctx context.Context, cfg config.StorageConfig) (store ports.DrawStore, watcher *storage.JSONStore, err error) {
	switch cfg.Driver {
	case "s3":
		s, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:   cfg.S3Bucket,
			Key:      cfg.S3Key,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	case "json":
		js, err := storage.NewJSONStore(cfg.JSONPath)
		if err != nil {
			return nil, nil, err
		}
		return js, js, nil
	case "sqlite":
		s, err := storage.NewSQLiteStore(cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil
	default:
		return nil, nil, fmt.Errorf("openStore: unknown driver %q", cfg.Driver)
	}
}

// openCache abre la cache del dashboard y devuelve su función de cierre.
func openCache(ctx context.Context, cfg config.CacheConfig) (ports.AnalysisCache, func(), error) {
	switch cfg.Driver {
	case "redis":
		r, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, nil, err
		}
		return r, func() { _ = r.Close() }, nil
	case "memory":
		m, err := cache.NewMemory(cfg.Size)
		if err != nil {
			return nil, nil, err
		}
		return m, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("openCache: unknown driver %q", cfg.Driver)
	}
}
