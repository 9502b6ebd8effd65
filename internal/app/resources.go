package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/souhail747/luxe/internal/catalog"
	"github.com/souhail747/luxe/internal/config"
	"github.com/souhail747/luxe/internal/storage"
	"github.com/souhail747/luxe/internal/storage/file"
	"github.com/souhail747/luxe/internal/storage/memory"
	redisstorage "github.com/souhail747/luxe/internal/storage/redis"
	"github.com/souhail747/luxe/pkg/database"
)

// openStorage returns the backend named by the config, scoped to the profile.
func (a *App) openStorage(ctx context.Context) (storage.Storage, error) {
	switch a.cfg.Storage {
	case config.StorageMemory:
		a.logger.Warn("memory storage selected, session state will not survive a restart")
		return memory.New(), nil

	case config.StorageRedis:
		rdb, err := database.NewRedisClient(ctx, a.cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.rdb = rdb
		a.logger.Info("connected to Redis",
			slog.String("addr", a.cfg.Redis.Addr),
			slog.Int("db", a.cfg.Redis.DB),
		)
		return redisstorage.New(rdb, a.cfg.Profile, a.cfg.RedisTTL), nil

	default:
		dir := filepath.Join(a.cfg.DataDir, a.cfg.Profile)
		st, err := file.New(dir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		a.logger.Info("file storage ready", slog.String("dir", dir))
		return st, nil
	}
}

// loadCatalog reads the catalog from the configured source. The postgres
// source is migrated and, when enabled, seeded from the embedded dataset.
func (a *App) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	if a.cfg.CatalogSource != config.CatalogPostgres {
		c, err := catalog.Load(ctx, catalog.StaticSource{})
		if err != nil {
			return nil, fmt.Errorf("load static catalog: %w", err)
		}
		a.logger.Info("catalog loaded", slog.String("source", "static"), slog.Int("products", c.Len()))
		return c, nil
	}

	pool, err := database.NewPostgresPool(ctx, a.cfg.Postgres, a.logger)
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.pool = pool

	if err := database.RegisterPoolMetrics(prometheus.DefaultRegisterer, pool); err != nil {
		a.logger.Warn("pool metrics not registered", slog.String("error", err.Error()))
	}
	if err := database.RunMigrations(ctx, pool, catalog.Migrations(), a.logger); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}

	src := catalog.NewPostgresSource(pool)
	if a.cfg.CatalogSeed {
		data, err := catalog.StaticSource{}.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load seed data: %w", err)
		}
		if err := src.Seed(ctx, data); err != nil {
			return nil, fmt.Errorf("seed catalog: %w", err)
		}
	}

	c, err := catalog.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("load postgres catalog: %w", err)
	}
	a.logger.Info("catalog loaded", slog.String("source", "postgres"), slog.Int("products", c.Len()))
	return c, nil
}
