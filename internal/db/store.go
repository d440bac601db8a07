package db

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"taskboard/internal/config"
	"taskboard/internal/store"
)

// OpenStore builds the store selected by cfg.StoreDriver.
// The returned close function releases the backend's connections.
func OpenStore(ctx context.Context, cfg *config.Config) (store.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemoryStore(), noop, nil

	case config.DriverRedis:
		rs := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return rs, rs.Close, nil

	case config.DriverMySQL, config.DriverPostgres:
		var (
			gormDB *gorm.DB
			err    error
		)
		if cfg.StoreDriver == config.DriverMySQL {
			gormDB, err = NewMySQL(cfg.MySQLDSN)
		} else {
			gormDB, err = NewPostgres(cfg.PostgresDSN)
		}
		if err != nil {
			return nil, nil, err
		}
		ss := store.NewSQLStore(gormDB)
		if cfg.ResetStore {
			log.Println("RESET_STORE=true detected, dropping key-value table...")
		}
		if err := ss.Migrate(cfg.ResetStore); err != nil {
			return nil, nil, fmt.Errorf("auto-migrate: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("sql handle: %w", err)
		}
		return ss, sqlDB.Close, nil

	case config.DriverFirestore:
		if cfg.FirestoreProject == "" {
			return nil, nil, fmt.Errorf("FIRESTORE_PROJECT is required for the firestore driver")
		}
		fs, err := store.NewFirestoreStore(ctx, cfg.FirestoreProject, cfg.FirestoreCollection)
		if err != nil {
			return nil, nil, fmt.Errorf("connect firestore: %w", err)
		}
		return fs, fs.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
