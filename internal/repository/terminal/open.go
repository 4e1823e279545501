package terminal

import (
	"context"
	"fmt"
	"log"

	"sowin-pos/internal/config"
	"sowin-pos/internal/db"
	"sowin-pos/internal/migrate"
)

// Open connects to the store selected by cfg.StoreDriver. The sqlite schema
// is created on open; postgres relies on cmd/migrate.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (Repository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		if err := migrate.ApplySQLite(ctx, sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return NewSQLite(sqlDB, logger), func() { sqlDB.Close() }, nil
	case config.StoreDriverPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to db: %w", err)
		}
		return NewPostgres(pool, logger), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
