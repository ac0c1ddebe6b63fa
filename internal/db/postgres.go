package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"sentiment-pulse/internal/logging"
)

// Pool is the shared connection pool. It stays nil when no DSN is configured.
var Pool *pgxpool.Pool

var (
	newPool = pgxpool.New
	pingDB  = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
)

// InitPostgres opens Pool. An empty dsn is not an error: persistence is
// optional and callers check Pool for nil.
func InitPostgres(ctx context.Context, dsn string) error {
	if strings.TrimSpace(dsn) == "" {
		logging.Warnf("postgres disabled: no DATABASE_URL")
		return nil
	}

	p, err := newPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pingDB(ctx, p); err != nil {
		p.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	Pool = p
	logging.Infof("connected to postgres")
	return nil
}

func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}
