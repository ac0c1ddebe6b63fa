package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"sentiment-pulse/internal/db"
	"sentiment-pulse/internal/logging"
)

const usage = "usage: migrate [up|down|version] [steps]"

var (
	loadEnvFunc = godotenv.Load
	openPool    = pgxpool.New
	newMigrator = func(pool *pgxpool.Pool) (migrator, error) { return db.NewMigrator(pool) }
	exitFunc    = os.Exit
)

type migrator interface {
	Up(ctx context.Context) (int, error)
	Down(ctx context.Context, steps int) (int, error)
	Version(ctx context.Context) (int64, string, error)
}

func main() {
	_ = loadEnvFunc()
	_ = logging.Init(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))
	defer logging.Sync()

	if err := run(context.Background(), os.Args[1:]); err != nil {
		logging.Errorf("%v", err)
		exitFunc(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New(usage)
	}

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	pool, err := openPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	m, err := newMigrator(pool)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	return execute(ctx, m, args)
}

func execute(ctx context.Context, m migrator, args []string) error {
	switch args[0] {
	case "up":
		n, err := m.Up(ctx)
		if err != nil {
			return fmt.Errorf("apply migrations up: %w", err)
		}
		logging.Infof("migrations up complete (%d applied)", n)
	case "down":
		steps := 1
		if len(args) > 1 {
			v, err := strconv.Atoi(args[1])
			if err != nil || v <= 0 {
				return fmt.Errorf("invalid down steps: %q", args[1])
			}
			steps = v
		}
		n, err := m.Down(ctx, steps)
		if err != nil {
			return fmt.Errorf("apply migrations down: %w", err)
		}
		logging.Infof("migrations down complete (%d rolled back)", n)
	case "version":
		version, name, err := m.Version(ctx)
		if err != nil {
			return fmt.Errorf("read current version: %w", err)
		}
		if version == 0 {
			logging.Infof("no migrations applied")
			return nil
		}
		logging.Infof("current version: %d (%s)", version, name)
	default:
		return fmt.Errorf("unknown command %q. %s", args[0], usage)
	}
	return nil
}
