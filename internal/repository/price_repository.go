package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"

	"sentiment-pulse/internal/domain"
)

type PriceRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewPriceRepository(pool PgxPool, tracer trace.Tracer) *PriceRepository {
	return &PriceRepository{pool: pool, tracer: tracer}
}

func (r *PriceRepository) UpsertPoints(ctx context.Context, ticker, interval string, series domain.PriceSeries) error {
	if len(series) == 0 {
		return nil
	}

	ctx, span := r.tracer.Start(ctx, "price-repo.upsert-points")
	defer span.End()

	batch := &pgx.Batch{}
	for _, pt := range series {
		batch.Queue(
			`INSERT INTO price_points (ticker, interval, ts, close)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (ticker, interval, ts) DO UPDATE SET close = EXCLUDED.close`,
			ticker, interval, pt.Time.UTC(), pt.Close,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range series {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// ListPoints returns the stored series since the given time, ascending, with
// times in loc.
func (r *PriceRepository) ListPoints(ctx context.Context, ticker, interval string, since time.Time, loc *time.Location) (domain.PriceSeries, error) {
	ctx, span := r.tracer.Start(ctx, "price-repo.list-points")
	defer span.End()

	if loc == nil {
		loc = time.UTC
	}

	rows, err := r.pool.Query(ctx,
		`SELECT ts, close::float8
		 FROM price_points
		 WHERE ticker = $1 AND interval = $2 AND ts >= $3
		 ORDER BY ts ASC`,
		ticker, interval, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	series := domain.PriceSeries{}
	for rows.Next() {
		var pt domain.PricePoint
		if err := rows.Scan(&pt.Time, &pt.Close); err != nil {
			return nil, err
		}
		pt.Time = pt.Time.In(loc)
		series = append(series, pt)
	}
	return series, rows.Err()
}
