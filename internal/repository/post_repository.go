package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sentiment-pulse/internal/domain"
)

type PostRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewPostRepository(pool PgxPool, tracer trace.Tracer) *PostRepository {
	return &PostRepository{pool: pool, tracer: tracer}
}

// SaveSnapshot records one analysis run and upserts its posts. A post seen in
// several runs keeps one row, pointing at the latest run. Posts without an id
// cannot be deduplicated and are skipped.
func (r *PostRepository) SaveSnapshot(ctx context.Context, snap *domain.PulseSnapshot) error {
	if snap == nil {
		return nil
	}
	ctx, span := r.tracer.Start(ctx, "post-repo.save-snapshot")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", snap.Ticker), attribute.Int("posts", len(snap.Posts)))

	runID, err := uuid.Parse(snap.RunID)
	if err != nil {
		return fmt.Errorf("parse run id %q: %w", snap.RunID, err)
	}

	batch := &pgx.Batch{}
	batch.Queue(
		`INSERT INTO analysis_runs (run_id, ticker, post_limit, post_count, fetched_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (run_id) DO NOTHING`,
		runID, snap.Ticker, snap.Limit, len(snap.Posts), snap.FetchedAt,
	)
	for _, p := range snap.Posts {
		if p.ID == "" {
			continue
		}
		batch.Queue(
			`INSERT INTO labeled_posts (ticker, post_id, title, score, created_at, url, sentiment, compound, run_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (ticker, post_id) DO UPDATE SET
			     title = EXCLUDED.title,
			     score = EXCLUDED.score,
			     url = EXCLUDED.url,
			     sentiment = EXCLUDED.sentiment,
			     compound = EXCLUDED.compound,
			     run_id = EXCLUDED.run_id`,
			snap.Ticker, p.ID, p.Title, p.Score, time.Unix(p.Created, 0).UTC(), p.URL, string(p.Sentiment), p.Compound, runID,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			span.RecordError(err)
			return fmt.Errorf("save snapshot %s: %w", snap.RunID, err)
		}
	}
	return nil
}

// ListPosts returns stored posts for ticker created at or after since,
// oldest first. CreatedAt is returned in loc.
func (r *PostRepository) ListPosts(ctx context.Context, ticker string, since time.Time, loc *time.Location) ([]domain.LabeledPost, error) {
	ctx, span := r.tracer.Start(ctx, "post-repo.list-posts")
	defer span.End()

	if loc == nil {
		loc = time.UTC
	}

	rows, err := r.pool.Query(ctx,
		`SELECT post_id, title, score, created_at, url, sentiment, compound
		 FROM labeled_posts
		 WHERE ticker = $1 AND created_at >= $2
		 ORDER BY created_at ASC, post_id ASC`,
		ticker, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.LabeledPost{}
	for rows.Next() {
		var (
			p         domain.LabeledPost
			createdAt time.Time
			sentiment string
		)
		if err := rows.Scan(&p.ID, &p.Title, &p.Score, &createdAt, &p.URL, &sentiment, &p.Compound); err != nil {
			return nil, err
		}
		p.Created = createdAt.Unix()
		p.CreatedAt = createdAt.In(loc)
		p.Sentiment = domain.Sentiment(sentiment)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
