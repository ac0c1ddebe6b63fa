package job

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"sentiment-pulse/internal/domain"
	"sentiment-pulse/internal/logging"
)

type SnapshotRefresher interface {
	Snapshot(ctx context.Context, ticker string, limit int, ttl time.Duration) (*domain.PulseSnapshot, error)
}

type HistoryRecorder interface {
	RecordHistory(ctx context.Context, ticker, rng, interval string) (int, error)
}

type PollerOptions struct {
	Watchlist       []string
	Limit           int
	Interval        time.Duration
	HistoryRange    string
	HistoryInterval string
}

// PulsePoller periodically refreshes the analysis for every watchlist ticker
// so the cache stays warm and the archive keeps growing between requests.
type PulsePoller struct {
	tracer trace.Tracer
	pulse  SnapshotRefresher
	prices HistoryRecorder
	clock  clockwork.Clock
	opts   PollerOptions
}

func NewPulsePoller(tracer trace.Tracer, pulse SnapshotRefresher, prices HistoryRecorder, clock clockwork.Clock, opts PollerOptions) *PulsePoller {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if opts.Interval <= 0 {
		opts.Interval = 15 * time.Minute
	}
	return &PulsePoller{
		tracer: tracer,
		pulse:  pulse,
		prices: prices,
		clock:  clock,
		opts:   opts,
	}
}

// Start polls until ctx is cancelled. It returns immediately when the
// watchlist is empty.
func (p *PulsePoller) Start(ctx context.Context) {
	if len(p.opts.Watchlist) == 0 {
		logging.Infof("pulse poller: empty watchlist, not starting")
		return
	}
	logging.Infof("pulse poller starting: %d tickers every %s", len(p.opts.Watchlist), p.opts.Interval)

	p.pollOnce(ctx)

	ticker := p.clock.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Infof("pulse poller stopped")
			return
		case <-ticker.Chan():
			p.pollOnce(ctx)
		}
	}
}

func (p *PulsePoller) pollOnce(ctx context.Context) {
	ctx, span := p.tracer.Start(ctx, "job.pulse-poll")
	defer span.End()
	span.SetAttributes(attribute.Int("tickers", len(p.opts.Watchlist)))

	for _, t := range p.opts.Watchlist {
		if ctx.Err() != nil {
			return
		}
		snap, err := p.pulse.Snapshot(ctx, t, p.opts.Limit, p.opts.Interval)
		if err != nil {
			logging.Warnf("pulse poller: snapshot %s: %v", t, err)
			continue
		}
		if p.prices == nil {
			continue
		}
		n, err := p.prices.RecordHistory(ctx, t, p.opts.HistoryRange, p.opts.HistoryInterval)
		if err != nil {
			logging.Warnf("pulse poller: record history %s: %v", t, err)
			continue
		}
		logging.Debugf("pulse poller: %s posts=%d points=%d", t, len(snap.Posts), n)
	}
}
