package repository

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"

	"sentiment-pulse/internal/domain"
)

func TestSaveSnapshotRejectsBadRunID(t *testing.T) {
	repo := NewPostRepository(nil, trace.NewNoopTracerProvider().Tracer("test"))
	err := repo.SaveSnapshot(context.Background(), &domain.PulseSnapshot{RunID: "not-a-uuid", Ticker: "TSLA"})
	if err == nil {
		t.Fatal("expected run id parse error")
	}
}

func TestSaveNilSnapshotAndEmptySeriesAreNoops(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	if err := NewPostRepository(nil, tracer).SaveSnapshot(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := NewPriceRepository(nil, tracer).UpsertPoints(context.Background(), "TSLA", "1h", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
