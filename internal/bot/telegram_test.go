package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"sentiment-pulse/internal/domain"
)

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	if err := StartTelegramBot(context.Background(), Options{}, nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFormatQuote(t *testing.T) {
	got := formatQuote(&domain.PriceQuote{Ticker: "NVDA", Price: 1234.5, ChangePct: -2.5})
	want := "NVDA\nPrice: $1,234.5\nChange: -2.50%"
	if got != want {
		t.Fatalf("unexpected message:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatPulse(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	d := &domain.Dashboard{
		Ticker: "TSLA",
		Summary: domain.Summary{
			Total: 3, Positive: 1, Neutral: 1, Negative: 1,
			PositivePct: 33.3, NeutralPct: 33.3, NegativePct: 33.3,
		},
		Quote: &domain.PriceQuote{Ticker: "TSLA", Price: 205.12, ChangePct: 2.56},
		Recent: []domain.LabeledPost{
			{Post: domain.Post{Title: "TSLA is great"}, Sentiment: domain.SentimentPositive, CreatedAt: now.Add(-2 * time.Hour)},
			{Post: domain.Post{Title: "TSLA opens"}, Sentiment: domain.SentimentNeutral, CreatedAt: now.Add(-3 * time.Hour)},
			{Post: domain.Post{Title: "TSLA is bad"}, Sentiment: domain.SentimentNegative, CreatedAt: now.Add(-4 * time.Hour)},
			{Post: domain.Post{Title: "older"}, Sentiment: domain.SentimentNeutral, CreatedAt: now.Add(-5 * time.Hour)},
		},
	}

	msg := formatPulse(d, now)

	for _, want := range []string{
		"TSLA sentiment (3 posts)",
		"Positive: 1 (33.3%)",
		"Price: $205.12 (+2.56%)",
		"[positive] TSLA is great (2 hours ago)",
		"[negative] TSLA is bad (4 hours ago)",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in message:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "older") {
		t.Errorf("expected only %d headlines:\n%s", headlineCount, msg)
	}
}

func TestFormatPulseEmpty(t *testing.T) {
	msg := formatPulse(&domain.Dashboard{Ticker: "ZZZZ"}, time.Now())
	if !strings.HasSuffix(msg, "No recent posts found.") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestErrorMessage(t *testing.T) {
	if got := errorMessage("b@d", fmt.Errorf("%w: x", domain.ErrInvalidTicker)); got != "Not a ticker: b@d" {
		t.Fatalf("unexpected: %s", got)
	}
	if got := errorMessage("tsla", domain.ErrPriceUnavailable); got != "No price data for TSLA" {
		t.Fatalf("unexpected: %s", got)
	}
	if got := errorMessage("tsla", errors.New("boom")); !strings.HasPrefix(got, "Error fetching TSLA") {
		t.Fatalf("unexpected: %s", got)
	}
}
