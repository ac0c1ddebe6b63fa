package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	tele "gopkg.in/telebot.v3"

	"sentiment-pulse/internal/domain"
	"sentiment-pulse/internal/logging"
)

const (
	commandTimeout = 30 * time.Second
	headlineCount  = 3
)

type DashboardReader interface {
	Dashboard(ctx context.Context, ticker string, limit int, ttl time.Duration) (*domain.Dashboard, error)
}

type QuoteReader interface {
	Quote(ctx context.Context, ticker string) (*domain.PriceQuote, error)
}

type Options struct {
	Token string
	Limit int
	TTL   time.Duration
}

// StartTelegramBot registers the chat commands and starts long polling in the
// background. The bot stops when ctx is cancelled. An empty token disables it.
func StartTelegramBot(ctx context.Context, opts Options, pulse DashboardReader, prices QuoteReader) error {
	if opts.Token == "" {
		logging.Infof("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return nil
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  opts.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return fmt.Errorf("create telegram bot: %w", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/pulse", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /pulse TSLA")
		}
		cctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		d, err := pulse.Dashboard(cctx, args[0], opts.Limit, opts.TTL)
		if err != nil {
			return c.Send(errorMessage(args[0], err))
		}
		return c.Send(formatPulse(d, time.Now()))
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send("Usage: /price TSLA")
		}
		cctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()
		q, err := prices.Quote(cctx, args[0])
		if err != nil {
			return c.Send(errorMessage(args[0], err))
		}
		return c.Send(formatQuote(q))
	})

	go func() {
		<-ctx.Done()
		b.Stop()
	}()

	logging.Infof("Telegram bot started")
	go b.Start()
	return nil
}

func errorMessage(ticker string, err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidTicker):
		return fmt.Sprintf("Not a ticker: %s", ticker)
	case errors.Is(err, domain.ErrPriceUnavailable):
		return fmt.Sprintf("No price data for %s", strings.ToUpper(ticker))
	}
	logging.Warnf("telegram command for %s failed: %v", ticker, err)
	return fmt.Sprintf("Error fetching %s, try again later", strings.ToUpper(ticker))
}

func formatQuote(q *domain.PriceQuote) string {
	return fmt.Sprintf("%s\nPrice: $%s\nChange: %+.2f%%", q.Ticker, humanize.CommafWithDigits(q.Price, 2), q.ChangePct)
}

func formatPulse(d *domain.Dashboard, now time.Time) string {
	var sb strings.Builder
	s := d.Summary
	fmt.Fprintf(&sb, "%s sentiment (%s posts)\n", d.Ticker, humanize.Comma(int64(s.Total)))
	if s.Total == 0 {
		sb.WriteString("No recent posts found.")
		return sb.String()
	}
	fmt.Fprintf(&sb, "Positive: %d (%.1f%%)\nNeutral: %d (%.1f%%)\nNegative: %d (%.1f%%)\n",
		s.Positive, s.PositivePct, s.Neutral, s.NeutralPct, s.Negative, s.NegativePct)
	if d.Quote != nil {
		fmt.Fprintf(&sb, "Price: $%s (%+.2f%%)\n", humanize.CommafWithDigits(d.Quote.Price, 2), d.Quote.ChangePct)
	}
	for i, p := range d.Recent {
		if i == headlineCount {
			break
		}
		fmt.Fprintf(&sb, "\n[%s] %s (%s)", p.Sentiment, p.Title, humanize.RelTime(p.CreatedAt, now, "ago", "from now"))
	}
	return strings.TrimRight(sb.String(), "\n")
}
