package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"sentiment-pulse/internal/domain"
	"sentiment-pulse/internal/logging"
)

const (
	MinPostLimit = 10
	MaxPostLimit = 200

	MinCacheTTLSecs = 60
	MaxCacheTTLSecs = 3600
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPPort int    `envconfig:"HTTP_PORT" default:"8080"`
	APIKey   string `envconfig:"API_KEY"`

	DatabaseURL      string `envconfig:"DATABASE_URL"`
	RedisURL         string `envconfig:"REDIS_URL"`
	TelegramBotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`

	TracingEnabled bool    `envconfig:"TRACING_ENABLED" default:"true"`
	OTLPEndpoint   string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	SampleRatio    float64 `envconfig:"TRACING_SAMPLE_RATIO" default:"1"`

	RedditSubreddit      string `envconfig:"REDDIT_SUBREDDIT" default:"wallstreetbets"`
	RedditUserAgent      string `envconfig:"REDDIT_USER_AGENT" default:"sentiment-pulse/1.0"`
	RedditSearchSort     string `envconfig:"REDDIT_SEARCH_SORT" default:"new"`
	RedditRequestsPerMin int    `envconfig:"REDDIT_REQUESTS_PER_MIN" default:"30"`

	PriceHistoryRange    string `envconfig:"PRICE_HISTORY_RANGE" default:"7d"`
	PriceHistoryInterval string `envconfig:"PRICE_HISTORY_INTERVAL" default:"1h"`

	PulseDefaultLimit int      `envconfig:"PULSE_DEFAULT_LIMIT" default:"50"`
	PulseCacheTTLSecs int      `envconfig:"PULSE_CACHE_TTL_SECS" default:"600"`
	PulseTimezone     string   `envconfig:"PULSE_TIMEZONE" default:"UTC"`
	PulseWatchlist    []string `envconfig:"PULSE_WATCHLIST"`
	PulsePollSecs     int      `envconfig:"PULSE_POLL_SECS" default:"900"`

	location *time.Location
}

var validSorts = map[string]bool{
	"new": true, "relevance": true, "hot": true, "top": true, "comments": true,
}

// Load reads an optional .env file, then the environment. Values out of their
// allowed range are replaced with a warning instead of failing startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}

	if cfg.TelegramBotToken == "" {
		logging.Warnf("TELEGRAM_BOT_TOKEN not set, bot disabled")
	}
	if cfg.DatabaseURL == "" {
		logging.Warnf("DATABASE_URL not set, archive disabled")
	}
	if cfg.RedisURL == "" {
		logging.Warnf("REDIS_URL not set, using in-memory analysis cache")
	}

	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		logging.Warnf("invalid HTTP_PORT=%d, defaulting to 8080", cfg.HTTPPort)
		cfg.HTTPPort = 8080
	}

	cfg.RedditSearchSort = strings.ToLower(strings.TrimSpace(cfg.RedditSearchSort))
	if !validSorts[cfg.RedditSearchSort] {
		logging.Warnf("unsupported REDDIT_SEARCH_SORT=%q, defaulting to new", cfg.RedditSearchSort)
		cfg.RedditSearchSort = "new"
	}
	if cfg.RedditRequestsPerMin <= 0 {
		cfg.RedditRequestsPerMin = 30
	}

	if clamped := ClampLimit(cfg.PulseDefaultLimit); clamped != cfg.PulseDefaultLimit {
		logging.Warnf("PULSE_DEFAULT_LIMIT=%d out of range, using %d", cfg.PulseDefaultLimit, clamped)
		cfg.PulseDefaultLimit = clamped
	}
	if clamped := ClampTTLSecs(cfg.PulseCacheTTLSecs); clamped != cfg.PulseCacheTTLSecs {
		logging.Warnf("PULSE_CACHE_TTL_SECS=%d out of range, using %d", cfg.PulseCacheTTLSecs, clamped)
		cfg.PulseCacheTTLSecs = clamped
	}
	if cfg.PulsePollSecs < MinCacheTTLSecs {
		logging.Warnf("PULSE_POLL_SECS=%d too short, using %d", cfg.PulsePollSecs, MinCacheTTLSecs)
		cfg.PulsePollSecs = MinCacheTTLSecs
	}

	loc, err := time.LoadLocation(strings.TrimSpace(cfg.PulseTimezone))
	if err != nil {
		logging.Warnf("unknown PULSE_TIMEZONE=%q, using UTC", cfg.PulseTimezone)
		loc = time.UTC
		cfg.PulseTimezone = "UTC"
	}
	cfg.location = loc

	cfg.PulseWatchlist = normalizeWatchlist(cfg.PulseWatchlist)

	return &cfg, nil
}

// Location is the time zone posts are bucketed in.
func (c *Config) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.PulseCacheTTLSecs) * time.Second
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PulsePollSecs) * time.Second
}

// ClampLimit bounds a post count to the supported search window. Zero or
// negative values are treated as unset and clamp to the minimum.
func ClampLimit(n int) int {
	switch {
	case n < MinPostLimit:
		return MinPostLimit
	case n > MaxPostLimit:
		return MaxPostLimit
	}
	return n
}

func ClampTTLSecs(n int) int {
	switch {
	case n < MinCacheTTLSecs:
		return MinCacheTTLSecs
	case n > MaxCacheTTLSecs:
		return MaxCacheTTLSecs
	}
	return n
}

func normalizeWatchlist(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if strings.TrimSpace(v) == "" {
			continue
		}
		t, err := domain.NormalizeTicker(v)
		if err != nil {
			logging.Warnf("dropping watchlist entry %q: %v", v, err)
			continue
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
