package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "sentiment-pulse/docs"
	"sentiment-pulse/internal/bot"
	"sentiment-pulse/internal/cache"
	"sentiment-pulse/internal/config"
	"sentiment-pulse/internal/db"
	"sentiment-pulse/internal/handler"
	"sentiment-pulse/internal/job"
	"sentiment-pulse/internal/logging"
	"sentiment-pulse/internal/metrics"
	"sentiment-pulse/internal/provider"
	"sentiment-pulse/internal/sentiment"
	"sentiment-pulse/internal/service"
	"sentiment-pulse/pkg/tracing"
)

const serviceName = "sentiment-pulse"

var (
	loadConfigFunc   = config.Load
	initLoggingFunc  = logging.Init
	initPostgresFunc = db.InitPostgres
	migrateFunc      = func(ctx context.Context) (int, error) {
		m, err := db.NewMigrator(db.Pool)
		if err != nil {
			return 0, err
		}
		return m.Up(ctx)
	}
	initRedisFunc          = cache.InitRedis
	initTracerFunc         = tracing.InitTracer
	newPostFetcherFunc     = func(cfg *config.Config, deps *deps) service.PostFetcher { return newRedditProvider(cfg, deps) }
	newPriceFetcherFunc    = func(deps *deps) service.PriceFetcher { return provider.NewYahooProvider(deps.tracer, deps.metrics) }
	newScorerFunc          = func() sentiment.Scorer { return sentiment.NewVaderScorer() }
	startPollerFunc        = func(p *job.PulsePoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.New
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Sentiment Pulse API
// @version         1.0
// @description     Reddit sentiment and price overlay for stock tickers.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        X-API-Key
func main() {
	cfg, err := loadConfigFunc()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := initLoggingFunc(cfg.LogLevel, cfg.AppEnv); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx, tracing.Options{
		Enabled:     cfg.TracingEnabled,
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: serviceName,
		Environment: cfg.AppEnv,
		SampleRatio: cfg.SampleRatio,
	})
	if err != nil {
		logging.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logging.Warnf("error shutting down tracer provider: %v", err)
		}
	}()

	reg := metrics.NewRegistry()
	d := &deps{tracer: tracer, metrics: metrics.New(reg), clock: clockwork.NewRealClock()}

	if err := initPostgresFunc(ctx, cfg.DatabaseURL); err != nil {
		logging.Warnf("postgres unavailable, archive disabled: %v", err)
	}
	defer db.Close()
	if db.Pool != nil {
		n, err := migrateFunc(ctx)
		if err != nil {
			logging.Fatalf("failed to run migrations: %v", err)
		}
		logging.Infof("applied %d migrations", n)
	}

	if cfg.RedisURL != "" {
		if err := initRedisFunc(ctx, cfg.RedisURL); err != nil {
			logging.Warnf("redis unavailable, using in-memory cache: %v", err)
		}
	}

	priceService := service.NewPriceService(tracer, newPriceFetcherFunc(d), priceStore(tracer), quoteCache())
	classifier := sentiment.NewClassifier(newScorerFunc(), sentiment.WithLocation(cfg.Location()))
	pulseService := service.NewPulseService(
		tracer,
		newPostFetcherFunc(cfg, d),
		priceService,
		classifier,
		analysisCache(d),
		postStore(tracer),
		d.clock,
		d.metrics,
		service.PulseOptions{HistoryRange: cfg.PriceHistoryRange, HistoryInterval: cfg.PriceHistoryInterval},
	)

	poller := job.NewPulsePoller(tracer, pulseService, priceService, d.clock, job.PollerOptions{
		Watchlist:       cfg.PulseWatchlist,
		Limit:           cfg.PulseDefaultLimit,
		Interval:        cfg.PollInterval(),
		HistoryRange:    cfg.PriceHistoryRange,
		HistoryInterval: cfg.PriceHistoryInterval,
	})
	startPollerFunc(poller, ctx)

	if err := startTelegramBotFunc(ctx, bot.Options{
		Token: cfg.TelegramBotToken,
		Limit: cfg.PulseDefaultLimit,
		TTL:   cfg.CacheTTL(),
	}, pulseService, priceService); err != nil {
		logging.Warnf("telegram bot disabled: %v", err)
	}

	h := handler.New(tracer, pulseService, priceService, handler.Defaults{
		Limit:           cfg.PulseDefaultLimit,
		TTLSecs:         cfg.PulseCacheTTLSecs,
		HistoryRange:    cfg.PriceHistoryRange,
		HistoryInterval: cfg.PriceHistoryInterval,
	})

	registerHealthChecks(h)

	r := newRouterFunc()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(d.metrics.Middleware())

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/metrics", gin.WrapH(metrics.Handler(reg)))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Infof("listening on %s", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	logging.Infof("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		logging.Errorf("server forced to shutdown: %v", err)
	}

	logging.Infof("server exiting")
}
