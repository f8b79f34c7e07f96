package tracker

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"pump-radar/internal/tracker/alert"
	"pump-radar/internal/tracker/config"
	"pump-radar/internal/tracker/consumer"
	"pump-radar/internal/tracker/dao"
	"pump-radar/internal/tracker/enricher"
	"pump-radar/internal/tracker/job"
	"pump-radar/internal/tracker/monitor"
	"pump-radar/internal/tracker/pipeline"
	"pump-radar/internal/tracker/repository"
	"pump-radar/pkg/market"
)

type Core struct {
	cfg       config.Config
	tl        *zap.Logger
	repo      repository.Repository
	scheduler *job.Scheduler
	consumers []consumer.KafkaConsumer
	metrics   *monitor.MetricsServer
}

func New(cfg config.Config, logger *zap.Logger) *Core {
	scheduler := job.NewScheduler(logger)
	repo := repository.New(cfg, logger)

	providers := []market.Provider{
		market.NewMoralisClient(market.MoralisConfig{
			GatewayURL: cfg.Moralis.GatewayURL,
			APIKey:     cfg.Moralis.APIKey,
			RateLimit:  cfg.Moralis.RateLimit,
			Timeout:    cfg.Moralis.Timeout,
		}, logger),
		market.NewDexScreenerClient(market.DexScreenerConfig{
			BaseURL:   cfg.DexScreener.BaseURL,
			RateLimit: cfg.DexScreener.RateLimit,
			Timeout:   cfg.DexScreener.Timeout,
		}, logger),
	}

	notifier := newNotifier(cfg, logger)

	var store pipeline.AlertStore
	if db := repo.GetDB(); db != nil {
		alertDAO, err := dao.NewAlertDAO(db)
		if err != nil {
			logger.Warn("alert history unavailable, continue without it", zap.Error(err))
		} else {
			store = alertDAO
		}
	}

	chainClient := repo.GetChainClient()
	enrich := enricher.New(chainClient, providers, logger)

	pipe := pipeline.New(
		chainClient,
		enrich,
		notifier,
		store,
		config.Filters,
		cfg.Tracker.EventsPerMinuteCap,
		time.Duration(cfg.Tracker.CacheTTLMin)*time.Minute,
		logger,
	)

	poller := job.NewPoller(chainClient, repo.GetRDB(), pipe, cfg.Tracker, logger)
	scheduler.RegisterJob("chain_poller",
		time.Duration(cfg.Tracker.PollIntervalSec)*time.Second, poller.Poll)

	recap := job.NewRecap(pipe, notifier, cfg.Tracker.RecapTopN, logger)
	scheduler.RegisterJob("market_recap",
		time.Duration(cfg.Tracker.RecapIntervalMin)*time.Minute, recap.Run)

	var consumers []consumer.KafkaConsumer
	if strings.TrimSpace(cfg.Kafka.Brokers) != "" {
		consumers = append(consumers, consumer.NewEventConsumer(cfg, logger, pipe))
	} else {
		logger.Info("kafka brokers empty, webhook consumer disabled")
	}

	return &Core{
		cfg:       cfg,
		tl:        logger,
		repo:      repo,
		scheduler: scheduler,
		consumers: consumers,
		metrics:   monitor.NewMetricsServer(cfg.Monitor),
	}
}

func newNotifier(cfg config.Config, logger *zap.Logger) alert.Notifier {
	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		logger.Warn("telegram token empty, alerts go to the log only")
		return alert.NewLogNotifier(logger)
	}

	tg, err := alert.NewTelegramNotifier(cfg.Telegram, logger)
	if err != nil {
		logger.Error("telegram init failed, alerts go to the log only", zap.Error(err))
		return alert.NewLogNotifier(logger)
	}
	return tg
}

func (c *Core) Start(ctx context.Context) {
	c.tl.Info("Starting tracker core...")

	if c.metrics != nil {
		c.metrics.Run()
	}

	for _, cons := range c.consumers {
		go cons.Run(ctx)
	}

	c.scheduler.Start(ctx)
	c.tl.Info("Tracker started successfully")

	<-ctx.Done()
	c.tl.Info("Shutting down tracker due to context cancellation...")
}

// Stop releases every resource the core holds, bounded by ctx.
func (c *Core) Stop(ctx context.Context) {
	c.tl.Info("Stopping tracker core...")

	for _, cons := range c.consumers {
		cons.Stop()
	}

	if c.scheduler != nil {
		c.scheduler.Stop(ctx)
	}

	if c.metrics != nil {
		_ = c.metrics.Stop(ctx)
	}

	c.repo.Close()

	c.tl.Info("Tracker core stopped.")
}
