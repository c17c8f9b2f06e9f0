package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"supportchat/internal/config"
	"supportchat/internal/fallback"
	"supportchat/internal/model"
	mysqlClient "supportchat/internal/platform/mysql"
	rabbitmqClient "supportchat/internal/platform/rabbitmq"
	redisClient "supportchat/internal/platform/redis"
	"supportchat/internal/ratelimit"
	"supportchat/internal/repository"
	"supportchat/internal/worker"
)

type App struct {
	Config      *config.Config
	Logger      *logrus.Logger
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	EventWorker *worker.EventPersistWorker
	Limiter     *ratelimit.Limiter
	Resolver    *fallback.Resolver

	StartedAt   time.Time
	stopJanitor context.CancelFunc
	janitorDone chan struct{}
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProduction() {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(&model.User{}, &model.Message{}, &model.ChatEvent{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	eventRepo := repository.NewChatEventRepository(mysqlDB)
	eventWorker := worker.NewEventPersistWorker(mqConn, eventRepo, cfg.RabbitMQ.EventsQueue, logger)
	if err := eventWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start event worker failed: %w", err)
	}

	limiter := ratelimit.New(
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		cfg.RateLimit.MaxRequests,
	)
	resolver := fallback.NewResolver()

	app := &App{
		Config:      cfg,
		Logger:      logger,
		MySQL:       mysqlDB,
		Redis:       redisCli,
		MQConn:      mqConn,
		EventWorker: eventWorker,
		Limiter:     limiter,
		Resolver:    resolver,
		StartedAt:   time.Now(),
	}
	app.startJanitor(ctx)
	return app, nil
}

// startJanitor periodically evicts idle per-user limiter and conversation
// state so the in-memory maps stay bounded.
func (a *App) startJanitor(ctx context.Context) {
	janitorCtx, cancel := context.WithCancel(ctx)
	a.stopJanitor = cancel
	a.janitorDone = make(chan struct{})

	interval := time.Duration(a.Config.RateLimit.SweepIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	contextIdle := time.Duration(a.Config.RateLimit.ContextIdleMinutes) * time.Minute
	if contextIdle <= 0 {
		contextIdle = 30 * time.Minute
	}

	go func() {
		defer close(a.janitorDone)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-janitorCtx.Done():
				return
			case now := <-ticker.C:
				evictedLimits := a.Limiter.SweepIdle(now)
				evictedContexts := a.Resolver.SweepIdle(now, contextIdle)
				if evictedLimits > 0 || evictedContexts > 0 {
					a.Logger.WithFields(logrus.Fields{
						"rate_entries": evictedLimits,
						"contexts":     evictedContexts,
					}).Debug("swept idle chat state")
				}
			}
		}
	}()
}

func (a *App) Close() error {
	var closeErr error
	if a.stopJanitor != nil {
		a.stopJanitor()
		<-a.janitorDone
	}
	if a.EventWorker != nil {
		a.EventWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
