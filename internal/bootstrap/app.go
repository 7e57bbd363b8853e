package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"freewen/internal/ai"
	"freewen/internal/cache"
	"freewen/internal/config"
	"freewen/internal/model"
	"freewen/internal/planner"
	mysqlClient "freewen/internal/platform/mysql"
	rabbitmqClient "freewen/internal/platform/rabbitmq"
	redisClient "freewen/internal/platform/redis"
	"freewen/internal/repository"
	"freewen/internal/store"
	"freewen/internal/worker"
)

type App struct {
	Config   *config.Config
	Sessions *store.SessionStore
	Planner  *planner.Service

	MySQL         *gorm.DB
	Redis         *redis.Client
	MQConn        *amqp.Connection
	ArchiveWorker *worker.ArchiveWorker
	PlanRecords   *repository.PlanRecordRepository

	StartedAt time.Time
}

// New wires the application. The Gemini credential is the only hard
// requirement; the cache and archive backends attach only when enabled.
func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	app := &App{
		Config:    cfg,
		Sessions:  store.NewSessionStore(),
		StartedAt: time.Now(),
	}

	var planCache planner.ResponseCache
	if cfg.Cache.Enabled {
		redisCli, err := redisClient.New(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			return nil, err
		}
		app.Redis = redisCli
		planCache = cache.NewPlanCache(redisCli, time.Duration(cfg.Cache.ResponseTTLSeconds)*time.Second)
	}

	var archive planner.RecordPublisher
	if cfg.Archive.Enabled {
		mysqlDB, err := mysqlClient.New(ctx, cfg.ArchiveMySQLDSN())
		if err != nil {
			return nil, err
		}
		if err := mysqlDB.AutoMigrate(&model.PlanRecord{}); err != nil {
			return nil, fmt.Errorf("auto migrate tables failed: %w", err)
		}
		app.MySQL = mysqlDB

		mqConn, err := rabbitmqClient.New(ctx, cfg.Archive.RabbitMQURL)
		if err != nil {
			return nil, err
		}
		app.MQConn = mqConn

		recordRepo := repository.NewPlanRecordRepository(mysqlDB)
		app.PlanRecords = recordRepo
		archiveWorker := worker.NewArchiveWorker(mqConn, recordRepo, cfg.Archive.Queue)
		if err := archiveWorker.Start(ctx); err != nil {
			return nil, fmt.Errorf("start archive worker failed: %w", err)
		}
		app.ArchiveWorker = archiveWorker
		archive = rabbitmqClient.NewRecordPublisher(mqConn, cfg.Archive.Queue)
	}

	gemini := ai.NewGeminiClient(ai.GeminiConfig{
		APIKey:   cfg.Gemini.APIKey,
		Model:    cfg.Gemini.Model,
		Endpoint: cfg.Gemini.Endpoint,
		Timeout:  time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
	})
	app.Planner = planner.NewService(app.Sessions, gemini, planCache, archive, cfg.Gemini.Grounding)

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.ArchiveWorker != nil {
		a.ArchiveWorker.Close()
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
