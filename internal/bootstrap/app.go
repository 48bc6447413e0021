package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"studymate/internal/ai"
	"studymate/internal/cache"
	"studymate/internal/config"
	"studymate/internal/model"
	mysqlClient "studymate/internal/platform/mysql"
	rabbitmqClient "studymate/internal/platform/rabbitmq"
	redisClient "studymate/internal/platform/redis"
	"studymate/internal/worker"
)

type App struct {
	Config       *config.Config
	MySQL        *gorm.DB
	Redis        *redis.Client
	MQConn       *amqp.Connection
	Generator    ai.Generator
	HistoryCache *cache.HistoryCache
	CacheWorker  *worker.HistoryInvalidateWorker

	StartedAt time.Time

	geminiClient *ai.GeminiClient
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mysqlDB, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := mysqlDB.AutoMigrate(
		&model.User{},
		&model.Paragraph{},
		&model.DocumentChat{},
		&model.FreeformChat{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		MySQL:     mysqlDB,
		Redis:     redisCli,
		MQConn:    mqConn,
		StartedAt: time.Now(),
	}

	if err := app.buildGenerator(ctx); err != nil {
		return nil, err
	}

	app.HistoryCache = cache.NewHistoryCache(
		redisCli,
		time.Duration(cfg.Redis.HistoryTTLSeconds)*time.Second,
		time.Duration(cfg.Redis.HistoryDirtyTTLSeconds)*time.Second,
	)

	app.CacheWorker = worker.NewHistoryInvalidateWorker(mqConn, app.HistoryCache, cfg.RabbitMQ.HistoryInvalidateQueue)
	if err := app.CacheWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start history invalidate worker failed: %w", err)
	}

	return app, nil
}

func (a *App) buildGenerator(ctx context.Context) error {
	switch a.Config.LLM.Provider {
	case "openai":
		a.Generator = ai.NewOpenAIClient(a.Config.LLM.BaseURL, a.Config.LLM.APIKey, a.Config.LLM.Model)
		return nil
	case "gemini", "":
		client, err := ai.NewGeminiClient(ctx, a.Config.LLM.GeminiAPIKey, a.Config.LLM.GeminiModel)
		if err != nil {
			return err
		}
		a.geminiClient = client
		a.Generator = client
		return nil
	default:
		return fmt.Errorf("unknown llm provider %q", a.Config.LLM.Provider)
	}
}

func (a *App) Close() error {
	var closeErr error
	if a.CacheWorker != nil {
		a.CacheWorker.Close()
	}
	if a.geminiClient != nil {
		if err := a.geminiClient.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
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
