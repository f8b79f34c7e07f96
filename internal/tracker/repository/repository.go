package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"pump-radar/internal/tracker/config"
	"pump-radar/pkg/chain"
	"pump-radar/pkg/database"
)

var once sync.Once
var r *repositoryImpl

func New(cfg config.Config, logger *zap.Logger) Repository {
	once.Do(func() {
		r = &repositoryImpl{
			cfg:    cfg,
			logger: logger,
		}
		r.init()
	})
	return r
}

type repositoryImpl struct {
	cfg         config.Config
	logger      *zap.Logger
	db          *gorm.DB
	rdb         *redis.Client
	chainClient *chain.Client
}

func (r *repositoryImpl) init() {
	var err error

	if strings.TrimSpace(r.cfg.Postgres.DSN) != "" {
		r.db, err = database.InitPG(r.cfg.Postgres.DSN)
		if err != nil {
			panic(err)
		}
	} else {
		r.logger.Info("postgres dsn empty, alert history disabled")
	}

	r.rdb = redis.NewClient(&redis.Options{
		Addr:     r.cfg.Redis.Address,
		Password: r.cfg.Redis.Password,
		DB:       r.cfg.Redis.DB,
		PoolSize: 20,
	})
	if err := r.rdb.Ping(context.Background()).Err(); err != nil {
		r.logger.Warn("failed to connect to redis, continue", zap.Error(err))
	}

	r.chainClient = chain.NewClient(r.cfg.SolanaClientRawUrl, r.logger)
}

func (r *repositoryImpl) GetDB() DBClient {
	return r.db
}

func (r *repositoryImpl) GetRDB() RedisClient {
	return r.rdb
}

func (r *repositoryImpl) GetChainClient() *chain.Client {
	return r.chainClient
}

func (r *repositoryImpl) Close() error {
	if r.rdb != nil {
		if err := r.rdb.Close(); err != nil {
			r.logger.Warn("close redis failed", zap.Error(err))
		}
	}
	if r.db != nil {
		if sqlDB, err := r.db.DB(); err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
