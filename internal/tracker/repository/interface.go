package repository

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pump-radar/pkg/chain"
)

type RedisClient = *redis.Client
type DBClient = *gorm.DB

// Repository hands out the shared infrastructure clients. The database is
// optional; GetDB returns nil when no DSN is configured.
type Repository interface {
	GetDB() DBClient
	GetRDB() RedisClient
	GetChainClient() *chain.Client
	Close() error
}
