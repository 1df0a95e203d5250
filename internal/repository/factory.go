// Package repository provides the initialization for repository implementations
package repository

import (
	"github.com/edumon/acrooms/internal/config"
	"github.com/edumon/acrooms/internal/repository/memory"
	"github.com/edumon/acrooms/internal/repository/redis"
)

// init registers the actual repository implementations
func init() {
	newRedisRepository = func(cfg config.RedisConfig) (Repository, error) {
		return redis.NewRepository(cfg)
	}

	newMemoryRepository = func() Repository {
		return memory.NewRepository()
	}
}
