package app

import (
	"database/sql"
	"errors"

	"go-hrm/internal/config"
	"go-hrm/internal/middleware"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/shared/database"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const redisMaxRetries = 5

// Infrastructure holds the shared connections every module is built on.
type Infrastructure struct {
	GormDB *gorm.DB
	DB     *sql.DB
	Redis  *redis.Client
}

// Connect opens Postgres and, when configured, Redis. A missing Redis
// address disables caching and idempotency rather than failing startup.
func Connect(cfg *config.Config, logger *zap.Logger) (*Infrastructure, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}

	infra := &Infrastructure{GormDB: gormDB, DB: sqlDB}

	if cfg.Redis.Addr != "" {
		rdb, err := connection.ConnectRedisWithRetry(cfg.Redis, redisMaxRetries, logger)
		if err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		infra.Redis = rdb
	}

	return infra, nil
}

func (i *Infrastructure) Close() error {
	var errs []error
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.DB != nil {
		errs = append(errs, i.DB.Close())
	}
	return errors.Join(errs...)
}

// BuildApp connects, migrates and mounts every module on router. The caller
// owns the returned Infrastructure and must Close it.
func BuildApp(cfg *config.Config, router *gin.Engine, logger *zap.Logger) (*Infrastructure, error) {
	infra, err := Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := database.RunMigrations(infra.DB, logger); err != nil {
		_ = infra.Close()
		return nil, err
	}

	modules, err := NewModules(cfg, infra, logger)
	if err != nil {
		_ = infra.Close()
		return nil, err
	}

	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger.Named("http")),
	)
	modules.RegisterRoutes(router)

	logger.Info("application modules registered")
	return infra, nil
}
