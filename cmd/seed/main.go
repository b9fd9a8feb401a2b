package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hris/config"
	pginfra "github.com/oksasatya/go-hris/internal/infrastructure/postgres"
	"github.com/oksasatya/go-hris/internal/infrastructure/redisstore"
	"github.com/oksasatya/go-hris/pkg/helpers"
)

// seed creates the default organization and the User / Admin roles that
// registration depends on. Safe to run any number of times.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 0, time.Minute)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	org, roles := pginfra.DefaultReferenceData(cfg.DefaultOrganizationID, cfg.DefaultRoleID, cfg.AdminRoleID)
	if err := pginfra.NewReferenceRepository(pool, cfg.StoreTimeout).EnsureDefaults(ctx, org, roles); err != nil {
		logger.WithError(err).Fatal("failed to seed reference data")
	}
	logger.WithFields(logrus.Fields{
		"organization_id": org.ID,
		"user_role_id":    cfg.DefaultRoleID,
		"admin_role_id":   cfg.AdminRoleID,
	}).Info("reference data ensured")

	// A running server may hold stale pick-lists.
	if cfg.RedisAddr == "" {
		return
	}
	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := redisstore.NewReferenceCache(rdb, cfg.ReferenceCacheTTL).Invalidate(ctx); err != nil {
		logger.WithError(err).Warn("reference cache not invalidated")
	}
}
