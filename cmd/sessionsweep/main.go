// Command sessionsweep removes idle sessions. It is meant to run on a
// cron cadence; the server itself never sweeps inline.
package main

import (
	"context"
	"log"
	"time"

	"github.com/you/noticehub/internal/config"
	"github.com/you/noticehub/internal/infrastructure/auth"
	"github.com/you/noticehub/internal/infrastructure/database"
	"github.com/you/noticehub/internal/infrastructure/repositories"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx); err != nil {
		log.Fatalf("redis: %v", err)
	}

	sessions := repositories.NewSessionRepository(rdb.Client, auth.NewTokenService(32), cfg.SessionTTL)
	removed, err := sessions.Sweep(ctx, cfg.SweepMaxAge)
	if err != nil {
		log.Fatalf("sweep: %v", err)
	}

	log.Printf("SESSION_SWEEP: removed=%d max_age=%s", removed, cfg.SweepMaxAge)
}
