package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/velopool/bikeshare/config"
	"github.com/velopool/bikeshare/internal/cache"
	"github.com/velopool/bikeshare/internal/db"
	"github.com/velopool/bikeshare/internal/kafka"
	"github.com/velopool/bikeshare/internal/notify"
	"github.com/velopool/bikeshare/internal/repository"
	"github.com/velopool/bikeshare/internal/service/stations"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zlog.With().Str("service", "bikeshare-worker").Logger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect postgres")
	}
	defer pool.Close()

	stationsTTL := time.Duration(cfg.Rental.StationsCacheTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, stationsTTL)
	stationService := stations.NewService(repository.NewStationRepository(pool), redisCache)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, logger)
	defer consumer.Close()

	sender := notify.NewSender(logger)

	go func() {
		if err := consumer.Consume(ctx, sender.Send); err != nil && ctx.Err() == nil {
			logger.Error().Err(err).Msg("consumer stopped")
		}
	}()

	sweep := time.Duration(cfg.Worker.StatsRefreshMinutes) * time.Minute
	if sweep <= 0 {
		sweep = 5 * time.Minute
	}
	ticker := time.NewTicker(sweep)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := stationService.RefreshStats(ctx); err != nil {
				logger.Warn().Err(err).Msg("refresh station stats")
			}
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			return
		}
	}
}
