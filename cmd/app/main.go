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
	"github.com/velopool/bikeshare/internal/bootstrap"
	"github.com/velopool/bikeshare/internal/cache"
	"github.com/velopool/bikeshare/internal/db"
	"github.com/velopool/bikeshare/internal/kafka"
	"github.com/velopool/bikeshare/internal/repository"
	"github.com/velopool/bikeshare/internal/service/rental"
	"github.com/velopool/bikeshare/internal/service/stations"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zlog.With().Str("service", "bikeshare-api").Logger()

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

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}

	stationsTTL := time.Duration(cfg.Rental.StationsCacheTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, stationsTTL)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	rentalRepo := repository.NewRentalRepository(pool)
	stationRepo := repository.NewStationRepository(pool)

	rentalService := rental.NewService(
		rentalRepo,
		producer,
		cfg.Kafka.RentalEventsTopic,
		rental.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		rental.WithLogger(logger),
	)
	stationService := stations.NewService(stationRepo, redisCache)

	handlers := bootstrap.Handlers{
		Rentals:   rentalService,
		Stations:  stationService,
		Users:     repository.NewUserRepository(pool),
		Reports:   repository.NewReportRepository(pool),
		Favorites: repository.NewFavoriteRepository(pool),
		Posts:     repository.NewPostRepository(pool),
	}

	logger.Info().Str("addr", cfg.HTTP.Address).Msg("starting http server")
	if err := bootstrap.Run(ctx, cfg, handlers); err != nil {
		logger.Fatal().Err(err).Msg("server error")
	}
}
