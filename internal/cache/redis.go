package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/velopool/bikeshare/config"
	"github.com/velopool/bikeshare/internal/domain"
)

type RedisCache struct {
	client      *redis.Client
	stationsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, stationsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		stationsTTL: stationsTTL,
	}
}

func (c *RedisCache) GetStations(ctx context.Context) ([]domain.Station, error) {
	data, err := c.client.Get(ctx, stationsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stations []domain.Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

func (c *RedisCache) SetStations(ctx context.Context, stations []domain.Station) error {
	payload, err := json.Marshal(stations)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, stationsKey(), payload, c.stationsTTL).Err()
}

// InvalidateStations drops both cached views; admin mutations call this so
// stale availability is never served past the write.
func (c *RedisCache) InvalidateStations(ctx context.Context) error {
	return c.client.Del(ctx, stationsKey(), statsKey()).Err()
}

func (c *RedisCache) GetStationStats(ctx context.Context) ([]domain.StationStat, error) {
	data, err := c.client.Get(ctx, statsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats []domain.StationStat
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (c *RedisCache) SetStationStats(ctx context.Context, stats []domain.StationStat) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey(), payload, c.stationsTTL).Err()
}

func stationsKey() string {
	return "cache:stations"
}

func statsKey() string {
	return "cache:station_stats"
}
