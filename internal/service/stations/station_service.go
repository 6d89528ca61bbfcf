package stations

import (
	"context"

	"github.com/velopool/bikeshare/internal/domain"
	"github.com/velopool/bikeshare/internal/repository"
)

type UseCase interface {
	List(ctx context.Context) ([]domain.Station, error)
	GetByID(ctx context.Context, id int64) (*domain.Station, error)
	Create(ctx context.Context, station *domain.Station) error
	Update(ctx context.Context, station *domain.Station) error
	Delete(ctx context.Context, id int64) error
	ToggleOpen(ctx context.Context, id int64) (*domain.Station, error)
	AdjustInventory(ctx context.Context, id int64, delta int) (*domain.Station, error)
	SetCapacity(ctx context.Context, id int64, capacity int) (*domain.Station, error)
	Stats(ctx context.Context) ([]domain.StationStat, error)
	RefreshStats(ctx context.Context) error
}

type Cache interface {
	GetStations(ctx context.Context) ([]domain.Station, error)
	SetStations(ctx context.Context, stations []domain.Station) error
	InvalidateStations(ctx context.Context) error
	GetStationStats(ctx context.Context) ([]domain.StationStat, error)
	SetStationStats(ctx context.Context, stats []domain.StationStat) error
}

type Service struct {
	repo  repository.StationRepository
	cache Cache
}

func NewService(repo repository.StationRepository, cache Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) List(ctx context.Context) ([]domain.Station, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetStations(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	stations, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetStations(ctx, stations)
	}
	return stations, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, station *domain.Station) error {
	if station.Name == "" || station.Capacity <= 0 ||
		station.Available < 0 || station.Available > station.Capacity {
		return domain.ErrInvalidInput
	}
	if err := s.repo.Create(ctx, station); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Update(ctx context.Context, station *domain.Station) error {
	if station.ID <= 0 || station.Name == "" {
		return domain.ErrInvalidInput
	}
	if err := s.repo.Update(ctx, station); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) ToggleOpen(ctx context.Context, id int64) (*domain.Station, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	station, err := s.repo.ToggleOpen(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return station, nil
}

func (s *Service) AdjustInventory(ctx context.Context, id int64, delta int) (*domain.Station, error) {
	if id <= 0 || delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	station, err := s.repo.AdjustInventory(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return station, nil
}

func (s *Service) SetCapacity(ctx context.Context, id int64, capacity int) (*domain.Station, error) {
	if id <= 0 || capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	station, err := s.repo.SetCapacity(ctx, id, capacity)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return station, nil
}

func (s *Service) Stats(ctx context.Context) ([]domain.StationStat, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetStationStats(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetStationStats(ctx, stats)
	}
	return stats, nil
}

// RefreshStats recomputes the aggregation and rewrites the cache. The
// worker calls this on a timer so dashboards see fresh numbers even when
// nobody hits the stats endpoint.
func (s *Service) RefreshStats(ctx context.Context) error {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return err
	}
	if s.cache != nil {
		return s.cache.SetStationStats(ctx, stats)
	}
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateStations(ctx)
	}
}

var _ UseCase = (*Service)(nil)
