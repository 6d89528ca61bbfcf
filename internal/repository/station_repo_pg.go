package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velopool/bikeshare/internal/domain"
)

type StationRepository interface {
	List(ctx context.Context) ([]domain.Station, error)
	GetByID(ctx context.Context, id int64) (*domain.Station, error)
	Create(ctx context.Context, station *domain.Station) error
	Update(ctx context.Context, station *domain.Station) error
	Delete(ctx context.Context, id int64) error
	ToggleOpen(ctx context.Context, id int64) (*domain.Station, error)
	// AdjustInventory applies an admin delta to available, clamped into
	// [0, capacity], under the station row lock.
	AdjustInventory(ctx context.Context, id int64, delta int) (*domain.Station, error)
	// SetCapacity changes capacity and clamps available down if needed,
	// under the station row lock.
	SetCapacity(ctx context.Context, id int64, capacity int) (*domain.Station, error)
	Stats(ctx context.Context) ([]domain.StationStat, error)
}

type PGStationRepository struct {
	db *pgxpool.Pool
}

func NewStationRepository(db *pgxpool.Pool) StationRepository {
	return &PGStationRepository{db: db}
}

const stationColumns = `id, name, lat, lng, capacity, available, open, created_at, updated_at`

func scanStation(row pgx.Row) (*domain.Station, error) {
	var s domain.Station
	err := row.Scan(&s.ID, &s.Name, &s.Lat, &s.Lng, &s.Capacity, &s.Available, &s.Open, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStationNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &s, nil
}

func (r *PGStationRepository) List(ctx context.Context) ([]domain.Station, error) {
	rows, err := r.db.Query(ctx, `SELECT `+stationColumns+` FROM stations ORDER BY name`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	stations := make([]domain.Station, 0)
	for rows.Next() {
		var s domain.Station
		if err := rows.Scan(&s.ID, &s.Name, &s.Lat, &s.Lng, &s.Capacity, &s.Available, &s.Open, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, storeErr(err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return stations, nil
}

func (r *PGStationRepository) GetByID(ctx context.Context, id int64) (*domain.Station, error) {
	return scanStation(r.db.QueryRow(ctx, `SELECT `+stationColumns+` FROM stations WHERE id=$1`, id))
}

func (r *PGStationRepository) Create(ctx context.Context, station *domain.Station) error {
	err := r.db.QueryRow(ctx, `INSERT INTO stations (name, lat, lng, capacity, available, open)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		station.Name, station.Lat, station.Lng, station.Capacity, station.Available, station.Open).
		Scan(&station.ID, &station.CreatedAt, &station.UpdatedAt)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *PGStationRepository) Update(ctx context.Context, station *domain.Station) error {
	cmd, err := r.db.Exec(ctx, `UPDATE stations SET name=$1, lat=$2, lng=$3, open=$4, updated_at=now() WHERE id=$5`,
		station.Name, station.Lat, station.Lng, station.Open, station.ID)
	if err != nil {
		return storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrStationNotFound
	}
	return nil
}

func (r *PGStationRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM stations WHERE id=$1`, id)
	if err != nil {
		return storeErr(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrStationNotFound
	}
	return nil
}

func (r *PGStationRepository) ToggleOpen(ctx context.Context, id int64) (*domain.Station, error) {
	return scanStation(r.db.QueryRow(ctx, `UPDATE stations SET open = NOT open, updated_at=now() WHERE id=$1
		RETURNING `+stationColumns, id))
}

func (r *PGStationRepository) AdjustInventory(ctx context.Context, id int64, delta int) (*domain.Station, error) {
	return r.lockedUpdate(ctx, id, func(s *domain.Station) {
		s.Available += delta
		if s.Available < 0 {
			s.Available = 0
		}
		if s.Available > s.Capacity {
			s.Available = s.Capacity
		}
	})
}

func (r *PGStationRepository) SetCapacity(ctx context.Context, id int64, capacity int) (*domain.Station, error) {
	return r.lockedUpdate(ctx, id, func(s *domain.Station) {
		s.Capacity = capacity
		if s.Available > s.Capacity {
			s.Available = s.Capacity
		}
	})
}

// lockedUpdate runs mutate on the station while holding its row lock, so
// admin edits serialize with concurrent rent/return on the same station and
// the 0 <= available <= capacity invariant holds universally.
func (r *PGStationRepository) lockedUpdate(ctx context.Context, id int64, mutate func(*domain.Station)) (*domain.Station, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, storeErr(err)
	}
	defer tx.Rollback(ctx)

	station, err := scanStation(tx.QueryRow(ctx, `SELECT `+stationColumns+` FROM stations WHERE id=$1 FOR UPDATE`, id))
	if err != nil {
		return nil, err
	}

	mutate(station)

	err = tx.QueryRow(ctx, `UPDATE stations SET capacity=$1, available=$2, updated_at=now() WHERE id=$3
		RETURNING updated_at`, station.Capacity, station.Available, station.ID).
		Scan(&station.UpdatedAt)
	if err != nil {
		return nil, storeErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr(err)
	}
	return station, nil
}

func (r *PGStationRepository) Stats(ctx context.Context) ([]domain.StationStat, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, available, capacity FROM stations ORDER BY id`)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	stats := make([]domain.StationStat, 0)
	for rows.Next() {
		var st domain.StationStat
		if err := rows.Scan(&st.ID, &st.Name, &st.Available, &st.Capacity); err != nil {
			return nil, storeErr(err)
		}
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return stats, nil
}

var _ StationRepository = (*PGStationRepository)(nil)
