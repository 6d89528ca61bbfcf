package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velopool/bikeshare/internal/domain"
)

type FavoriteRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]domain.UserFavorite, error)
	// Toggle adds the favorite if absent and removes it if present.
	// Returns the favorite when it was created, nil when it was removed.
	Toggle(ctx context.Context, userID, stationID int64) (*domain.Favorite, error)
	Delete(ctx context.Context, userID, favoriteID int64) error
}

type PGFavoriteRepository struct {
	db *pgxpool.Pool
}

func NewFavoriteRepository(db *pgxpool.Pool) FavoriteRepository {
	return &PGFavoriteRepository{db: db}
}

func (r *PGFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserFavorite, error) {
	rows, err := r.db.Query(ctx, `SELECT f.id, f.created_at,
			s.id, s.name, s.lat, s.lng, s.capacity, s.available, s.open, s.created_at, s.updated_at
		FROM favorites f
		JOIN stations s ON s.id = f.station_id
		WHERE f.user_id=$1
		ORDER BY f.created_at DESC`, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	favorites := make([]domain.UserFavorite, 0)
	for rows.Next() {
		var f domain.UserFavorite
		s := &f.Station
		if err := rows.Scan(&f.ID, &f.CreatedAt,
			&s.ID, &s.Name, &s.Lat, &s.Lng, &s.Capacity, &s.Available, &s.Open, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, storeErr(err)
		}
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// Toggle relies on the UNIQUE (user_id, station_id) constraint: the upsert
// either creates the favorite or hits the conflict and falls through to the
// delete, so concurrent toggles for the same pair never error out.
func (r *PGFavoriteRepository) Toggle(ctx context.Context, userID, stationID int64) (*domain.Favorite, error) {
	fav := &domain.Favorite{UserID: userID, StationID: stationID}
	err := r.db.QueryRow(ctx, `INSERT INTO favorites (user_id, station_id) VALUES ($1, $2)
		ON CONFLICT (user_id, station_id) DO NOTHING
		RETURNING id, created_at`, userID, stationID).
		Scan(&fav.ID, &fav.CreatedAt)
	if err == nil {
		return fav, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, storeErr(err)
	}

	// Already favorited; this toggle removes it.
	if _, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id=$1 AND station_id=$2`, userID, stationID); err != nil {
		return nil, storeErr(err)
	}
	return nil, nil
}

func (r *PGFavoriteRepository) Delete(ctx context.Context, userID, favoriteID int64) error {
	var ownerID int64
	err := r.db.QueryRow(ctx, `SELECT user_id FROM favorites WHERE id=$1`, favoriteID).Scan(&ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrFavoriteNotFound
	}
	if err != nil {
		return storeErr(err)
	}
	if ownerID != userID {
		return domain.ErrForbidden
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE id=$1`, favoriteID); err != nil {
		return storeErr(err)
	}
	return nil
}

var _ FavoriteRepository = (*PGFavoriteRepository)(nil)
