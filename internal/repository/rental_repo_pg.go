package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velopool/bikeshare/internal/domain"
)

type RentalRepository interface {
	// Rent claims one available bike at the station and records an active
	// rental for the user, atomically.
	Rent(ctx context.Context, userID, stationID int64) (*domain.Rental, error)
	// Return closes the user's active rental at the given station and hands
	// the bike back to its inventory, atomically.
	Return(ctx context.Context, userID, rentalID, stationID int64) (*domain.Rental, error)
	// ListByUser returns the user's rentals with resolved station names.
	// Rows are ordered by start time, newest first, purely for display;
	// callers must not rely on the ordering.
	ListByUser(ctx context.Context, userID int64) ([]domain.UserRental, error)
}

type PGRentalRepository struct {
	db *pgxpool.Pool
}

func NewRentalRepository(db *pgxpool.Pool) RentalRepository {
	return &PGRentalRepository{db: db}
}

// Rent serializes against every other rent/return on the same station via
// the station row lock, then checks and decrements availability inside the
// same transaction. Any precondition failure rolls back before returning.
func (r *PGRentalRepository) Rent(ctx context.Context, userID, stationID int64) (*domain.Rental, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, storeErr(err)
	}
	defer tx.Rollback(ctx)

	var (
		available int
		open      bool
	)
	err = tx.QueryRow(ctx, `SELECT available, open FROM stations WHERE id=$1 FOR UPDATE`, stationID).
		Scan(&available, &open)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStationNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	if !open {
		return nil, domain.ErrStationClosed
	}
	if available <= 0 {
		return nil, domain.ErrNoBikesAvailable
	}

	if _, err := tx.Exec(ctx, `UPDATE stations SET available = available - 1, updated_at = now() WHERE id=$1`, stationID); err != nil {
		return nil, storeErr(err)
	}

	rental := &domain.Rental{
		UserID:        userID,
		FromStationID: stationID,
		Status:        domain.RentalStatusActive,
	}
	err = tx.QueryRow(ctx, `INSERT INTO rentals (user_id, from_station_id, status, started_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, started_at`, userID, stationID, rental.Status).
		Scan(&rental.ID, &rental.StartedAt)
	if err != nil {
		return nil, storeErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr(err)
	}
	return rental, nil
}

// Return locks the rental row first, then the station row. Lock order is
// fixed (rental before station) so concurrent returns cannot deadlock
// against each other.
func (r *PGRentalRepository) Return(ctx context.Context, userID, rentalID, stationID int64) (*domain.Rental, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, storeErr(err)
	}
	defer tx.Rollback(ctx)

	rental := &domain.Rental{ID: rentalID}
	err = tx.QueryRow(ctx, `SELECT user_id, from_station_id, status, started_at FROM rentals WHERE id=$1 FOR UPDATE`, rentalID).
		Scan(&rental.UserID, &rental.FromStationID, &rental.Status, &rental.StartedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	if rental.UserID != userID {
		return nil, domain.ErrForbidden
	}
	if rental.Status != domain.RentalStatusActive {
		return nil, domain.ErrAlreadyReturned
	}

	var (
		available int
		capacity  int
	)
	err = tx.QueryRow(ctx, `SELECT available, capacity FROM stations WHERE id=$1 FOR UPDATE`, stationID).
		Scan(&available, &capacity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStationNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	if available >= capacity {
		return nil, domain.ErrStationFull
	}

	if _, err := tx.Exec(ctx, `UPDATE stations SET available = available + 1, updated_at = now() WHERE id=$1`, stationID); err != nil {
		return nil, storeErr(err)
	}

	err = tx.QueryRow(ctx, `UPDATE rentals SET status=$1, to_station_id=$2, ended_at=now() WHERE id=$3
		RETURNING status, to_station_id, ended_at`, domain.RentalStatusReturned, stationID, rentalID).
		Scan(&rental.Status, &rental.ToStationID, &rental.EndedAt)
	if err != nil {
		return nil, storeErr(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, storeErr(err)
	}
	return rental, nil
}

func (r *PGRentalRepository) ListByUser(ctx context.Context, userID int64) ([]domain.UserRental, error) {
	rows, err := r.db.Query(ctx, `SELECT r.id, r.status, r.started_at, r.ended_at,
			fs.id, fs.name, ts.id, ts.name
		FROM rentals r
		JOIN stations fs ON fs.id = r.from_station_id
		LEFT JOIN stations ts ON ts.id = r.to_station_id
		WHERE r.user_id=$1
		ORDER BY r.started_at DESC`, userID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	rentals := make([]domain.UserRental, 0)
	for rows.Next() {
		var (
			ur     domain.UserRental
			toID   *int64
			toName *string
		)
		if err := rows.Scan(&ur.ID, &ur.Status, &ur.StartedAt, &ur.EndedAt,
			&ur.FromStation.ID, &ur.FromStation.Name, &toID, &toName); err != nil {
			return nil, storeErr(err)
		}
		if toID != nil && toName != nil {
			ur.ToStation = &domain.StationRef{ID: *toID, Name: *toName}
		}
		rentals = append(rentals, ur)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(err)
	}
	return rentals, nil
}

var _ RentalRepository = (*PGRentalRepository)(nil)
