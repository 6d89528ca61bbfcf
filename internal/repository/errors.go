package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/velopool/bikeshare/internal/domain"
)

// Postgres failure classes that mean "the lock or the transaction lost a
// race, try again" rather than "the data is wrong".
const (
	pgLockNotAvailable     = "55P03"
	pgDeadlockDetected     = "40P01"
	pgSerializationFailure = "40001"
)

// storeErr translates driver-level failures into the domain taxonomy.
// Domain errors pass through untouched so callers can match sentinels.
func storeErr(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgDeadlockDetected, pgSerializationFailure:
			return fmt.Errorf("%w (%s)", domain.ErrLockTimeout, pgErr.Code)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrStore, err)
}
