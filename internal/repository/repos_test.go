package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/velopool/bikeshare/internal/domain"
)

func TestNewRepositories(t *testing.T) {
	pool := &pgxpool.Pool{}
	assert.NotNil(t, NewRentalRepository(pool))
	assert.NotNil(t, NewStationRepository(pool))
	assert.NotNil(t, NewUserRepository(pool))
	assert.NotNil(t, NewReportRepository(pool))
	assert.NotNil(t, NewFavoriteRepository(pool))
	assert.NotNil(t, NewPostRepository(pool))
}

func TestStoreErr(t *testing.T) {
	assert.NoError(t, storeErr(nil))

	// Domain sentinels never pass through here, but driver errors must be
	// classified into retryable vs. plain store failures.
	lockErr := &pgconn.PgError{Code: pgLockNotAvailable}
	assert.ErrorIs(t, storeErr(lockErr), domain.ErrLockTimeout)

	deadlock := &pgconn.PgError{Code: pgDeadlockDetected}
	assert.ErrorIs(t, storeErr(deadlock), domain.ErrLockTimeout)

	serialization := &pgconn.PgError{Code: pgSerializationFailure}
	assert.ErrorIs(t, storeErr(serialization), domain.ErrLockTimeout)

	other := &pgconn.PgError{Code: "23514"}
	assert.ErrorIs(t, storeErr(other), domain.ErrStore)

	assert.ErrorIs(t, storeErr(errors.New("conn refused")), domain.ErrStore)
}
