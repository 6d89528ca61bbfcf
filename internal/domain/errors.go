package domain

import "errors"

// Errors returned by the rental flow. Handlers map these to HTTP statuses;
// anything wrapping ErrStore is infrastructure and must not leak SQL detail.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrStationNotFound  = errors.New("station not found")
	ErrRentalNotFound   = errors.New("rental not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrReportNotFound   = errors.New("report not found")
	ErrStationClosed    = errors.New("station closed")
	ErrNoBikesAvailable = errors.New("no bikes available")
	ErrStationFull      = errors.New("station full")
	ErrForbidden        = errors.New("forbidden")
	ErrAlreadyReturned  = errors.New("rental already returned")
	ErrLockTimeout      = errors.New("lock wait timed out")
	ErrStore            = errors.New("store failure")
)
