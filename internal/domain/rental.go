package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "active"
	RentalStatusReturned RentalStatus = "returned"
)

// Rental records one user's possession of a bike from pickup to return.
// ToStationID and EndedAt are set exactly when the rental is returned;
// a returned rental is never mutated again.
type Rental struct {
	ID            int64
	UserID        int64
	FromStationID int64
	ToStationID   *int64
	Status        RentalStatus
	StartedAt     time.Time
	EndedAt       *time.Time
}

// UserRental is a rental enriched with resolved station names for display.
type UserRental struct {
	ID          int64        `json:"id"`
	Status      RentalStatus `json:"status"`
	FromStation StationRef   `json:"fromStation"`
	ToStation   *StationRef  `json:"toStation"`
	StartedAt   time.Time    `json:"startedAt"`
	EndedAt     *time.Time   `json:"endedAt"`
}
