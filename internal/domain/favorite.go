package domain

import "time"

// Favorite marks a station pinned by a user. One row per (user, station) pair.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	StationID int64     `json:"stationId"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserFavorite is a favorite joined with its station for the profile view.
type UserFavorite struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Station   Station   `json:"station"`
}
