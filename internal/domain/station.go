package domain

import "time"

type Station struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Capacity  int       `json:"capacity"`
	Available int       `json:"available"`
	Open      bool      `json:"open"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StationRef is the short form embedded in rental listings.
type StationRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StationStat is the aggregated availability row served to the
// visualization endpoint.
type StationStat struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Available int    `json:"available"`
	Capacity  int    `json:"capacity"`
}
