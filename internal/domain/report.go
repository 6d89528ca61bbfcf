package domain

import "time"

type ReportStatus string

const (
	ReportStatusOpen   ReportStatus = "open"
	ReportStatusClosed ReportStatus = "closed"
)

// Report is a user-filed problem report against a station.
type Report struct {
	ID          int64        `json:"id"`
	StationID   int64        `json:"stationId"`
	UserID      int64        `json:"userId"`
	Description string       `json:"description"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}
