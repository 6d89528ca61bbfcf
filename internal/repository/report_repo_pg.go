package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velopool/bikeshare/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	// List returns reports newest first; stationID 0 means all stations.
	List(ctx context.Context, stationID int64) ([]domain.Report, error)
	SetStatus(ctx context.Context, id int64, status domain.ReportStatus) (*domain.Report, error)
}

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) Create(ctx context.Context, report *domain.Report) error {
	report.Status = domain.ReportStatusOpen
	err := r.db.QueryRow(ctx, `INSERT INTO reports (station_id, user_id, description, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		report.StationID, report.UserID, report.Description, report.Status).
		Scan(&report.ID, &report.CreatedAt)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *PGReportRepository) List(ctx context.Context, stationID int64) ([]domain.Report, error) {
	rows, err := r.db.Query(ctx, `SELECT id, station_id, user_id, description, status, created_at
		FROM reports
		WHERE ($1 = 0 OR station_id = $1)
		ORDER BY created_at DESC`, stationID)
	if err != nil {
		return nil, storeErr(err)
	}
	defer rows.Close()

	reports := make([]domain.Report, 0)
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.StationID, &rep.UserID, &rep.Description, &rep.Status, &rep.CreatedAt); err != nil {
			return nil, storeErr(err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *PGReportRepository) SetStatus(ctx context.Context, id int64, status domain.ReportStatus) (*domain.Report, error) {
	var rep domain.Report
	err := r.db.QueryRow(ctx, `UPDATE reports SET status=$1 WHERE id=$2
		RETURNING id, station_id, user_id, description, status, created_at`, status, id).
		Scan(&rep.ID, &rep.StationID, &rep.UserID, &rep.Description, &rep.Status, &rep.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &rep, nil
}

var _ ReportRepository = (*PGReportRepository)(nil)
