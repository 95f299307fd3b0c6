package repository

import (
	"context"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
)

type CreateReportInput struct {
	ReporterID     int64
	ReportedUserID int64
	Reason         string
}

type ReportRepository struct {
	db DBTX
}

func NewReportRepository(db DBTX) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(
	ctx context.Context,
	input CreateReportInput,
) (*models.Report, error) {
	query := `
		INSERT INTO reports (reporter_id, reported_user_id, reason, status)
		VALUES ($1, $2, $3, 'open')
		RETURNING id, reporter_id, reported_user_id, reason, status, resolved_by, resolved_at, created_at
	`

	var report models.Report
	err := r.db.QueryRow(ctx, query, input.ReporterID, input.ReportedUserID, input.Reason).Scan(
		&report.ID,
		&report.ReporterID,
		&report.ReportedUserID,
		&report.Reason,
		&report.Status,
		&report.ResolvedBy,
		&report.ResolvedAt,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) GetByID(ctx context.Context, reportID int64) (*models.Report, error) {
	query := `
		SELECT id, reporter_id, reported_user_id, reason, status, resolved_by, resolved_at, created_at
		FROM reports
		WHERE id = $1
	`
	var report models.Report
	err := r.db.QueryRow(ctx, query, reportID).Scan(
		&report.ID,
		&report.ReporterID,
		&report.ReportedUserID,
		&report.Reason,
		&report.Status,
		&report.ResolvedBy,
		&report.ResolvedAt,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) ListByStatus(
	ctx context.Context,
	status string,
) ([]models.Report, error) {
	query := `
		SELECT id, reporter_id, reported_user_id, reason, status, resolved_by, resolved_at, created_at
		FROM reports
		WHERE status = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reports := make([]models.Report, 0)
	for rows.Next() {
		var report models.Report
		if err := rows.Scan(
			&report.ID,
			&report.ReporterID,
			&report.ReportedUserID,
			&report.Reason,
			&report.Status,
			&report.ResolvedBy,
			&report.ResolvedAt,
			&report.CreatedAt,
		); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

// ResolveIfOpen closes an open report with the reviewing admin recorded.
// Same conditional-update shape as session transitions: a report already
// closed by another admin yields pgx.ErrNoRows.
func (r *ReportRepository) ResolveIfOpen(
	ctx context.Context,
	reportID int64,
	nextStatus string,
	adminID int64,
) (*models.Report, error) {
	query := `
		UPDATE reports
		SET status = $2, resolved_by = $3, resolved_at = NOW()
		WHERE id = $1 AND status = 'open'
		RETURNING id, reporter_id, reported_user_id, reason, status, resolved_by, resolved_at, created_at
	`
	var report models.Report
	err := r.db.QueryRow(ctx, query, reportID, nextStatus, adminID).Scan(
		&report.ID,
		&report.ReporterID,
		&report.ReportedUserID,
		&report.Reason,
		&report.Status,
		&report.ResolvedBy,
		&report.ResolvedAt,
		&report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
