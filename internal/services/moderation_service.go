package services

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/repository"
)

const maxReportReasonLength = 1000

type ModerationService struct {
	reportRepo *repository.ReportRepository
	userRepo   userReader
}

func NewModerationService(
	reportRepo *repository.ReportRepository,
	userRepo userReader,
) *ModerationService {
	return &ModerationService{
		reportRepo: reportRepo,
		userRepo:   userRepo,
	}
}

func (s *ModerationService) FileReport(
	ctx context.Context,
	reporterID int64,
	reportedUserID int64,
	reason string,
) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reportedUserID <= 0 || reason == "" || len(reason) > maxReportReasonLength {
		return nil, ErrInvalidInput
	}
	if reportedUserID == reporterID {
		return nil, ErrInvalidInput
	}

	if _, err := s.userRepo.GetByID(ctx, reportedUserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.reportRepo.Create(ctx, repository.CreateReportInput{
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         reason,
	})
}

func (s *ModerationService) ListReports(
	ctx context.Context,
	status string,
) ([]models.Report, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		status = models.ReportStatusOpen
	}
	switch status {
	case models.ReportStatusOpen, models.ReportStatusResolved, models.ReportStatusDismissed:
	default:
		return nil, ErrInvalidInput
	}
	return s.reportRepo.ListByStatus(ctx, status)
}

// ReviewReport closes an open report. Two admins racing to close the
// same report are serialized by the conditional update; the loser sees
// ErrInvalidState.
func (s *ModerationService) ReviewReport(
	ctx context.Context,
	adminID int64,
	reportID int64,
	nextStatus string,
) (*models.Report, error) {
	if nextStatus != models.ReportStatusResolved && nextStatus != models.ReportStatusDismissed {
		return nil, ErrInvalidInput
	}

	if _, err := s.reportRepo.GetByID(ctx, reportID); err != nil {
		return nil, err
	}

	report, err := s.reportRepo.ResolveIfOpen(ctx, reportID, nextStatus, adminID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidState
		}
		return nil, err
	}
	return report, nil
}
