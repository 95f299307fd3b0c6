package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
)

type CreateSessionInput struct {
	ProviderID      int64
	RequesterID     int64
	SkillID         int64
	SessionDateTime time.Time
	LocationType    string
	MeetingURL      *string
}

type SessionListFilter struct {
	ParticipantID int64
	Status        string
	Timeframe     string
}

type SessionRepository struct {
	db DBTX
}

func NewSessionRepository(db DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(
	ctx context.Context,
	input CreateSessionInput,
) (*models.Session, error) {
	query := `
		INSERT INTO sessions (provider_id, requester_id, skill_id, session_datetime, location_type, status, meeting_url)
		VALUES ($1, $2, $3, $4, $5, 'Requested', $6)
		RETURNING id, provider_id, requester_id, skill_id, session_datetime, location_type, status, meeting_url, cancellation_reason, created_at, updated_at
	`

	var session models.Session
	err := r.db.QueryRow(
		ctx,
		query,
		input.ProviderID,
		input.RequesterID,
		input.SkillID,
		input.SessionDateTime,
		input.LocationType,
		input.MeetingURL,
	).Scan(
		&session.ID,
		&session.ProviderID,
		&session.RequesterID,
		&session.SkillID,
		&session.SessionDateTime,
		&session.LocationType,
		&session.Status,
		&session.MeetingURL,
		&session.CancellationReason,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID int64) (*models.Session, error) {
	query := `
		SELECT id, provider_id, requester_id, skill_id, session_datetime, location_type, status, meeting_url, cancellation_reason, created_at, updated_at
		FROM sessions
		WHERE id = $1
	`
	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID).Scan(
		&session.ID,
		&session.ProviderID,
		&session.RequesterID,
		&session.SkillID,
		&session.SessionDateTime,
		&session.LocationType,
		&session.Status,
		&session.MeetingURL,
		&session.CancellationReason,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) List(
	ctx context.Context,
	filter SessionListFilter,
) ([]models.Session, error) {
	args := []any{filter.ParticipantID}
	whereParts := []string{"(provider_id = $1 OR requester_id = $1)"}

	if status := strings.TrimSpace(filter.Status); status != "" {
		args = append(args, status)
		whereParts = append(whereParts, fmt.Sprintf("status = $%d", len(args)))
	}

	switch strings.TrimSpace(filter.Timeframe) {
	case "upcoming":
		whereParts = append(whereParts, "session_datetime > NOW()")
	case "past":
		whereParts = append(whereParts, "session_datetime <= NOW()")
	}

	query := fmt.Sprintf(`
		SELECT id, provider_id, requester_id, skill_id, session_datetime, location_type, status, meeting_url, cancellation_reason, created_at, updated_at
		FROM sessions
		WHERE %s
		ORDER BY session_datetime ASC, id ASC
	`, strings.Join(whereParts, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		if err := rows.Scan(
			&session.ID,
			&session.ProviderID,
			&session.RequesterID,
			&session.SkillID,
			&session.SessionDateTime,
			&session.LocationType,
			&session.Status,
			&session.MeetingURL,
			&session.CancellationReason,
			&session.CreatedAt,
			&session.UpdatedAt,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// UpdateStatusIfCurrent carries the expected current status in the WHERE
// clause so that of two concurrent writers only one sees a row; the
// loser gets pgx.ErrNoRows.
func (r *SessionRepository) UpdateStatusIfCurrent(
	ctx context.Context,
	sessionID int64,
	currentStatus string,
	nextStatus string,
) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING id, provider_id, requester_id, skill_id, session_datetime, location_type, status, meeting_url, cancellation_reason, created_at, updated_at
	`
	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus).Scan(
		&session.ID,
		&session.ProviderID,
		&session.RequesterID,
		&session.SkillID,
		&session.SessionDateTime,
		&session.LocationType,
		&session.Status,
		&session.MeetingURL,
		&session.CancellationReason,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// ConfirmIfRequested applies Requested -> Confirmed and stores the
// meeting URL in the same conditional write.
func (r *SessionRepository) ConfirmIfRequested(
	ctx context.Context,
	sessionID int64,
	meetingURL *string,
) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET status = 'Confirmed', meeting_url = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'Requested'
		RETURNING id, provider_id, requester_id, skill_id, session_datetime, location_type, status, meeting_url, cancellation_reason, created_at, updated_at
	`
	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID, meetingURL).Scan(
		&session.ID,
		&session.ProviderID,
		&session.RequesterID,
		&session.SkillID,
		&session.SessionDateTime,
		&session.LocationType,
		&session.Status,
		&session.MeetingURL,
		&session.CancellationReason,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CloseIfCurrent applies a Denied or Cancelled transition together with
// the cancellation reason, conditional on the expected current status.
func (r *SessionRepository) CloseIfCurrent(
	ctx context.Context,
	sessionID int64,
	currentStatus string,
	nextStatus string,
	reason string,
) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET status = $3, cancellation_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status = $2
		RETURNING id, provider_id, requester_id, skill_id, session_datetime, location_type, status, meeting_url, cancellation_reason, created_at, updated_at
	`
	var session models.Session
	err := r.db.QueryRow(ctx, query, sessionID, currentStatus, nextStatus, reason).Scan(
		&session.ID,
		&session.ProviderID,
		&session.RequesterID,
		&session.SkillID,
		&session.SessionDateTime,
		&session.LocationType,
		&session.Status,
		&session.MeetingURL,
		&session.CancellationReason,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
