package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/repository"
)

var (
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrUserNotFound    = errors.New("user not found")
	ErrSkillNotOffered = errors.New("provider does not offer this skill")
	ErrSelfRating      = errors.New("cannot rate yourself")
	ErrDuplicateRating = errors.New("session already rated")
)

const defaultCancellationReason = "No reason provided"

const maxMeetingURLLength = 255

const pgUniqueViolation = "23505"

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type skillOfferReader interface {
	GetByID(ctx context.Context, skillID int64) (*models.Skill, error)
	UserOffersSkill(ctx context.Context, userID int64, skillID int64) (bool, error)
}

type SessionService struct {
	sessionRepo *repository.SessionRepository
	ratingRepo  *repository.RatingRepository
	skillRepo   skillOfferReader
	userRepo    userReader
}

func NewSessionService(
	sessionRepo *repository.SessionRepository,
	ratingRepo *repository.RatingRepository,
	skillRepo skillOfferReader,
	userRepo userReader,
) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		ratingRepo:  ratingRepo,
		skillRepo:   skillRepo,
		userRepo:    userRepo,
	}
}

type RequestSessionInput struct {
	ProviderID      int64
	SkillID         int64
	SessionDateTime time.Time
	LocationType    string
	MeetingURL      *string
}

type RateSessionInput struct {
	SessionID    int64
	RateeID      int64
	LikeStatus   bool
	FeedbackText *string
}

// RequestSession creates a session in status Requested. The meeting URL
// is optional here even for Online sessions; it becomes mandatory at
// confirmation.
func (s *SessionService) RequestSession(
	ctx context.Context,
	requesterID int64,
	input RequestSessionInput,
) (*models.Session, error) {
	if input.ProviderID <= 0 || input.SkillID <= 0 || input.SessionDateTime.IsZero() {
		return nil, ErrInvalidInput
	}
	if input.LocationType != models.LocationOnline && input.LocationType != models.LocationInPerson {
		return nil, ErrInvalidInput
	}
	if requesterID == input.ProviderID {
		return nil, ErrInvalidInput
	}

	meetingURL, err := normalizeMeetingURL(input.MeetingURL)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByID(ctx, input.ProviderID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	offers, err := s.skillRepo.UserOffersSkill(ctx, input.ProviderID, input.SkillID)
	if err != nil {
		return nil, err
	}
	if !offers {
		return nil, ErrSkillNotOffered
	}

	return s.sessionRepo.Create(ctx, repository.CreateSessionInput{
		ProviderID:      input.ProviderID,
		RequesterID:     requesterID,
		SkillID:         input.SkillID,
		SessionDateTime: input.SessionDateTime.UTC(),
		LocationType:    input.LocationType,
		MeetingURL:      meetingURL,
	})
}

// ConfirmSession moves Requested -> Confirmed. Only the provider may
// confirm, and an Online session must carry a meeting URL no later than
// this transition.
func (s *SessionService) ConfirmSession(
	ctx context.Context,
	actorID int64,
	sessionID int64,
	meetingURL *string,
) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ProviderID != actorID {
		return nil, ErrForbidden
	}
	if session.Status != models.SessionStatusRequested {
		return nil, ErrInvalidState
	}

	url, err := normalizeMeetingURL(meetingURL)
	if err != nil {
		return nil, err
	}
	if url == nil {
		url = session.MeetingURL
	}
	if session.LocationType == models.LocationOnline && url == nil {
		return nil, ErrInvalidInput
	}

	updated, err := s.sessionRepo.ConfirmIfRequested(ctx, sessionID, url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// lost the race against a concurrent transition
			return nil, ErrInvalidState
		}
		return nil, err
	}
	return updated, nil
}

// DenyOrCancelSession closes a session. Which terminal state it lands
// in depends on the current status and on which participant acts:
// a requester withdrawing their own request cancels it, a provider
// rejecting one denies it, and either side may cancel a confirmed
// session.
func (s *SessionService) DenyOrCancelSession(
	ctx context.Context,
	actorID int64,
	sessionID int64,
	reason *string,
) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Participant(actorID) {
		return nil, ErrForbidden
	}

	nextStatus, err := resolveClosedStatus(session, actorID)
	if err != nil {
		return nil, err
	}

	closeReason := defaultCancellationReason
	if reason != nil && strings.TrimSpace(*reason) != "" {
		closeReason = strings.TrimSpace(*reason)
	}

	updated, err := s.sessionRepo.CloseIfCurrent(ctx, sessionID, session.Status, nextStatus, closeReason)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidState
		}
		return nil, err
	}
	return updated, nil
}

// CompleteSession moves Confirmed -> Completed. Restricted to the two
// participants.
func (s *SessionService) CompleteSession(
	ctx context.Context,
	actorID int64,
	sessionID int64,
) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Participant(actorID) {
		return nil, ErrForbidden
	}
	if session.Status != models.SessionStatusConfirmed {
		return nil, ErrInvalidState
	}

	updated, err := s.sessionRepo.UpdateStatusIfCurrent(
		ctx,
		sessionID,
		models.SessionStatusConfirmed,
		models.SessionStatusCompleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidState
		}
		return nil, err
	}
	return updated, nil
}

// RateSession records the one rating a session may carry. Only allowed
// once the session is Completed, only between its two participants.
func (s *SessionService) RateSession(
	ctx context.Context,
	raterID int64,
	input RateSessionInput,
) (*models.Rating, error) {
	if input.SessionID <= 0 || input.RateeID <= 0 {
		return nil, ErrInvalidInput
	}
	if raterID == input.RateeID {
		return nil, ErrSelfRating
	}

	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if !session.Participant(raterID) {
		return nil, ErrForbidden
	}
	if !session.Participant(input.RateeID) {
		return nil, ErrInvalidInput
	}
	if session.Status != models.SessionStatusCompleted {
		return nil, ErrInvalidState
	}

	rating, err := s.ratingRepo.Create(ctx, repository.CreateRatingInput{
		SessionID:    input.SessionID,
		RaterID:      raterID,
		RateeID:      input.RateeID,
		LikeStatus:   input.LikeStatus,
		FeedbackText: input.FeedbackText,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateRating
		}
		return nil, err
	}
	return rating, nil
}

// GetRatingSummary aggregates a user's received ratings. A user with no
// ratings gets zeros, never an error.
func (s *SessionService) GetRatingSummary(
	ctx context.Context,
	userID int64,
) (*models.RatingSummary, error) {
	return s.ratingRepo.SummaryForUser(ctx, userID)
}

func (s *SessionService) GetSession(
	ctx context.Context,
	actorID int64,
	sessionID int64,
) (*models.SessionDetail, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Participant(actorID) {
		return nil, ErrForbidden
	}

	detail := &models.SessionDetail{Session: *session}
	rating, err := s.ratingRepo.GetBySessionID(ctx, sessionID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if err == nil {
		detail.Rating = rating
	}
	return detail, nil
}

func (s *SessionService) ListSessions(
	ctx context.Context,
	actorID int64,
	filter repository.SessionListFilter,
) ([]models.Session, error) {
	return s.sessionRepo.List(ctx, repository.SessionListFilter{
		ParticipantID: actorID,
		Status:        filter.Status,
		Timeframe:     filter.Timeframe,
	})
}

// resolveClosedStatus is the deny/cancel tie-break. The caller has
// already checked that actorID is a participant.
func resolveClosedStatus(session *models.Session, actorID int64) (string, error) {
	switch session.Status {
	case models.SessionStatusRequested:
		if actorID == session.RequesterID {
			return models.SessionStatusCancelled, nil
		}
		return models.SessionStatusDenied, nil
	case models.SessionStatusConfirmed:
		return models.SessionStatusCancelled, nil
	default:
		return "", ErrInvalidState
	}
}

func normalizeMeetingURL(meetingURL *string) (*string, error) {
	if meetingURL == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*meetingURL)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > maxMeetingURLLength {
		return nil, ErrInvalidInput
	}
	return &trimmed, nil
}
