package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/repository"
	"github.com/aleyva-c/SkillSwapBack/internal/services"
)

var validate = validator.New()

type sessionApplicationService interface {
	RequestSession(ctx context.Context, requesterID int64, input services.RequestSessionInput) (*models.Session, error)
	ConfirmSession(ctx context.Context, actorID int64, sessionID int64, meetingURL *string) (*models.Session, error)
	DenyOrCancelSession(ctx context.Context, actorID int64, sessionID int64, reason *string) (*models.Session, error)
	CompleteSession(ctx context.Context, actorID int64, sessionID int64) (*models.Session, error)
	RateSession(ctx context.Context, raterID int64, input services.RateSessionInput) (*models.Rating, error)
	GetRatingSummary(ctx context.Context, userID int64) (*models.RatingSummary, error)
	GetSession(ctx context.Context, actorID int64, sessionID int64) (*models.SessionDetail, error)
	ListSessions(ctx context.Context, actorID int64, filter repository.SessionListFilter) ([]models.Session, error)
}

type SessionHandler struct {
	service sessionApplicationService
}

func NewSessionHandler(service *services.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

type requestSessionRequest struct {
	ProviderID      int64   `json:"provider_id" validate:"required,gt=0"`
	SkillID         int64   `json:"skill_id" validate:"required,gt=0"`
	SessionDateTime string  `json:"session_date_time" validate:"required"`
	LocationType    string  `json:"location_type" validate:"required,oneof=Online InPerson"`
	MeetingURL      *string `json:"meeting_url" validate:"omitempty,max=255"`
}

type confirmSessionRequest struct {
	SessionID  int64   `json:"session_id" validate:"required,gt=0"`
	MeetingURL *string `json:"meeting_url" validate:"omitempty,max=255"`
}

type denySessionRequest struct {
	SessionID int64   `json:"session_id" validate:"required,gt=0"`
	Reason    *string `json:"reason" validate:"omitempty,max=1000"`
}

type completeSessionRequest struct {
	SessionID int64 `json:"session_id" validate:"required,gt=0"`
}

type rateSessionRequest struct {
	SessionID    int64   `json:"session_id" validate:"required,gt=0"`
	RateeID      int64   `json:"ratee_id" validate:"required,gt=0"`
	LikeStatus   bool    `json:"like_status"`
	FeedbackText *string `json:"feedback_text" validate:"omitempty,max=2000"`
}

func (h *SessionHandler) RequestSession(c *fiber.Ctx) error {
	requesterID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req requestSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or malformed fields"})
	}

	sessionDateTime, err := time.Parse(time.RFC3339, strings.TrimSpace(req.SessionDateTime))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "session_date_time must be a valid RFC3339 timestamp"})
	}

	session, err := h.service.RequestSession(c.Context(), requesterID, services.RequestSessionInput{
		ProviderID:      req.ProviderID,
		SkillID:         req.SkillID,
		SessionDateTime: sessionDateTime,
		LocationType:    req.LocationType,
		MeetingURL:      req.MeetingURL,
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) ConfirmSession(c *fiber.Ctx) error {
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req confirmSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or malformed fields"})
	}

	session, err := h.service.ConfirmSession(c.Context(), actorID, req.SessionID, req.MeetingURL)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) DenyOrCancelSession(c *fiber.Ctx) error {
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req denySessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or malformed fields"})
	}

	session, err := h.service.DenyOrCancelSession(c.Context(), actorID, req.SessionID, req.Reason)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) CompleteSession(c *fiber.Ctx) error {
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req completeSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or malformed fields"})
	}

	session, err := h.service.CompleteSession(c.Context(), actorID, req.SessionID)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func (h *SessionHandler) RateSession(c *fiber.Ctx) error {
	raterID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req rateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or malformed fields"})
	}

	rating, err := h.service.RateSession(c.Context(), raterID, services.RateSessionInput{
		SessionID:    req.SessionID,
		RateeID:      req.RateeID,
		LikeStatus:   req.LikeStatus,
		FeedbackText: req.FeedbackText,
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"rating": rating})
}

// GetRatingSummary is public: profile pages show totals without a login.
func (h *SessionHandler) GetRatingSummary(c *fiber.Ctx) error {
	userID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || userID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	summary, err := h.service.GetRatingSummary(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load rating summary"})
	}

	return c.JSON(summary)
}

func (h *SessionHandler) ListSessions(c *fiber.Ctx) error {
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	timeframe := strings.TrimSpace(c.Query("timeframe"))
	if timeframe != "" && timeframe != "upcoming" && timeframe != "past" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "timeframe must be upcoming or past"})
	}

	sessions, err := h.service.ListSessions(c.Context(), actorID, repository.SessionListFilter{
		Status:    strings.TrimSpace(c.Query("status")),
		Timeframe: timeframe,
	})
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	sessionID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || sessionID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid session id"})
	}

	session, err := h.service.GetSession(c.Context(), actorID, sessionID)
	if err != nil {
		return mapSessionError(c, err)
	}

	return c.JSON(fiber.Map{"session": session})
}

func mapSessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrSelfRating),
		errors.Is(err, services.ErrSkillNotOffered),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrInvalidState):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Forbidden"})
	case errors.Is(err, services.ErrDuplicateRating):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Session already rated"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Session not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process session request"})
	}
}
