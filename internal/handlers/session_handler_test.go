package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/repository"
	"github.com/aleyva-c/SkillSwapBack/internal/services"
)

type stubSessionService struct {
	requestResult  *models.Session
	requestErr     error
	confirmResult  *models.Session
	confirmErr     error
	denyResult     *models.Session
	denyErr        error
	completeResult *models.Session
	completeErr    error
	rateResult     *models.Rating
	rateErr        error
	summaryResult  *models.RatingSummary
	summaryErr     error
	getResult      *models.SessionDetail
	getErr         error
	listResult     []models.Session
	listErr        error

	lastActorID      int64
	lastSessionID    int64
	lastRequestInput services.RequestSessionInput
	lastRateInput    services.RateSessionInput
	lastMeetingURL   *string
	lastReason       *string
	lastListFilter   repository.SessionListFilter
}

func (s *stubSessionService) RequestSession(_ context.Context, requesterID int64, input services.RequestSessionInput) (*models.Session, error) {
	s.lastActorID = requesterID
	s.lastRequestInput = input
	return s.requestResult, s.requestErr
}

func (s *stubSessionService) ConfirmSession(_ context.Context, actorID int64, sessionID int64, meetingURL *string) (*models.Session, error) {
	s.lastActorID = actorID
	s.lastSessionID = sessionID
	s.lastMeetingURL = meetingURL
	return s.confirmResult, s.confirmErr
}

func (s *stubSessionService) DenyOrCancelSession(_ context.Context, actorID int64, sessionID int64, reason *string) (*models.Session, error) {
	s.lastActorID = actorID
	s.lastSessionID = sessionID
	s.lastReason = reason
	return s.denyResult, s.denyErr
}

func (s *stubSessionService) CompleteSession(_ context.Context, actorID int64, sessionID int64) (*models.Session, error) {
	s.lastActorID = actorID
	s.lastSessionID = sessionID
	return s.completeResult, s.completeErr
}

func (s *stubSessionService) RateSession(_ context.Context, raterID int64, input services.RateSessionInput) (*models.Rating, error) {
	s.lastActorID = raterID
	s.lastRateInput = input
	return s.rateResult, s.rateErr
}

func (s *stubSessionService) GetRatingSummary(_ context.Context, userID int64) (*models.RatingSummary, error) {
	s.lastActorID = userID
	return s.summaryResult, s.summaryErr
}

func (s *stubSessionService) GetSession(_ context.Context, actorID int64, sessionID int64) (*models.SessionDetail, error) {
	s.lastActorID = actorID
	s.lastSessionID = sessionID
	return s.getResult, s.getErr
}

func (s *stubSessionService) ListSessions(_ context.Context, actorID int64, filter repository.SessionListFilter) ([]models.Session, error) {
	s.lastActorID = actorID
	s.lastListFilter = filter
	return s.listResult, s.listErr
}

func newSessionTestApp(service *stubSessionService, userID string) *fiber.App {
	handler := &SessionHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		c.Locals("is_admin", false)
		return c.Next()
	})
	app.Post("/api/sessions/request", handler.RequestSession)
	app.Post("/api/sessions/confirm", handler.ConfirmSession)
	app.Post("/api/sessions/deny", handler.DenyOrCancelSession)
	app.Post("/api/sessions/complete", handler.CompleteSession)
	app.Post("/api/sessions/rate", handler.RateSession)
	app.Get("/api/sessions", handler.ListSessions)
	app.Get("/api/sessions/:id", handler.GetSession)
	app.Get("/api/user/ratings/:id", handler.GetRatingSummary)
	return app
}

func TestRequestSessionReturnsCreatedSession(t *testing.T) {
	service := &stubSessionService{
		requestResult: &models.Session{
			ID:          91,
			ProviderID:  7,
			RequesterID: 42,
			SkillID:     3,
			Status:      models.SessionStatusRequested,
		},
	}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/request", strings.NewReader(`{
		"provider_id": 7,
		"skill_id": 3,
		"session_date_time": "2030-03-15T09:00:00Z",
		"location_type": "Online"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastActorID != 42 {
		t.Fatalf("expected actor id 42, got %d", service.lastActorID)
	}
	if service.lastRequestInput.ProviderID != 7 || service.lastRequestInput.SkillID != 3 {
		t.Fatalf("unexpected forwarded input: %+v", service.lastRequestInput)
	}
	want := time.Date(2030, 3, 15, 9, 0, 0, 0, time.UTC)
	if !service.lastRequestInput.SessionDateTime.Equal(want) {
		t.Fatalf("expected parsed timestamp %v, got %v", want, service.lastRequestInput.SessionDateTime)
	}
}

func TestRequestSessionRejectsBadTimestamp(t *testing.T) {
	service := &stubSessionService{}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/request", strings.NewReader(`{
		"provider_id": 7,
		"skill_id": 3,
		"session_date_time": "next tuesday",
		"location_type": "Online"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRequestSessionRejectsUnknownLocationType(t *testing.T) {
	service := &stubSessionService{}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/request", strings.NewReader(`{
		"provider_id": 7,
		"skill_id": 3,
		"session_date_time": "2030-03-15T09:00:00Z",
		"location_type": "Carrier Pigeon"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRequestSessionUnknownProviderIsBadRequest(t *testing.T) {
	service := &stubSessionService{requestErr: services.ErrUserNotFound}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/request", strings.NewReader(`{
		"provider_id": 999999,
		"skill_id": 3,
		"session_date_time": "2030-03-15T09:00:00Z",
		"location_type": "Online"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestConfirmSessionForwardsMeetingURL(t *testing.T) {
	service := &stubSessionService{
		confirmResult: &models.Session{ID: 55, Status: models.SessionStatusConfirmed},
	}
	app := newSessionTestApp(service, "7")

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/confirm", strings.NewReader(`{
		"session_id": 55,
		"meeting_url": "https://meet.example.com/abc"
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastSessionID != 55 {
		t.Fatalf("expected session id 55, got %d", service.lastSessionID)
	}
	if service.lastMeetingURL == nil || *service.lastMeetingURL != "https://meet.example.com/abc" {
		t.Fatalf("expected forwarded meeting url, got %v", service.lastMeetingURL)
	}
}

func TestConfirmSessionReturnsForbiddenForNonProvider(t *testing.T) {
	service := &stubSessionService{confirmErr: services.ErrForbidden}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/confirm", strings.NewReader(`{"session_id": 55}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestCompleteSessionReturnsBadRequestForInvalidTransition(t *testing.T) {
	service := &stubSessionService{completeErr: services.ErrInvalidState}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/complete", strings.NewReader(`{"session_id": 55}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestRateSessionAcceptsDislike(t *testing.T) {
	service := &stubSessionService{
		rateResult: &models.Rating{ID: 4, SessionID: 55, LikeStatus: false},
	}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/rate", strings.NewReader(`{
		"session_id": 55,
		"ratee_id": 7,
		"like_status": false
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastRateInput.RateeID != 7 || service.lastRateInput.LikeStatus {
		t.Fatalf("unexpected forwarded rating input: %+v", service.lastRateInput)
	}
}

func TestRateSessionReturnsConflictForDuplicate(t *testing.T) {
	service := &stubSessionService{rateErr: services.ErrDuplicateRating}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/rate", strings.NewReader(`{
		"session_id": 55,
		"ratee_id": 7,
		"like_status": true
	}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestGetRatingSummaryReturnsZerosForUnratedUser(t *testing.T) {
	service := &stubSessionService{summaryResult: &models.RatingSummary{}}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/user/ratings/9", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body models.RatingSummary
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.TotalRatingsReceived != 0 || body.TotalLikes != 0 {
		t.Fatalf("expected zero summary, got %+v", body)
	}
	if service.lastActorID != 9 {
		t.Fatalf("expected user id 9, got %d", service.lastActorID)
	}
}

func TestListSessionsPassesStatusAndTimeframe(t *testing.T) {
	service := &stubSessionService{
		listResult: []models.Session{{ID: 5, Status: models.SessionStatusConfirmed}},
	}
	app := newSessionTestApp(service, "9")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions?status=Confirmed&timeframe=upcoming", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastListFilter.Status != "Confirmed" || service.lastListFilter.Timeframe != "upcoming" {
		t.Fatalf("unexpected filter: %+v", service.lastListFilter)
	}
}

func TestListSessionsRejectsUnknownTimeframe(t *testing.T) {
	service := &stubSessionService{}
	app := newSessionTestApp(service, "9")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions?timeframe=yesterday", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetSessionReturnsNotFound(t *testing.T) {
	service := &stubSessionService{getErr: pgx.ErrNoRows}
	app := newSessionTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/999", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestMapSessionErrorDefaultsToInternalServerError(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return mapSessionError(c, errors.New("boom"))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
