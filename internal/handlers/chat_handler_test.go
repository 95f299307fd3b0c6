package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/services"
)

type stubChatService struct {
	conversationsResult []models.ConversationSummary
	conversationsErr    error
	createResult        *models.Conversation
	createErr           error
	messagesResult      []models.ChatMessage
	messagesTotal       int
	messagesErr         error
	sendResult          *services.ChatDelivery
	sendErr             error

	lastActorID        int64
	lastPartnerID      int64
	lastConversationID int64
	lastPage           int
	lastLimit          int
}

func (s *stubChatService) ListConversations(_ context.Context, actorID int64) ([]models.ConversationSummary, error) {
	s.lastActorID = actorID
	return s.conversationsResult, s.conversationsErr
}

func (s *stubChatService) CreateConversation(_ context.Context, actorID int64, partnerID int64) (*models.Conversation, error) {
	s.lastActorID = actorID
	s.lastPartnerID = partnerID
	return s.createResult, s.createErr
}

func (s *stubChatService) ListMessages(_ context.Context, actorID int64, conversationID int64, page int, limit int) ([]models.ChatMessage, int, error) {
	s.lastActorID = actorID
	s.lastConversationID = conversationID
	s.lastPage = page
	s.lastLimit = limit
	return s.messagesResult, s.messagesTotal, s.messagesErr
}

func (s *stubChatService) SendMessage(_ context.Context, actorID int64, conversationID int64, _ string) (*services.ChatDelivery, error) {
	s.lastActorID = actorID
	s.lastConversationID = conversationID
	return s.sendResult, s.sendErr
}

func newChatTestApp(service *stubChatService, userID string) *fiber.App {
	handler := &ChatHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Get("/api/conversations", handler.ListConversations)
	app.Post("/api/conversations", handler.CreateConversation)
	app.Get("/api/conversations/:id/messages", handler.GetMessages)
	return app
}

func TestCreateConversationReturnsCreated(t *testing.T) {
	service := &stubChatService{
		createResult: &models.Conversation{ID: 3, StarterID: 7, PartnerID: 42},
	}
	app := newChatTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/conversations", strings.NewReader(`{"partner_id": 7}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.lastActorID != 42 || service.lastPartnerID != 7 {
		t.Fatalf("unexpected forwarded ids: actor %d partner %d", service.lastActorID, service.lastPartnerID)
	}
}

func TestCreateConversationRejectsSelfThread(t *testing.T) {
	service := &stubChatService{createErr: services.ErrInvalidInput}
	app := newChatTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPost, "/api/conversations", strings.NewReader(`{"partner_id": 42}`))
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

func TestGetMessagesClampsPagination(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	service := &stubChatService{
		messagesResult: []models.ChatMessage{
			{ID: 1, ConversationID: 3, SenderID: 7, Content: "hello", CreatedAt: now},
		},
		messagesTotal: 120,
	}
	app := newChatTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/3/messages?page=2&limit=500", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastConversationID != 3 {
		t.Fatalf("expected conversation id 3, got %d", service.lastConversationID)
	}
	if service.lastPage != 2 {
		t.Fatalf("expected page 2, got %d", service.lastPage)
	}
	if service.lastLimit != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageLimit, service.lastLimit)
	}

	var body struct {
		Messages   []models.ChatMessage  `json:"messages"`
		Pagination models.PaginationMeta `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Pagination.Total != 120 {
		t.Fatalf("expected total 120, got %d", body.Pagination.Total)
	}
}

func TestGetMessagesReturnsNotFoundForStranger(t *testing.T) {
	service := &stubChatService{messagesErr: pgx.ErrNoRows}
	app := newChatTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/conversations/999/messages", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
