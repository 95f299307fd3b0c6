package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/services"
)

type stubSkillService struct {
	catalogResult []models.Skill
	catalogErr    error
	listsResult   *models.UserSkillLists
	listsErr      error
	replaceResult *models.UserSkillLists
	replaceErr    error

	lastUserID  int64
	lastOffered []int64
	lastSought  []int64
}

func (s *stubSkillService) ListCatalog(_ context.Context) ([]models.Skill, error) {
	return s.catalogResult, s.catalogErr
}

func (s *stubSkillService) GetUserSkills(_ context.Context, userID int64) (*models.UserSkillLists, error) {
	s.lastUserID = userID
	return s.listsResult, s.listsErr
}

func (s *stubSkillService) ReplaceUserSkills(_ context.Context, userID int64, offeredIDs []int64, soughtIDs []int64) (*models.UserSkillLists, error) {
	s.lastUserID = userID
	s.lastOffered = offeredIDs
	s.lastSought = soughtIDs
	return s.replaceResult, s.replaceErr
}

func newSkillTestApp(service *stubSkillService, userID string) *fiber.App {
	handler := &SkillHandler{service: service}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	})
	app.Get("/api/skills", handler.ListCatalog)
	app.Get("/api/users/skills", handler.GetUserSkills)
	app.Put("/api/users/skills", handler.ReplaceUserSkills)
	return app
}

func TestListCatalogReturnsSkills(t *testing.T) {
	service := &stubSkillService{
		catalogResult: []models.Skill{{ID: 1, Name: "Calculus"}, {ID: 2, Name: "Go"}},
	}
	app := newSkillTestApp(service, "42")

	req := httptest.NewRequest(http.MethodGet, "/api/skills", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Skills []models.Skill `json:"skills"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Skills) != 2 || body.Skills[0].Name != "Calculus" {
		t.Fatalf("unexpected catalog: %+v", body.Skills)
	}
}

func TestReplaceUserSkillsForwardsBothLists(t *testing.T) {
	service := &stubSkillService{
		replaceResult: &models.UserSkillLists{
			Offered: []models.Skill{{ID: 1, Name: "Calculus"}},
			Sought:  []models.Skill{{ID: 2, Name: "Go"}},
		},
	}
	app := newSkillTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPut, "/api/users/skills", strings.NewReader(`{
		"offered": [1],
		"sought": [2]
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
	if service.lastUserID != 42 {
		t.Fatalf("expected user id 42, got %d", service.lastUserID)
	}
	if len(service.lastOffered) != 1 || service.lastOffered[0] != 1 {
		t.Fatalf("unexpected offered ids: %v", service.lastOffered)
	}
	if len(service.lastSought) != 1 || service.lastSought[0] != 2 {
		t.Fatalf("unexpected sought ids: %v", service.lastSought)
	}
}

func TestReplaceUserSkillsRejectsUnknownIDs(t *testing.T) {
	service := &stubSkillService{replaceErr: services.ErrInvalidInput}
	app := newSkillTestApp(service, "42")

	req := httptest.NewRequest(http.MethodPut, "/api/users/skills", strings.NewReader(`{
		"offered": [999],
		"sought": []
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
