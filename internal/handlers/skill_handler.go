package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/services"
)

type skillApplicationService interface {
	ListCatalog(ctx context.Context) ([]models.Skill, error)
	GetUserSkills(ctx context.Context, userID int64) (*models.UserSkillLists, error)
	ReplaceUserSkills(ctx context.Context, userID int64, offeredIDs []int64, soughtIDs []int64) (*models.UserSkillLists, error)
}

type SkillHandler struct {
	service skillApplicationService
}

func NewSkillHandler(service *services.SkillService) *SkillHandler {
	return &SkillHandler{service: service}
}

type replaceSkillsRequest struct {
	Offered []int64 `json:"offered"`
	Sought  []int64 `json:"sought"`
}

func (h *SkillHandler) ListCatalog(c *fiber.Ctx) error {
	skills, err := h.service.ListCatalog(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load skill catalog"})
	}

	return c.JSON(fiber.Map{"skills": skills})
}

func (h *SkillHandler) GetUserSkills(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	lists, err := h.service.GetUserSkills(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load skills"})
	}

	return c.JSON(fiber.Map{"skills": lists})
}

// ReplaceUserSkills swaps both lists at once; the service runs the
// delete-and-reinsert inside one transaction.
func (h *SkillHandler) ReplaceUserSkills(c *fiber.Ctx) error {
	userID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req replaceSkillsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	lists, err := h.service.ReplaceUserSkills(c.Context(), userID, req.Offered, req.Sought)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "Unknown or duplicated skill ids"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update skills"})
	}

	return c.JSON(fiber.Map{"skills": lists})
}
