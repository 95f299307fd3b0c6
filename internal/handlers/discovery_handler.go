package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/services"
)

type discoveryApplicationService interface {
	SearchTutors(ctx context.Context, actorID int64, term string) ([]models.TutorListing, error)
	GetMatches(ctx context.Context, actorID int64) ([]models.TutorListing, error)
	GetTopTutors(ctx context.Context, limit int) ([]models.TopTutor, error)
}

type DiscoveryHandler struct {
	service discoveryApplicationService
}

func NewDiscoveryHandler(service *services.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

func (h *DiscoveryHandler) SearchTutors(c *fiber.Ctx) error {
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	term := strings.TrimSpace(c.Query("skill"))
	listings, err := h.service.SearchTutors(c.Context(), actorID, term)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"error": "skill query parameter is required"})
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to search tutors"})
	}

	return c.JSON(fiber.Map{"tutors": listings})
}

func (h *DiscoveryHandler) GetMatches(c *fiber.Ctx) error {
	actorID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	listings, err := h.service.GetMatches(c.Context(), actorID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load matches"})
	}

	return c.JSON(fiber.Map{"matches": listings})
}

func (h *DiscoveryHandler) GetTopTutors(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))

	tutors, err := h.service.GetTopTutors(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to load top tutors"})
	}

	return c.JSON(fiber.Map{"tutors": tutors})
}
