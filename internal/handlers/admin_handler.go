package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/aleyva-c/SkillSwapBack/internal/models"
	"github.com/aleyva-c/SkillSwapBack/internal/services"
)

type moderationApplicationService interface {
	FileReport(ctx context.Context, reporterID int64, reportedUserID int64, reason string) (*models.Report, error)
	ListReports(ctx context.Context, status string) ([]models.Report, error)
	ReviewReport(ctx context.Context, adminID int64, reportID int64, nextStatus string) (*models.Report, error)
}

type AdminHandler struct {
	service moderationApplicationService
}

func NewAdminHandler(service *services.ModerationService) *AdminHandler {
	return &AdminHandler{service: service}
}

type fileReportRequest struct {
	ReportedUserID int64  `json:"reported_user_id"`
	Reason         string `json:"reason"`
}

type reviewReportRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) FileReport(c *fiber.Ctx) error {
	reporterID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req fileReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	report, err := h.service.FileReport(c.Context(), reporterID, req.ReportedUserID, req.Reason)
	if err != nil {
		return mapReportError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"report": report})
}

func (h *AdminHandler) ListReports(c *fiber.Ctx) error {
	reports, err := h.service.ListReports(c.Context(), strings.TrimSpace(c.Query("status")))
	if err != nil {
		return mapReportError(c, err)
	}

	return c.JSON(fiber.Map{"reports": reports})
}

func (h *AdminHandler) ReviewReport(c *fiber.Ctx) error {
	adminID, err := parseAuthUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	reportID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || reportID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid report id"})
	}

	var req reviewReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	report, err := h.service.ReviewReport(c.Context(), adminID, reportID, strings.TrimSpace(req.Status))
	if err != nil {
		return mapReportError(c, err)
	}

	return c.JSON(fiber.Map{"report": report})
}

func mapReportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidState):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	case errors.Is(err, pgx.ErrNoRows):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to process report"})
	}
}
