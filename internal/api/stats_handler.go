package api

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/Shivam-knight-owl/product-tour-platform/internal/service"
)

type StatsHandler struct {
	statsService service.StatsService
}

func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) GetDashboardStats(c *fiber.Ctx) error {
	auth, ok := CurrentUser(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication required"})
	}

	stats, err := h.statsService.GetDashboardStats(c.Context(), auth.UserID)

	if err != nil {
		slog.ErrorContext(c.UserContext(), "Error fetching dashboard stats", slog.String("error", err.Error()))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Error fetching dashboard statistics"})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}
