package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/service"
)

type ReportHandler struct {
	service service.ReportService
	log     logging.Logger
}

func NewReportHandler(s service.ReportService, log logging.Logger) *ReportHandler {
	return &ReportHandler{service: s, log: log}
}

// GetSummary returns the caller's own report
// Query params: startDate, endDate (default last 30 days), bucket (day|week|month|year)
func (h *ReportHandler) GetSummary(c *fiber.Ctx) error {
	var q service.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query"})
	}

	r, err := h.service.Seller(c.UserContext(), getUserID(c), &q)
	if err != nil {
		return respondError(c, h.log, err, "Failed to build summary")
	}
	return c.JSON(r)
}

// GetAdminSummary reports across sellers, or one seller with ?userId
func (h *ReportHandler) GetAdminSummary(c *fiber.Ctx) error {
	var q service.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query"})
	}

	r, err := h.service.Admin(c.UserContext(), &q)
	if err != nil {
		return respondError(c, h.log, err, "Failed to build summary")
	}
	return c.JSON(r)
}
