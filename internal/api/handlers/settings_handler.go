package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/momentumhq/contentpilot/internal/service"
	"github.com/momentumhq/contentpilot/internal/transfer"
)

type SettingsHandler struct {
	s service.SettingsService
}

func NewSettingsHandler(service service.SettingsService) *SettingsHandler {
	return &SettingsHandler{s: service}
}

func (h *SettingsHandler) ListSchedules(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	schedules, err := h.s.ListSchedules(c.Context(), consultantID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list schedules",
		})
	}
	return c.JSON(schedules)
}

func (h *SettingsHandler) UpdateSchedule(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	var update transfer.ScheduleUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	err := h.s.UpdateSchedule(c.Context(), consultantID, update.Platform, update.PostingTimes, update.ImageStyle)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update schedule",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *SettingsHandler) UpdatePublerKey(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	var update transfer.PublerKeyUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.UpdatePublerKey(c.Context(), consultantID, update.ApiKey); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to update publer key",
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
