package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/momentumhq/contentpilot/internal/service"
)

type ConsultantHandler struct {
	s service.ConsultantService
}

func NewConsultantHandler(service service.ConsultantService) *ConsultantHandler {
	return &ConsultantHandler{s: service}
}

func (h *ConsultantHandler) GetInfo(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	info, err := h.s.GetInfo(c.Context(), consultantID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to find consultant",
		})
	}
	return c.JSON(info)
}
