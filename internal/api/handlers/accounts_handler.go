package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/momentumhq/contentpilot/internal/service"
	"github.com/momentumhq/contentpilot/internal/transfer"
)

type AccountsHandler struct {
	s service.SocialAccountService
}

func NewAccountsHandler(service service.SocialAccountService) *AccountsHandler {
	return &AccountsHandler{s: service}
}

func (h *AccountsHandler) ConnectAccount(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	var req transfer.AccountConnect
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	id, err := h.s.Connect(c.Context(), consultantID, req.Platform, req.PublerAccountID, req.AccountName, req.AccountUsername)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"id": id})
}

func (h *AccountsHandler) ListAccounts(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	accounts, err := h.s.List(c.Context(), consultantID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list accounts",
		})
	}
	return c.JSON(accounts)
}

func (h *AccountsHandler) RemoveAccount(c *fiber.Ctx) error {
	consultantID := GetConsultantID(c)

	var req transfer.RemoveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.Remove(c.Context(), consultantID, req.ID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusOK)
}
