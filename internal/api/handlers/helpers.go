package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func GetConsultantID(c *fiber.Ctx) int64 {
	consultantID, _ := strconv.Atoi(c.Locals("consultant_id").(string))
	return int64(consultantID)
}
