package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func parseAuthUserID(c *fiber.Ctx) (int64, error) {
	userIDValue := c.Locals("user_id")
	userIDStr, ok := userIDValue.(string)
	if !ok {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(userIDStr, 10, 64)
}

func formatUserID(id int64) string {
	return strconv.FormatInt(id, 10)
}
