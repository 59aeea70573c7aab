package controller

import (
	"github.com/gofiber/fiber/v2"
)

// UserProfile returns the signed-in user's profile.
func (ct *Controller) UserProfile(c *fiber.Ctx) error {
	user, err := ct.Gateway.GetProfile(c.Context(), userID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data": fiber.Map{
			"id":       user.ID,
			"created":  user.CreatedAt.Unix(),
			"username": user.Username,
			"name":     user.DisplayName,
			"email":    user.Email,
			"role":     user.Role,
			"otp":      user.Otp_enabled,
		},
	})
}
