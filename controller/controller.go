package controller

import (
	"teamchat-client/cache"
	"teamchat-client/call"
	"teamchat-client/gateway"
	"teamchat-client/messenger"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Controller serves the local REST surface the UI layer talks to.
type Controller struct {
	Gateway  *gateway.Postgres
	Cache    cache.Service
	Registry *messenger.Registry
	Calls    *call.Registry
}

// userID extracts the authenticated user id from the verified JWT.
func userID(c *fiber.Ctx) string {
	user := c.Locals("user").(*jwt.Token)
	claims := user.Claims.(jwt.MapClaims)
	id, _ := claims["id"].(string)
	return id
}
