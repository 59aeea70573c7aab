package router

import (
	"teamchat-client/controller"
	"teamchat-client/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func Rest(app *fiber.App, ct *controller.Controller, enforcer *casbin.Enforcer) {
	api := app.Group("/v1", logger.New())

	// Auth / session
	auth := api.Group("/auth")
	auth.Post("/signin", ct.AuthSignin)
	auth.Post("/token/renew", ct.AuthTokenRenew)
	auth.Post("/2fa/validate", middleware.JWT(), ct.AuthOtpValidate)
	auth.Post("/lock", middleware.JWT(), middleware.OTP(), ct.AppLockSet)
	auth.Post("/lock/verify", middleware.JWT(), middleware.OTP(), ct.AppLockVerify)

	// User
	user := api.Group("/user", middleware.JWT(), middleware.OTP())
	user.Get("/profile", ct.UserProfile)

	// Messenger
	messenger := api.Group("/messenger", middleware.JWT(), middleware.OTP())
	messenger.Get("/conversations/:id/messages", ct.MessengerMessages)
	messenger.Post("/conversations/:id/messages", ct.MessengerSend)
	messenger.Get("/conversations/:id/unread", ct.MessengerUnread)
	messenger.Delete("/messages/:id", ct.MessengerDelete)
	messenger.Post("/messages/:id/read", ct.MessengerMarkRead)

	// Calls
	calls := api.Group("/call", middleware.JWT(), middleware.OTP())
	calls.Post("/start", ct.CallStart)
	calls.Get("/:id", ct.CallGet)
	calls.Post("/:id/answer", ct.CallAnswer)
	calls.Post("/:id/reject", ct.CallReject)
	calls.Post("/:id/hangup", ct.CallHangup)

	// Team & attendance
	team := api.Group("/team", middleware.JWT(), middleware.OTP())
	team.Get("/:team/members", ct.TeamMembers)
	team.Post("/:team/members", middleware.RBAC(enforcer), ct.TeamMemberAdd)
	team.Delete("/:team/members/:id", middleware.RBAC(enforcer), ct.TeamMemberRemove)
	team.Post("/:team/attendance/checkin", ct.TeamCheckIn)
	team.Post("/:team/attendance/checkout", ct.TeamCheckOut)
	team.Get("/:team/attendance", middleware.RBAC(enforcer), ct.TeamAttendance)
}
