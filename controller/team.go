package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type TeamMemberInput struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// TeamMembers lists the roster.
func (ct *Controller) TeamMembers(c *fiber.Ctx) error {
	members, err := ct.Gateway.ListTeamMembers(c.Context(), c.Params("team"))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load members",
			"data":    nil,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    members,
	})
}

// TeamMemberAdd adds a member, admin only.
func (ct *Controller) TeamMemberAdd(c *fiber.Ctx) error {
	input := new(TeamMemberInput)
	if err := c.BodyParser(&input); err != nil || input.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}
	if input.Role == "" {
		input.Role = "member"
	}

	if err := ct.Gateway.AddTeamMember(c.Context(), c.Params("team"), input.UserID, input.Role); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Member was not added",
			"data":    nil,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}

// TeamMemberRemove removes a member, admin only.
func (ct *Controller) TeamMemberRemove(c *fiber.Ctx) error {
	if err := ct.Gateway.RemoveTeamMember(c.Context(), c.Params("team"), c.Params("id")); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Member was not removed",
			"data":    nil,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}

// TeamCheckIn opens today's attendance record for the calling user.
func (ct *Controller) TeamCheckIn(c *fiber.Ctx) error {
	record, err := ct.Gateway.CheckIn(c.Context(), c.Params("team"), userID(c))
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Check-in failed",
			"data":    nil,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    record,
	})
}

// TeamCheckOut closes today's attendance record.
func (ct *Controller) TeamCheckOut(c *fiber.Ctx) error {
	if err := ct.Gateway.CheckOut(c.Context(), c.Params("team"), userID(c)); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Check-out failed",
			"data":    nil,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}

// TeamAttendance lists a day's records; defaults to today.
func (ct *Controller) TeamAttendance(c *fiber.Ctx) error {
	day := c.Query("day")
	if day == "" {
		day = time.Now().UTC().Format("2006-01-02")
	}

	records, err := ct.Gateway.AttendanceForDay(c.Context(), c.Params("team"), day)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load attendance",
			"data":    nil,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    records,
	})
}
