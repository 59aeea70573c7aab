package controller

import (
	"teamchat-client/model"

	"github.com/gofiber/fiber/v2"
)

type CallStartInput struct {
	CallType     model.CallType `json:"call_type"`
	Mode         model.CallMode `json:"mode"`
	Participants []string       `json:"participants"`
}

// CallStart asks the calling backend for a new session and begins mirroring
// it locally in the ringing state.
func (ct *Controller) CallStart(c *fiber.Ctx) error {
	input := new(CallStartInput)
	if err := c.BodyParser(&input); err != nil || len(input.Participants) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}
	if input.CallType == "" {
		input.CallType = model.CallAudio
	}
	if input.Mode == "" {
		input.Mode = model.CallSingle
	}

	session, err := ct.Gateway.CreateCallSession(c.Context(), userID(c), input.CallType, input.Mode, input.Participants)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Call could not be started",
			"data":    nil,
		})
	}

	ct.Calls.Track(session.ID, session.CallType, session.Mode, session.InitiatorID)

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    session,
	})
}

// CallAnswer reports the local accept; the connected transition comes back
// over the stream.
func (ct *Controller) CallAnswer(c *fiber.Ctx) error {
	return ct.callTransition(c, model.CallConnecting)
}

// CallReject reports the local reject.
func (ct *Controller) CallReject(c *fiber.Ctx) error {
	return ct.callTransition(c, model.CallRejected)
}

// CallHangup reports the local hang-up.
func (ct *Controller) CallHangup(c *fiber.Ctx) error {
	return ct.callTransition(c, model.CallEnded)
}

func (ct *Controller) callTransition(c *fiber.Ctx, status model.CallStatus) error {
	if err := ct.Gateway.UpdateCallStatus(c.Context(), c.Params("id"), status); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Call update failed",
			"data":    nil,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}

// CallGet returns the mirrored session if live, else the backend row.
func (ct *Controller) CallGet(c *fiber.Ctx) error {
	if session, ok := ct.Calls.Get(c.Params("id")); ok {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": nil,
			"data": fiber.Map{
				"id":           session.ID,
				"status":       session.Status(),
				"call_type":    session.CallType,
				"mode":         session.Mode,
				"initiator_id": session.InitiatorID,
			},
		})
	}

	session, err := ct.Gateway.GetCallSession(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Call not found",
			"data":    nil,
		})
	}
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    session,
	})
}
