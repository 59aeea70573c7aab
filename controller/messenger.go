package controller

import (
	"teamchat-client/model"

	"github.com/gofiber/fiber/v2"
)

type MessengerSendInput struct {
	Content          *string            `json:"content"`
	Type             model.MessageType  `json:"message_type"`
	ParentMessageID  *string            `json:"parent_message_id"`
	ReplyToMessageID *string            `json:"reply_to_message_id"`
	Attachments      []model.Attachment `json:"attachments"`
}

type MessengerDeleteInput struct {
	Scope model.DeleteScope `json:"scope"`
}

// MessengerMessages opens (or reuses) the conversation's engine and returns
// its rendering-ready sequence. A failed gateway refresh is surfaced as a
// blocking error; the user retries manually.
func (ct *Controller) MessengerMessages(c *fiber.Ctx) error {
	conversationID := c.Params("id")

	engine, err := ct.Registry.Open(c.Context(), conversationID)
	if engine == nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not subscribe to conversation",
			"data":    nil,
		})
	}
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not load messages",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    engine.Messages(),
	})
}

// MessengerSend runs the optimistic send. The provisional record is already
// visible to the UI through the push channel before this returns; the
// response carries the confirmed message, or the failure notice after the
// provisional record was rolled back.
func (ct *Controller) MessengerSend(c *fiber.Ctx) error {
	conversationID := c.Params("id")

	input := new(MessengerSendInput)
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	engine, err := ct.Registry.Open(c.Context(), conversationID)
	if engine == nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Could not subscribe to conversation",
			"data":    nil,
		})
	}

	msg, err := engine.Send(c.Context(), model.MessageDraft{
		Content:          input.Content,
		Type:             input.Type,
		ParentMessageID:  input.ParentMessageID,
		ReplyToMessageID: input.ReplyToMessageID,
		Attachments:      input.Attachments,
	})
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Message was not sent",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    msg,
	})
}

// MessengerDelete deletes for everyone or hides for the calling user; the
// authoritative effect comes back over the realtime stream.
func (ct *Controller) MessengerDelete(c *fiber.Ctx) error {
	input := new(MessengerDeleteInput)
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}
	if input.Scope == "" {
		input.Scope = model.DeleteForEveryone
	}

	if err := ct.Gateway.DeleteMessage(c.Context(), c.Params("id"), input.Scope, userID(c)); err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"status":  "error",
			"message": "Message was not deleted",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}

// MessengerMarkRead records a read receipt, best-effort.
func (ct *Controller) MessengerMarkRead(c *fiber.Ctx) error {
	ct.Gateway.MarkMessageAsRead(c.Context(), c.Params("id"), userID(c))
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}

// MessengerUnread returns the unread counter for one conversation.
func (ct *Controller) MessengerUnread(c *fiber.Ctx) error {
	count, err := ct.Cache.Unread(c.Context(), c.Params("id"))
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
		"data":    fiber.Map{"count": count},
	})
}
