package router

import (
	"context"

	"teamchat-client/messenger"
	"teamchat-client/model"
	"teamchat-client/socketio"

	"github.com/zishang520/socket.io/v2/socket"
)

type conversationError struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

type conversationSnapshot struct {
	ConversationID string          `json:"conversation_id"`
	Messages       []model.Message `json:"messages"`
}

// Socket binds the UI-facing socket events. Opening a conversation joins
// its room, so every engine publish reaches the view; closing it tears the
// engine and its realtime subscription down.
func Socket(server *socket.Server, registry *messenger.Registry) {
	server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		client.On("conversation_open", func(args ...interface{}) {
			if client.Data() == nil || len(args) < 1 {
				return
			}
			conversationID, ok := args[0].(string)
			if !ok || conversationID == "" {
				return
			}

			client.Join(socketio.ConversationRoom(conversationID))

			engine, err := registry.Open(context.Background(), conversationID)
			if engine == nil {
				client.Emit("conversation_error", conversationError{
					ConversationID: conversationID,
					Message:        "Could not subscribe to conversation",
				})
				return
			}
			if err != nil {
				// Cached contents still render; the UI shows the alert and
				// the user retries with pull-to-refresh.
				client.Emit("conversation_error", conversationError{
					ConversationID: conversationID,
					Message:        "Could not load messages",
				})
			}

			client.Emit("conversation_updated", conversationSnapshot{
				ConversationID: conversationID,
				Messages:       engine.Messages(),
			})
		})

		client.On("conversation_close", func(args ...interface{}) {
			if len(args) < 1 {
				return
			}
			conversationID, ok := args[0].(string)
			if !ok {
				return
			}
			client.Leave(socketio.ConversationRoom(conversationID))
			registry.Close(conversationID)
		})

		client.On("conversation_focus", func(args ...interface{}) {
			if len(args) < 2 {
				return
			}
			conversationID, ok := args[0].(string)
			if !ok {
				return
			}
			focused, _ := args[1].(bool)
			if engine, live := registry.Get(conversationID); live {
				engine.Focus(focused)
			}
		})

		client.On("messenger_send_message", func(args ...interface{}) {
			if client.Data() == nil || len(args) < 2 {
				return
			}
			conversationID, ok := args[0].(string)
			if !ok {
				return
			}
			content, ok := args[1].(string)
			if !ok {
				return
			}

			engine, err := registry.Open(context.Background(), conversationID)
			if engine == nil || err != nil {
				client.Emit("conversation_error", conversationError{
					ConversationID: conversationID,
					Message:        "Could not subscribe to conversation",
				})
				return
			}

			// Failures surface through the message_send_failed push after
			// the provisional record rolls back.
			engine.Send(context.Background(), model.MessageDraft{
				Content: &content,
				Type:    model.MessageTypeText,
			})
		})

		client.On("conversation_refresh", func(args ...interface{}) {
			if len(args) < 1 {
				return
			}
			conversationID, ok := args[0].(string)
			if !ok {
				return
			}
			if engine, live := registry.Get(conversationID); live {
				if err := engine.Reload(context.Background()); err != nil {
					client.Emit("conversation_error", conversationError{
						ConversationID: conversationID,
						Message:        "Could not load messages",
					})
				}
			}
		})
	})
}
