package socketio

import (
	"teamchat-client/call"
	"teamchat-client/model"

	"github.com/zishang520/socket.io/v2/socket"
)

// Room naming: one room per conversation view plus one per user.
func ConversationRoom(conversationID string) socket.Room {
	return socket.Room("conversation:" + conversationID)
}

// Pusher forwards engine output to the attached UI clients. It implements
// messenger.Notifier.
type Pusher struct {
	server *socket.Server
}

func NewPusher(server *socket.Server) *Pusher {
	return &Pusher{server: server}
}

type conversationPayload struct {
	ConversationID string          `json:"conversation_id"`
	Messages       []model.Message `json:"messages"`
}

type arrivalPayload struct {
	ConversationID string        `json:"conversation_id"`
	Message        model.Message `json:"message"`
}

type sendFailedPayload struct {
	ConversationID string `json:"conversation_id"`
	TemporaryID    string `json:"temporary_id"`
	Error          string `json:"error"`
}

type unreadPayload struct {
	ConversationID string `json:"conversation_id"`
	Count          int64  `json:"count"`
}

type callPayload struct {
	CallID      string           `json:"call_id"`
	Status      model.CallStatus `json:"status"`
	CallType    model.CallType   `json:"call_type"`
	Mode        model.CallMode   `json:"mode"`
	InitiatorID string           `json:"initiator_id"`
}

func (p *Pusher) ConversationUpdated(conversationID string, msgs []model.Message) {
	p.server.To(ConversationRoom(conversationID)).Emit(
		"conversation_updated",
		conversationPayload{ConversationID: conversationID, Messages: msgs},
	)
}

func (p *Pusher) MessageArrived(conversationID string, msg model.Message) {
	p.server.To(ConversationRoom(conversationID)).Emit(
		"message_new",
		arrivalPayload{ConversationID: conversationID, Message: msg},
	)
}

func (p *Pusher) SendFailed(conversationID, temporaryID string, err error) {
	p.server.To(ConversationRoom(conversationID)).Emit(
		"message_send_failed",
		sendFailedPayload{ConversationID: conversationID, TemporaryID: temporaryID, Error: err.Error()},
	)
}

func (p *Pusher) UnreadChanged(conversationID string, count int64) {
	p.server.To(ConversationRoom(conversationID)).Emit(
		"unread_changed",
		unreadPayload{ConversationID: conversationID, Count: count},
	)
}

func (p *Pusher) broadcast(event string, message any) {
	p.server.FetchSockets()(func(sockets []*socket.RemoteSocket, _ error) {
		for _, s := range sockets {
			s.Emit(event, message)
		}
	})
}

// CallHooks builds the call lifecycle hooks: every mirrored transition is
// pushed to the UI; the connected push carries the auto-join signal.
func (p *Pusher) CallHooks() call.Hooks {
	emit := func(s *call.Session, status model.CallStatus) {
		p.broadcast("call_status", callPayload{
			CallID:      s.ID,
			Status:      status,
			CallType:    s.CallType,
			Mode:        s.Mode,
			InitiatorID: s.InitiatorID,
		})
	}
	return call.Hooks{
		OnRinging:   func(s *call.Session) { emit(s, model.CallRinging) },
		OnConnected: func(s *call.Session) { emit(s, model.CallConnected) },
		OnTerminal:  func(s *call.Session, status model.CallStatus) { emit(s, status) },
	}
}
