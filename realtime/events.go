package realtime

import (
	"encoding/json"
	"fmt"

	"teamchat-client/model"
)

// Action names carried in the x-action header of each pushed event.
const (
	ActionMessageInsert    = "message_insert"
	ActionMessageUpdate    = "message_update"
	ActionMessageDelete    = "message_delete"
	ActionMessageTombstone = "message_tombstone"
	ActionReactionAdd      = "reaction_add"
	ActionReactionRemove   = "reaction_remove"
	ActionAttachmentAdded  = "attachment_added"
	ActionCallStatus       = "call_status"
)

// Event is one pushed change. Each kind carries exactly the fields the
// backend guarantees for it, so handlers never probe optional fields.
type Event interface {
	// Conversation returns the conversation the event belongs to; empty for
	// events outside conversation scope (call status).
	Conversation() string
	Action() string
}

// InsertEvent announces a new message. SenderName and Attachments may be
// absent from the payload and are resolved through the gateway on demand.
type InsertEvent struct {
	ConversationID string
	Message        model.Message
}

func (e InsertEvent) Conversation() string { return e.ConversationID }
func (e InsertEvent) Action() string       { return ActionMessageInsert }

// UpdateEvent carries the edited fields of an existing message.
type UpdateEvent struct {
	ConversationID string
	MessageID      string
	Content        *string
}

func (e UpdateEvent) Conversation() string { return e.ConversationID }
func (e UpdateEvent) Action() string       { return ActionMessageUpdate }

// DeleteEvent removes a message from the conversation entirely.
type DeleteEvent struct {
	ConversationID string
	MessageID      string
}

func (e DeleteEvent) Conversation() string { return e.ConversationID }
func (e DeleteEvent) Action() string       { return ActionMessageDelete }

// TombstoneEvent marks a message deleted-in-place; the row survives with
// replacement text.
type TombstoneEvent struct {
	ConversationID string
	MessageID      string
	TombstoneText  string
}

func (e TombstoneEvent) Conversation() string { return e.ConversationID }
func (e TombstoneEvent) Action() string       { return ActionMessageTombstone }

// ReactionAddEvent adds one (user, emoji) tuple to a message's reaction set.
type ReactionAddEvent struct {
	ConversationID string
	MessageID      string
	UserID         string
	Emoji          string
}

func (e ReactionAddEvent) Conversation() string { return e.ConversationID }
func (e ReactionAddEvent) Action() string       { return ActionReactionAdd }

// ReactionRemoveEvent removes one (user, emoji) tuple; removal matches the
// pair, not a reaction row identity.
type ReactionRemoveEvent struct {
	ConversationID string
	MessageID      string
	UserID         string
	Emoji          string
}

func (e ReactionRemoveEvent) Conversation() string { return e.ConversationID }
func (e ReactionRemoveEvent) Action() string       { return ActionReactionRemove }

// AttachmentAddedEvent appends a late-arriving attachment to an existing
// message, after its upload finished.
type AttachmentAddedEvent struct {
	ConversationID string
	MessageID      string
	Attachment     model.Attachment
}

func (e AttachmentAddedEvent) Conversation() string { return e.ConversationID }
func (e AttachmentAddedEvent) Action() string       { return ActionAttachmentAdded }

// CallStatusEvent mirrors one status transition of a call session.
type CallStatusEvent struct {
	CallID      string
	Status      model.CallStatus
	CallType    model.CallType
	Mode        model.CallMode
	InitiatorID string
}

func (e CallStatusEvent) Conversation() string { return "" }
func (e CallStatusEvent) Action() string       { return ActionCallStatus }

type insertWire struct {
	ConversationID string        `json:"conversation_id"`
	Message        model.Message `json:"message"`
}

type updateWire struct {
	ConversationID string  `json:"conversation_id"`
	MessageID      string  `json:"message_id"`
	Content        *string `json:"content"`
}

type deleteWire struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
}

type tombstoneWire struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	TombstoneText  string `json:"tombstone_text"`
}

type reactionWire struct {
	ConversationID string `json:"conversation_id"`
	MessageID      string `json:"message_id"`
	UserID         string `json:"user_id"`
	Emoji          string `json:"emoji"`
}

type attachmentWire struct {
	ConversationID string           `json:"conversation_id"`
	MessageID      string           `json:"message_id"`
	Attachment     model.Attachment `json:"attachment"`
}

type callStatusWire struct {
	CallID      string           `json:"call_id"`
	Status      model.CallStatus `json:"status"`
	CallType    model.CallType   `json:"call_type"`
	Mode        model.CallMode   `json:"mode"`
	InitiatorID string           `json:"initiator_id"`
}

// Decode turns an action name and JSON payload into its event kind.
func Decode(action string, body []byte) (Event, error) {
	switch action {
	case ActionMessageInsert:
		w := insertWire{}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return InsertEvent{ConversationID: w.ConversationID, Message: w.Message}, nil
	case ActionMessageUpdate:
		w := updateWire{}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return UpdateEvent{ConversationID: w.ConversationID, MessageID: w.MessageID, Content: w.Content}, nil
	case ActionMessageDelete:
		w := deleteWire{}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return DeleteEvent{ConversationID: w.ConversationID, MessageID: w.MessageID}, nil
	case ActionMessageTombstone:
		w := tombstoneWire{}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return TombstoneEvent{ConversationID: w.ConversationID, MessageID: w.MessageID, TombstoneText: w.TombstoneText}, nil
	case ActionReactionAdd:
		w := reactionWire{}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ReactionAddEvent{ConversationID: w.ConversationID, MessageID: w.MessageID, UserID: w.UserID, Emoji: w.Emoji}, nil
	case ActionReactionRemove:
		w := reactionWire{}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return ReactionRemoveEvent{ConversationID: w.ConversationID, MessageID: w.MessageID, UserID: w.UserID, Emoji: w.Emoji}, nil
	case ActionAttachmentAdded:
		w := attachmentWire{}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return AttachmentAddedEvent{ConversationID: w.ConversationID, MessageID: w.MessageID, Attachment: w.Attachment}, nil
	case ActionCallStatus:
		w := callStatusWire{}
		if err := json.Unmarshal(body, &w); err != nil {
			return nil, err
		}
		return CallStatusEvent{CallID: w.CallID, Status: w.Status, CallType: w.CallType, Mode: w.Mode, InitiatorID: w.InitiatorID}, nil
	}
	return nil, fmt.Errorf("realtime: unknown action %q", action)
}
