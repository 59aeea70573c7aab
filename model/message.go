package model

import "time"

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeImage  MessageType = "image"
	MessageTypeSystem MessageType = "system"
)

// Message is one chat message, root or threaded reply. Before the durable
// write confirms, the record carries a client-assigned TemporaryID and no ID;
// once the canonical id is assigned the temporary id is discarded.
type Message struct {
	ID             string `gorm:"primaryKey" json:"id"`
	TemporaryID    string `gorm:"-" json:"temporary_id,omitempty"`
	CorrelationID  string `gorm:"index" json:"correlation_id,omitempty"`
	ConversationID string `gorm:"index;not null" json:"conversation_id"`
	SenderID       string `gorm:"index;not null" json:"sender_id"`
	SenderName     string `gorm:"-" json:"sender_name,omitempty"`

	Content *string     `json:"content"`
	Type    MessageType `gorm:"not null;default:'text'" json:"message_type"`

	CreatedAt time.Time `json:"created_at"`

	ParentMessageID  *string `json:"parent_message_id,omitempty"`
	ReplyToMessageID *string `json:"reply_to_message_id,omitempty"`

	Attachments []Attachment `gorm:"foreignKey:MessageID" json:"attachments,omitempty"`
	Reactions   []Reaction   `gorm:"foreignKey:MessageID" json:"reactions,omitempty"`

	IsDeleted     bool    `gorm:"not null;default:false" json:"is_deleted"`
	TombstoneText *string `json:"tombstone_text,omitempty"`

	// Pending marks an optimistic record whose durable write is in flight.
	Pending bool `gorm:"-" json:"pending,omitempty"`
}

// Key returns the identifier the message resolves under: the canonical id
// once assigned, the temporary id before that.
func (m *Message) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return m.TemporaryID
}

// Attachment is owned by exactly one message. IsUploading is set while the
// file exists only locally.
type Attachment struct {
	ID           string `gorm:"primaryKey" json:"id"`
	MessageID    string `gorm:"index;not null" json:"message_id"`
	FileType     string `gorm:"not null" json:"file_type"`
	Filename     string `gorm:"not null" json:"filename"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	IsUploading  bool   `gorm:"-" json:"is_uploading,omitempty"`
}

// Reaction is keyed by (message, user, emoji); reactions form a set per
// message, added and removed atomically.
type Reaction struct {
	MessageID string `gorm:"primaryKey" json:"message_id"`
	UserID    string `gorm:"primaryKey" json:"user_id"`
	Emoji     string `gorm:"primaryKey" json:"emoji"`
}

// MessageDraft is a user-composed message handed to the optimistic mutator.
type MessageDraft struct {
	ConversationID   string       `json:"conversation_id"`
	SenderID         string       `json:"sender_id"`
	Content          *string      `json:"content"`
	Type             MessageType  `json:"message_type"`
	ParentMessageID  *string      `json:"parent_message_id,omitempty"`
	ReplyToMessageID *string      `json:"reply_to_message_id,omitempty"`
	Attachments      []Attachment `json:"attachments,omitempty"`

	// CorrelationID is generated by the client, stored with the row and
	// echoed back on the realtime insert so the sender can match its own
	// optimistic record explicitly.
	CorrelationID string `json:"correlation_id"`
}

// DeleteScope selects who a message deletion applies to.
type DeleteScope string

const (
	DeleteForEveryone DeleteScope = "everyone"
	DeleteForMe       DeleteScope = "me"
)

// HiddenMessage is a per-user hide row backing DeleteForMe.
type HiddenMessage struct {
	MessageID string `gorm:"primaryKey" json:"message_id"`
	UserID    string `gorm:"primaryKey" json:"user_id"`
}
