package gateway

import (
	"context"
	"errors"
	"time"

	"teamchat-client/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a row the caller named does not exist.
var ErrNotFound = errors.New("gateway: not found")

// Postgres reads and writes the hosted backend's relational tables. Every
// call is fallible and returns an explicit error; callers check at the call
// site and decide whether the failure blocks, rolls back or is swallowed.
type Postgres struct {
	DB *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{DB: db}
}

// GetMessages returns one conversation's messages ordered by creation time,
// with attachments, reactions and sender names resolved.
func (g *Postgres) GetMessages(ctx context.Context, conversationID string) ([]model.Message, error) {
	var rows []model.Message
	err := g.DB.WithContext(ctx).
		Where(&model.Message{ConversationID: conversationID}).
		Preload("Attachments").
		Preload("Reactions").
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	// Sender names come from the users table; one lookup per distinct sender.
	names := make(map[string]string)
	for i := range rows {
		name, ok := names[rows[i].SenderID]
		if !ok {
			user := new(model.User)
			if err := g.DB.WithContext(ctx).First(&user, "id = ?", rows[i].SenderID).Error; err == nil {
				name = user.DisplayName
			}
			names[rows[i].SenderID] = name
		}
		rows[i].SenderName = name
	}
	return rows, nil
}

// SendMessage durably stores a draft and returns the canonical record. The
// draft's correlation id is stored with the row so the realtime insert event
// echoes it back to the sender.
func (g *Postgres) SendMessage(ctx context.Context, draft model.MessageDraft) (*model.Message, error) {
	if draft.ConversationID == "" || draft.SenderID == "" {
		return nil, errors.New("gateway: draft missing conversation or sender")
	}

	msg := &model.Message{
		ID:               uuid.NewString(),
		CorrelationID:    draft.CorrelationID,
		ConversationID:   draft.ConversationID,
		SenderID:         draft.SenderID,
		Content:          draft.Content,
		Type:             draft.Type,
		CreatedAt:        time.Now().UTC(),
		ParentMessageID:  draft.ParentMessageID,
		ReplyToMessageID: draft.ReplyToMessageID,
	}
	if msg.Type == "" {
		msg.Type = model.MessageTypeText
	}

	err := g.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		for i := range draft.Attachments {
			att := draft.Attachments[i]
			att.ID = uuid.NewString()
			att.MessageID = msg.ID
			if err := tx.Create(&att).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// DeleteMessage removes a message for everyone (tombstone on the shared row)
// or hides it for the calling user only.
func (g *Postgres) DeleteMessage(ctx context.Context, id string, scope model.DeleteScope, userID string) error {
	switch scope {
	case model.DeleteForEveryone:
		tombstone := "Message deleted"
		res := g.DB.WithContext(ctx).
			Model(&model.Message{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"is_deleted":     true,
				"tombstone_text": tombstone,
				"content":        nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	case model.DeleteForMe:
		return g.DB.WithContext(ctx).
			Create(&model.HiddenMessage{MessageID: id, UserID: userID}).Error
	}
	return errors.New("gateway: unknown delete scope")
}

// MarkMessageAsRead records a read receipt. Callers treat this as
// best-effort; the error is returned for logging only.
func (g *Postgres) MarkMessageAsRead(ctx context.Context, messageID, userID string) error {
	return g.DB.WithContext(ctx).Exec(
		"INSERT INTO message_reads (message_id, user_id, read_at) VALUES (?, ?, ?) ON CONFLICT DO NOTHING",
		messageID, userID, time.Now().UTC(),
	).Error
}

// GetProfile resolves a user for display.
func (g *Postgres) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	user := new(model.User)
	if err := g.DB.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByLogin resolves a user by username or email for sign-in.
func (g *Postgres) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	user := new(model.User)
	err := g.DB.WithContext(ctx).
		Where("username = ? OR email = ?", login, login).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetAttachments returns a message's attachments, for realtime inserts whose
// payload omitted them.
func (g *Postgres) GetAttachments(ctx context.Context, messageID string) ([]model.Attachment, error) {
	var rows []model.Attachment
	err := g.DB.WithContext(ctx).
		Where(&model.Attachment{MessageID: messageID}).
		Find(&rows).Error
	return rows, err
}
