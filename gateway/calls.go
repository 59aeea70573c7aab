package gateway

import (
	"context"
	"time"

	"teamchat-client/model"

	"github.com/google/uuid"
)

// CreateCallSession asks the calling backend to start a call. The session
// begins ringing; every later status arrives over the realtime stream.
func (g *Postgres) CreateCallSession(ctx context.Context, initiatorID string, callType model.CallType, mode model.CallMode, participants []string) (*model.CallSession, error) {
	session := &model.CallSession{
		ID:          uuid.NewString(),
		Status:      model.CallRinging,
		CallType:    callType,
		Mode:        mode,
		InitiatorID: initiatorID,
		StartedAt:   time.Now().UTC(),
	}
	if err := g.DB.WithContext(ctx).Create(session).Error; err != nil {
		return nil, err
	}
	for _, id := range participants {
		p := model.CallParticipant{CallID: session.ID, UserID: id, JoinedAt: time.Now().UTC()}
		if err := g.DB.WithContext(ctx).Create(&p).Error; err != nil {
			return nil, err
		}
	}
	return session, nil
}

// UpdateCallStatus reports a client-side answer/reject/hang-up to the
// backend. The resulting status change still comes back over the stream.
func (g *Postgres) UpdateCallStatus(ctx context.Context, callID string, status model.CallStatus) error {
	updates := map[string]interface{}{"status": status}
	if status.Terminal() {
		updates["ended_at"] = time.Now().UTC()
	}
	res := g.DB.WithContext(ctx).
		Model(&model.CallSession{}).
		Where("id = ?", callID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCallSession reads one call with its participants.
func (g *Postgres) GetCallSession(ctx context.Context, callID string) (*model.CallSession, error) {
	session := new(model.CallSession)
	err := g.DB.WithContext(ctx).
		Preload("Participants").
		First(&session, "id = ?", callID).Error
	if err != nil {
		return nil, err
	}
	return session, nil
}
