package model

import "time"

type CallStatus string

const (
	CallRinging    CallStatus = "ringing"
	CallConnecting CallStatus = "connecting"
	CallConnected  CallStatus = "connected"
	CallEnded      CallStatus = "ended"
	CallMissed     CallStatus = "missed"
	CallRejected   CallStatus = "rejected"
	CallFailed     CallStatus = "failed"
	CallCancelled  CallStatus = "cancelled"
)

// Known reports whether the status is one the calling backend can push.
// The client never invents a status, it only mirrors these.
func (s CallStatus) Known() bool {
	switch s {
	case CallRinging, CallConnecting, CallConnected,
		CallEnded, CallMissed, CallRejected, CallFailed, CallCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status ends the call session.
func (s CallStatus) Terminal() bool {
	switch s {
	case CallEnded, CallMissed, CallRejected, CallFailed, CallCancelled:
		return true
	}
	return false
}

type CallType string

const (
	CallAudio CallType = "audio"
	CallVideo CallType = "video"
)

type CallMode string

const (
	CallSingle CallMode = "single"
	CallGroup  CallMode = "group"
)

// CallSession mirrors one voice/video call owned by the calling backend.
type CallSession struct {
	ID           string            `gorm:"primaryKey" json:"id"`
	Status       CallStatus        `gorm:"not null" json:"status"`
	CallType     CallType          `gorm:"not null" json:"call_type"`
	Mode         CallMode          `gorm:"not null" json:"mode"`
	InitiatorID  string            `gorm:"not null" json:"initiator_id"`
	Participants []CallParticipant `gorm:"foreignKey:CallID" json:"participants,omitempty"`
	StartedAt    time.Time         `json:"started_at"`
	EndedAt      *time.Time        `json:"ended_at,omitempty"`
}

type CallParticipant struct {
	CallID   string    `gorm:"primaryKey" json:"call_id"`
	UserID   string    `gorm:"primaryKey" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
