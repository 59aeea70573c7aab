package call

import (
	"errors"
	"fmt"
	"sync"

	"teamchat-client/model"
)

// ErrTerminal is returned when a transition arrives for a session that
// already reached a terminal state.
var ErrTerminal = errors.New("call: session already terminal")

// Hooks are the client-side effects of mirrored transitions. OnConnected
// triggers the auto-join into the media room; OnTerminal triggers the
// navigation away. Each fires at most once per session.
type Hooks struct {
	OnRinging   func(s *Session)
	OnConnected func(s *Session)
	OnTerminal  func(s *Session, status model.CallStatus)
}

// Session mirrors one call session owned by the calling backend. The client
// never invents a status: Apply only accepts the backend's state space and
// repeats of the current status are no-ops.
type Session struct {
	ID          string
	CallType    model.CallType
	Mode        model.CallMode
	InitiatorID string

	mu        sync.Mutex
	status    model.CallStatus
	hooks     Hooks
	joined    bool
	navigated bool
}

func NewSession(id string, callType model.CallType, mode model.CallMode, initiatorID string, hooks Hooks) *Session {
	s := &Session{
		ID:          id,
		CallType:    callType,
		Mode:        mode,
		InitiatorID: initiatorID,
		status:      model.CallRinging,
		hooks:       hooks,
	}
	if hooks.OnRinging != nil {
		hooks.OnRinging(s)
	}
	return s
}

// Status returns the current mirrored status.
func (s *Session) Status() model.CallStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Apply mirrors one pushed status transition.
func (s *Session) Apply(status model.CallStatus) error {
	if !status.Known() {
		return fmt.Errorf("call: unknown status %q", status)
	}

	s.mu.Lock()
	if status == s.status {
		s.mu.Unlock()
		return nil
	}
	if s.status.Terminal() {
		s.mu.Unlock()
		return ErrTerminal
	}
	s.status = status

	var fire func()
	switch {
	case status == model.CallConnected && !s.joined:
		s.joined = true
		if s.hooks.OnConnected != nil {
			fire = func() { s.hooks.OnConnected(s) }
		}
	case status.Terminal() && !s.navigated:
		s.navigated = true
		if s.hooks.OnTerminal != nil {
			fire = func() { s.hooks.OnTerminal(s, status) }
		}
	}
	s.mu.Unlock()

	if fire != nil {
		fire()
	}
	return nil
}
