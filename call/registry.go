package call

import (
	"log"
	"sync"

	"teamchat-client/model"
	"teamchat-client/realtime"
)

// Registry routes pushed call status events to their sessions, creating a
// session on the first event for an unknown call (an incoming ring) and
// pruning sessions once terminal.
type Registry struct {
	hooks Hooks

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(hooks Hooks) *Registry {
	return &Registry{
		hooks:    hooks,
		sessions: make(map[string]*Session),
	}
}

// Track registers a session the local user initiated.
func (r *Registry) Track(id string, callType model.CallType, mode model.CallMode, initiatorID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		return s
	}
	s := NewSession(id, callType, mode, initiatorID, r.hooks)
	r.sessions[id] = s
	return s
}

// Get returns a live session.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// HandleEvent mirrors one pushed status transition. Non-call events and
// transitions for already-terminal sessions are dropped.
func (r *Registry) HandleEvent(ev realtime.Event) {
	statusEv, ok := ev.(realtime.CallStatusEvent)
	if !ok {
		return
	}

	r.mu.Lock()
	s, ok := r.sessions[statusEv.CallID]
	if !ok {
		if statusEv.Status.Terminal() {
			// A call that ended before this device ever showed it.
			r.mu.Unlock()
			return
		}
		s = NewSession(statusEv.CallID, statusEv.CallType, statusEv.Mode, statusEv.InitiatorID, r.hooks)
		r.sessions[statusEv.CallID] = s
	}
	r.mu.Unlock()

	if err := s.Apply(statusEv.Status); err != nil {
		log.Printf("call %s: dropping transition to %s: %v", statusEv.CallID, statusEv.Status, err)
	}

	if statusEv.Status.Terminal() {
		r.mu.Lock()
		delete(r.sessions, statusEv.CallID)
		r.mu.Unlock()
	}
}
