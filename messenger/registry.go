package messenger

import (
	"context"
	"sync"

	"teamchat-client/cache"
	"teamchat-client/realtime"
)

// Deps are the collaborators shared by every engine the registry opens.
type Deps struct {
	UserID   string
	Gateway  Gateway
	Stream   realtime.Stream
	Cache    cache.Service
	Notifier Notifier
}

// Registry tracks one engine per open conversation. No two views share a
// store: opening an already-open conversation returns its live engine.
type Registry struct {
	deps Deps

	mu      sync.Mutex
	engines map[string]*Engine
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:    deps,
		engines: make(map[string]*Engine),
	}
}

// Open returns the conversation's engine, creating it on first use.
func (r *Registry) Open(ctx context.Context, conversationID string) (*Engine, error) {
	r.mu.Lock()
	if engine, ok := r.engines[conversationID]; ok {
		r.mu.Unlock()
		return engine, nil
	}
	r.mu.Unlock()

	engine, err := Open(ctx, Config{
		ConversationID: conversationID,
		UserID:         r.deps.UserID,
		Gateway:        r.deps.Gateway,
		Stream:         r.deps.Stream,
		Cache:          r.deps.Cache,
		Notifier:       r.deps.Notifier,
	})
	if engine == nil {
		return nil, err
	}

	r.mu.Lock()
	if existing, ok := r.engines[conversationID]; ok {
		// Lost the race; keep the first engine.
		r.mu.Unlock()
		engine.Close()
		return existing, nil
	}
	r.engines[conversationID] = engine
	r.mu.Unlock()
	return engine, err
}

// Get returns a live engine without opening one.
func (r *Registry) Get(conversationID string) (*Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	engine, ok := r.engines[conversationID]
	return engine, ok
}

// Close unmounts one conversation view.
func (r *Registry) Close(conversationID string) {
	r.mu.Lock()
	engine, ok := r.engines[conversationID]
	delete(r.engines, conversationID)
	r.mu.Unlock()
	if ok {
		engine.Close()
	}
}

// CloseAll unmounts everything, for shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	engines := r.engines
	r.engines = make(map[string]*Engine)
	r.mu.Unlock()
	for _, engine := range engines {
		engine.Close()
	}
}
