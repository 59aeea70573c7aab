package cache

import (
	"context"
	"sync"
	"time"

	"teamchat-client/model"
)

// Memory implements Service in process memory with the same TTL contract as
// the redis cache. It backs tests and the CACHE_DRIVER=memory configuration.
type Memory struct {
	mu       sync.Mutex
	ttl      time.Duration
	messages map[string]memoryEntry
	unread   map[string]int64
	kv       map[string]string

	// now is swappable so tests can advance time.
	now func() time.Time
}

type memoryEntry struct {
	msgs    []model.Message
	expires time.Time
}

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:      ttl,
		messages: make(map[string]memoryEntry),
		unread:   make(map[string]int64),
		kv:       make(map[string]string),
		now:      time.Now,
	}
}

func (m *Memory) PutMessages(_ context.Context, conversationID string, msgs []model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]model.Message, len(msgs))
	copy(snapshot, msgs)
	m.messages[conversationID] = memoryEntry{msgs: snapshot, expires: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) GetMessages(_ context.Context, conversationID string) ([]model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.messages[conversationID]
	if !ok || m.now().After(entry.expires) {
		delete(m.messages, conversationID)
		return nil, ErrMiss
	}
	out := make([]model.Message, len(entry.msgs))
	copy(out, entry.msgs)
	return out, nil
}

func (m *Memory) InvalidateMessages(_ context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.messages, conversationID)
	return nil
}

func (m *Memory) IncrUnread(_ context.Context, conversationID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unread[conversationID]++
	return m.unread[conversationID], nil
}

func (m *Memory) ResetUnread(_ context.Context, conversationID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.unread, conversationID)
	return nil
}

func (m *Memory) Unread(_ context.Context, conversationID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unread[conversationID], nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[key] = value
	return nil
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.kv[key]
	if !ok {
		return "", ErrMiss
	}
	return val, nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.kv, key)
	return nil
}
