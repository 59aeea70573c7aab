package cache

import (
	"context"
	"errors"

	"teamchat-client/model"
)

// ErrMiss is returned when a key is absent or its TTL elapsed.
var ErrMiss = errors.New("cache: miss")

// Service is the persisted warm-start cache plus the cross-conversation
// unread counters. It is injected into its consumers, never reached through
// a package global; every key is namespaced by conversation or user id.
// A cached snapshot pre-populates a cold-started conversation view and is
// never a substitute for the gateway refresh that follows.
type Service interface {
	PutMessages(ctx context.Context, conversationID string, msgs []model.Message) error
	GetMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	InvalidateMessages(ctx context.Context, conversationID string) error

	IncrUnread(ctx context.Context, conversationID string) (int64, error)
	ResetUnread(ctx context.Context, conversationID string) error
	Unread(ctx context.Context, conversationID string) (int64, error)

	// Session keys: refresh tokens, app-lock passcode hash.
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}
