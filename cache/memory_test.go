package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"teamchat-client/model"
)

func TestMemoryMessagesRoundTrip(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	content := "hello"
	msgs := []model.Message{{ID: "m1", ConversationID: "conv-1", Content: &content}}
	if err := m.PutMessages(ctx, "conv-1", msgs); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := m.GetMessages(ctx, "conv-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m1" {
		t.Fatalf("snapshot lost: %+v", got)
	}

	if _, err := m.GetMessages(ctx, "conv-other"); !errors.Is(err, ErrMiss) {
		t.Fatalf("missing conversation returned %v, want ErrMiss", err)
	}
}

func TestMemoryMessagesExpire(t *testing.T) {
	m := NewMemory(time.Minute)
	ctx := context.Background()

	clock := time.Now()
	m.now = func() time.Time { return clock }

	m.PutMessages(ctx, "conv-1", []model.Message{{ID: "m1"}})

	clock = clock.Add(30 * time.Second)
	if _, err := m.GetMessages(ctx, "conv-1"); err != nil {
		t.Fatalf("snapshot expired early: %v", err)
	}

	clock = clock.Add(45 * time.Second)
	if _, err := m.GetMessages(ctx, "conv-1"); !errors.Is(err, ErrMiss) {
		t.Fatalf("stale snapshot served past its ttl: %v", err)
	}
}

func TestMemoryInvalidate(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	m.PutMessages(ctx, "conv-1", []model.Message{{ID: "m1"}})
	if err := m.InvalidateMessages(ctx, "conv-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := m.GetMessages(ctx, "conv-1"); !errors.Is(err, ErrMiss) {
		t.Fatalf("invalidated snapshot still served: %v", err)
	}
}

func TestMemoryUnreadCounters(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := m.IncrUnread(ctx, "conv-1")
		if err != nil || got != want {
			t.Fatalf("incr %d: got %d, %v", want, got, err)
		}
	}

	if got, _ := m.Unread(ctx, "conv-other"); got != 0 {
		t.Fatalf("untouched counter reads %d", got)
	}

	if err := m.ResetUnread(ctx, "conv-1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got, _ := m.Unread(ctx, "conv-1"); got != 0 {
		t.Fatalf("counter survived reset: %d", got)
	}
}

func TestMemoryKeyValue(t *testing.T) {
	m := NewMemory(time.Hour)
	ctx := context.Background()

	if err := m.Set(ctx, "refresh:me", "token"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := m.Get(ctx, "refresh:me")
	if err != nil || got != "token" {
		t.Fatalf("get: %q, %v", got, err)
	}

	if err := m.Delete(ctx, "refresh:me"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := m.Get(ctx, "refresh:me"); !errors.Is(err, ErrMiss) {
		t.Fatalf("deleted key still served: %v", err)
	}
}
