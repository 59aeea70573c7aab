package realtime

import (
	"testing"

	"teamchat-client/model"
)

func TestDecodeInsert(t *testing.T) {
	body := []byte(`{
		"conversation_id": "conv-1",
		"message": {
			"id": "m1",
			"correlation_id": "corr-1",
			"conversation_id": "conv-1",
			"sender_id": "user-2",
			"content": "hello",
			"message_type": "text"
		}
	}`)

	ev, err := Decode(ActionMessageInsert, body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	insert, ok := ev.(InsertEvent)
	if !ok {
		t.Fatalf("decoded %T, want InsertEvent", ev)
	}
	if insert.Conversation() != "conv-1" {
		t.Fatalf("conversation %q", insert.Conversation())
	}
	if insert.Message.ID != "m1" || insert.Message.CorrelationID != "corr-1" {
		t.Fatalf("message fields lost: %+v", insert.Message)
	}
	if insert.Message.Content == nil || *insert.Message.Content != "hello" {
		t.Fatalf("content lost: %v", insert.Message.Content)
	}
}

func TestDecodeUpdateWithNullContent(t *testing.T) {
	body := []byte(`{"conversation_id":"conv-1","message_id":"m1","content":null}`)

	ev, err := Decode(ActionMessageUpdate, body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	update := ev.(UpdateEvent)
	if update.MessageID != "m1" || update.Content != nil {
		t.Fatalf("unexpected update: %+v", update)
	}
}

func TestDecodeTombstone(t *testing.T) {
	body := []byte(`{"conversation_id":"conv-1","message_id":"m1","tombstone_text":"Message deleted"}`)

	ev, err := Decode(ActionMessageTombstone, body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	tomb := ev.(TombstoneEvent)
	if tomb.TombstoneText != "Message deleted" {
		t.Fatalf("tombstone text %q", tomb.TombstoneText)
	}
}

func TestDecodeReactionPair(t *testing.T) {
	body := []byte(`{"conversation_id":"conv-1","message_id":"m1","user_id":"u1","emoji":"thumbsup"}`)

	add, err := Decode(ActionReactionAdd, body)
	if err != nil {
		t.Fatalf("decode add: %v", err)
	}
	if ev := add.(ReactionAddEvent); ev.UserID != "u1" || ev.Emoji != "thumbsup" {
		t.Fatalf("unexpected add: %+v", ev)
	}

	remove, err := Decode(ActionReactionRemove, body)
	if err != nil {
		t.Fatalf("decode remove: %v", err)
	}
	if ev := remove.(ReactionRemoveEvent); ev.UserID != "u1" || ev.Emoji != "thumbsup" {
		t.Fatalf("unexpected remove: %+v", ev)
	}
}

func TestDecodeCallStatus(t *testing.T) {
	body := []byte(`{"call_id":"call-1","status":"connected","call_type":"video","mode":"group","initiator_id":"user-2"}`)

	ev, err := Decode(ActionCallStatus, body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	call := ev.(CallStatusEvent)
	if call.Status != model.CallConnected || call.CallType != model.CallVideo {
		t.Fatalf("unexpected call event: %+v", call)
	}
	if call.Conversation() != "" {
		t.Fatalf("call event claims a conversation: %q", call.Conversation())
	}
}

func TestDecodeUnknownAction(t *testing.T) {
	if _, err := Decode("typing_indicator", []byte(`{}`)); err == nil {
		t.Fatalf("unknown action decoded without error")
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	if _, err := Decode(ActionMessageInsert, []byte(`{not json`)); err == nil {
		t.Fatalf("malformed payload decoded without error")
	}
}
