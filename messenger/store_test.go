package messenger

import (
	"testing"
	"time"

	"teamchat-client/model"
)

func text(s string) *string { return &s }

func msgAt(id string, ts time.Time) model.Message {
	return model.Message{
		ID:             id,
		ConversationID: "conv-1",
		SenderID:       "user-2",
		Content:        text("m-" + id),
		Type:           model.MessageTypeText,
		CreatedAt:      ts,
	}
}

func TestInsertSortedOrdersByCreatedAt(t *testing.T) {
	s := NewConversationStore()
	base := time.Now()

	// Processed out of order: T3, T1, T2.
	if !s.InsertSorted(msgAt("t3", base.Add(3*time.Second))) {
		t.Fatalf("insert t3 failed")
	}
	if !s.InsertSorted(msgAt("t1", base.Add(1*time.Second))) {
		t.Fatalf("insert t1 failed")
	}
	if !s.InsertSorted(msgAt("t2", base.Add(2*time.Second))) {
		t.Fatalf("insert t2 failed")
	}

	got := s.Messages()
	want := []string{"t1", "t2", "t3"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestInsertSortedKeepsInsertionOrderOnTies(t *testing.T) {
	s := NewConversationStore()
	ts := time.Now()

	s.InsertSorted(msgAt("a", ts))
	s.InsertSorted(msgAt("b", ts))
	s.InsertSorted(msgAt("c", ts))

	got := s.Messages()
	for i, id := range []string{"a", "b", "c"} {
		if got[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestInsertRejectsDuplicateID(t *testing.T) {
	s := NewConversationStore()
	ts := time.Now()

	if !s.InsertSorted(msgAt("m1", ts)) {
		t.Fatalf("first insert failed")
	}
	if s.InsertSorted(msgAt("m1", ts)) {
		t.Fatalf("duplicate insert accepted")
	}
	if s.Len() != 1 {
		t.Fatalf("store has %d entries, want 1", s.Len())
	}
}

func TestConfirmReplacesInPlaceAndUnindexesTemporaryID(t *testing.T) {
	s := NewConversationStore()
	base := time.Now()

	s.Append(msgAt("m1", base))
	provisional := model.Message{
		TemporaryID:    "tmp-1",
		ConversationID: "conv-1",
		SenderID:       "me",
		SenderName:     "You",
		Content:        text("Hello"),
		Type:           model.MessageTypeText,
		CreatedAt:      base.Add(time.Second),
		Attachments:    []model.Attachment{{Filename: "pic.png", IsUploading: true}},
		Pending:        true,
	}
	s.Append(provisional)

	canonical := model.Message{
		ID:             "abc123",
		ConversationID: "conv-1",
		SenderID:       "me",
		Content:        text("Hello"),
		Type:           model.MessageTypeText,
		CreatedAt:      base.Add(2 * time.Second),
	}
	if !s.Confirm("tmp-1", canonical) {
		t.Fatalf("confirm failed")
	}

	got := s.Messages()
	if got[1].ID != "abc123" {
		t.Fatalf("confirmed record not at same ordinal position: got %q", got[1].ID)
	}
	if got[1].Pending || got[1].TemporaryID != "" {
		t.Fatalf("confirmed record still provisional: %+v", got[1])
	}
	if len(got[1].Attachments) != 1 || got[1].Attachments[0].Filename != "pic.png" {
		t.Fatalf("client-held attachments lost on confirm")
	}
	if _, ok := s.Get("tmp-1"); ok {
		t.Fatalf("temporary id still resolves after confirm")
	}
	if _, ok := s.Get("abc123"); !ok {
		t.Fatalf("canonical id does not resolve after confirm")
	}
}

func TestRollbackRestoresPriorState(t *testing.T) {
	s := NewConversationStore()
	s.Append(msgAt("m1", time.Now()))
	before := s.Messages()

	provisional := model.Message{TemporaryID: "tmp-9", CreatedAt: time.Now(), Pending: true}
	s.Append(provisional)
	if !s.Rollback("tmp-9") {
		t.Fatalf("rollback failed")
	}

	after := s.Messages()
	if len(after) != len(before) {
		t.Fatalf("rollback left %d entries, want %d", len(after), len(before))
	}
	if after[0].ID != before[0].ID {
		t.Fatalf("rollback disturbed surviving entries")
	}
	if _, ok := s.Get("tmp-9"); ok {
		t.Fatalf("rolled-back id still resolves")
	}
}

func TestPointOpsOnUnknownIDAreNoOps(t *testing.T) {
	s := NewConversationStore()
	s.Append(msgAt("m1", time.Now()))
	before := s.Messages()

	if s.Merge("nope", Patch{Content: text("x")}) {
		t.Fatalf("merge on unknown id reported a change")
	}
	if s.Remove("nope") {
		t.Fatalf("remove on unknown id reported a change")
	}
	if s.Tombstone("nope", "deleted") {
		t.Fatalf("tombstone on unknown id reported a change")
	}
	if s.AddReaction(model.Reaction{MessageID: "nope", UserID: "u", Emoji: "x"}) {
		t.Fatalf("reaction add on unknown id reported a change")
	}
	if s.RemoveReaction("nope", "u", "x") {
		t.Fatalf("reaction remove on unknown id reported a change")
	}
	if s.AppendAttachment("nope", model.Attachment{ID: "a1"}) {
		t.Fatalf("attachment append on unknown id reported a change")
	}

	after := s.Messages()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Fatalf("store changed by unknown-id operations")
	}
}

func TestReactionSetSemantics(t *testing.T) {
	s := NewConversationStore()
	s.Append(msgAt("m1", time.Now()))

	r := model.Reaction{MessageID: "m1", UserID: "u1", Emoji: "thumbsup"}
	if !s.AddReaction(r) {
		t.Fatalf("first add failed")
	}
	if s.AddReaction(r) {
		t.Fatalf("second add of same tuple reported a change")
	}
	got, _ := s.Get("m1")
	if len(got.Reactions) != 1 {
		t.Fatalf("reaction set has %d entries, want 1", len(got.Reactions))
	}

	if s.RemoveReaction("m1", "u1", "other") {
		t.Fatalf("remove of absent tuple reported a change")
	}
	if !s.RemoveReaction("m1", "u1", "thumbsup") {
		t.Fatalf("remove of present tuple failed")
	}
	got, _ = s.Get("m1")
	if len(got.Reactions) != 0 {
		t.Fatalf("reaction set not empty after remove")
	}
}

func TestTombstoneKeepsContentInMemory(t *testing.T) {
	s := NewConversationStore()
	m := msgAt("m1", time.Now())
	m.Content = text("secret")
	s.Append(m)

	if !s.Tombstone("m1", "Message deleted") {
		t.Fatalf("tombstone failed")
	}

	got, _ := s.Get("m1")
	if !got.IsDeleted {
		t.Fatalf("is_deleted not set")
	}
	if got.TombstoneText == nil || *got.TombstoneText != "Message deleted" {
		t.Fatalf("tombstone text wrong: %v", got.TombstoneText)
	}
	if got.Content == nil || *got.Content != "secret" {
		t.Fatalf("content was physically removed")
	}
}

func TestRemoveExcisesAndReindexes(t *testing.T) {
	s := NewConversationStore()
	base := time.Now()
	s.Append(msgAt("a", base))
	s.Append(msgAt("b", base.Add(time.Second)))
	s.Append(msgAt("c", base.Add(2*time.Second)))

	if !s.Remove("b") {
		t.Fatalf("remove failed")
	}
	if s.Len() != 2 {
		t.Fatalf("store has %d entries, want 2", s.Len())
	}
	got, ok := s.Get("c")
	if !ok || got.ID != "c" {
		t.Fatalf("index stale after remove")
	}
}
