package messenger

import (
	"teamchat-client/model"
)

// ConversationStore holds the in-memory view of one conversation: an
// ordered sequence plus an id index for point lookups. It is owned by a
// single engine, which serializes access; the store itself is not safe for
// concurrent use.
//
// Ordering is by CreatedAt ascending; equal timestamps keep client
// insertion order. Point operations on an unknown id are silent no-ops,
// since an event may reference a message this view never loaded.
type ConversationStore struct {
	entries []model.Message
	index   map[string]int
}

func NewConversationStore() *ConversationStore {
	return &ConversationStore{index: make(map[string]int)}
}

func (s *ConversationStore) Len() int { return len(s.entries) }

// Messages returns a copy of the rendering-ready sequence.
func (s *ConversationStore) Messages() []model.Message {
	out := make([]model.Message, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get resolves a message by canonical id, or by temporary id while the
// record is still provisional.
func (s *ConversationStore) Get(id string) (model.Message, bool) {
	idx, ok := s.index[id]
	if !ok {
		return model.Message{}, false
	}
	return s.entries[idx], true
}

// Append adds a message at the end of the ordering. Duplicate ids are
// rejected.
func (s *ConversationStore) Append(msg model.Message) bool {
	key := msg.Key()
	if key == "" {
		return false
	}
	if _, ok := s.index[key]; ok {
		return false
	}
	s.entries = append(s.entries, msg)
	s.index[key] = len(s.entries) - 1
	return true
}

// InsertSorted places a message by CreatedAt, after any entries with the
// same timestamp, so the rendered order is stable regardless of the order
// events were processed in.
func (s *ConversationStore) InsertSorted(msg model.Message) bool {
	key := msg.Key()
	if key == "" {
		return false
	}
	if _, ok := s.index[key]; ok {
		return false
	}

	pos := len(s.entries)
	for i := range s.entries {
		if s.entries[i].CreatedAt.After(msg.CreatedAt) {
			pos = i
			break
		}
	}

	s.entries = append(s.entries, model.Message{})
	copy(s.entries[pos+1:], s.entries[pos:])
	s.entries[pos] = msg
	s.reindex(pos)
	return true
}

// Confirm replaces a provisional record in place with its canonical form.
// Server fields win except where the client holds better values: empty
// attachment lists and sender names do not overwrite what the optimistic
// record already carries. The temporary id stops resolving.
func (s *ConversationStore) Confirm(temporaryID string, canonical model.Message) bool {
	idx, ok := s.index[temporaryID]
	if !ok {
		return false
	}
	prev := s.entries[idx]

	merged := canonical
	merged.TemporaryID = ""
	merged.Pending = false
	if len(merged.Attachments) == 0 {
		merged.Attachments = prev.Attachments
	}
	if merged.SenderName == "" {
		merged.SenderName = prev.SenderName
	}

	s.entries[idx] = merged
	delete(s.index, temporaryID)
	s.index[merged.ID] = idx
	return true
}

// Rollback removes a provisional record entirely, restoring the state from
// before the optimistic insert.
func (s *ConversationStore) Rollback(temporaryID string) bool {
	return s.Remove(temporaryID)
}

// Remove excises a message from the ordering.
func (s *ConversationStore) Remove(id string) bool {
	idx, ok := s.index[id]
	if !ok {
		return false
	}
	delete(s.index, id)
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
	s.reindex(idx)
	return true
}

// Patch carries the fields an update event may shallow-merge.
type Patch struct {
	Content *string
}

// Merge shallow-merges a patch over an existing message.
func (s *ConversationStore) Merge(id string, patch Patch) bool {
	idx, ok := s.index[id]
	if !ok {
		return false
	}
	if patch.Content != nil {
		s.entries[idx].Content = patch.Content
	}
	return true
}

// Tombstone marks a message deleted in place. The content field survives in
// memory but renderers must show the tombstone text instead.
func (s *ConversationStore) Tombstone(id, text string) bool {
	idx, ok := s.index[id]
	if !ok {
		return false
	}
	s.entries[idx].IsDeleted = true
	s.entries[idx].TombstoneText = &text
	return true
}

// AddReaction adds one (user, emoji) tuple; adding a tuple already present
// changes nothing.
func (s *ConversationStore) AddReaction(r model.Reaction) bool {
	idx, ok := s.index[r.MessageID]
	if !ok {
		return false
	}
	for _, have := range s.entries[idx].Reactions {
		if have.UserID == r.UserID && have.Emoji == r.Emoji {
			return false
		}
	}
	s.entries[idx].Reactions = append(s.entries[idx].Reactions, r)
	return true
}

// RemoveReaction removes by (user, emoji) pair; removing an absent tuple is
// a no-op.
func (s *ConversationStore) RemoveReaction(messageID, userID, emoji string) bool {
	idx, ok := s.index[messageID]
	if !ok {
		return false
	}
	reactions := s.entries[idx].Reactions
	for i, have := range reactions {
		if have.UserID == userID && have.Emoji == emoji {
			s.entries[idx].Reactions = append(reactions[:i], reactions[i+1:]...)
			return true
		}
	}
	return false
}

// AppendAttachment appends a late-arriving attachment to an existing
// message.
func (s *ConversationStore) AppendAttachment(messageID string, att model.Attachment) bool {
	idx, ok := s.index[messageID]
	if !ok {
		return false
	}
	for _, have := range s.entries[idx].Attachments {
		if att.ID != "" && have.ID == att.ID {
			return false
		}
	}
	s.entries[idx].Attachments = append(s.entries[idx].Attachments, att)
	return true
}

// ReplaceAll swaps the full contents, used for warm starts and full
// reloads.
func (s *ConversationStore) ReplaceAll(msgs []model.Message) {
	s.entries = make([]model.Message, len(msgs))
	copy(s.entries, msgs)
	s.index = make(map[string]int, len(msgs))
	s.reindex(0)
}

func (s *ConversationStore) reindex(from int) {
	for i := from; i < len(s.entries); i++ {
		s.index[s.entries[i].Key()] = i
	}
}
