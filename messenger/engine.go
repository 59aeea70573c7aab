package messenger

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"teamchat-client/cache"
	"teamchat-client/model"
	"teamchat-client/realtime"

	"github.com/google/uuid"
)

// ErrClosed is returned when an operation reaches an engine whose
// conversation view already unmounted.
var ErrClosed = errors.New("messenger: engine closed")

// Gateway is the slice of the persistence gateway the engine consumes.
type Gateway interface {
	GetMessages(ctx context.Context, conversationID string) ([]model.Message, error)
	SendMessage(ctx context.Context, draft model.MessageDraft) (*model.Message, error)
	MarkMessageAsRead(ctx context.Context, messageID, userID string) error
	GetProfile(ctx context.Context, userID string) (*model.User, error)
	GetAttachments(ctx context.Context, messageID string) ([]model.Attachment, error)
}

// Notifier receives the engine's user-facing output: store snapshots for
// rendering, notifications for unfocused arrivals, send failures and unread
// counter changes.
type Notifier interface {
	ConversationUpdated(conversationID string, msgs []model.Message)
	MessageArrived(conversationID string, msg model.Message)
	SendFailed(conversationID, temporaryID string, err error)
	UnreadChanged(conversationID string, count int64)
}

// NopNotifier discards all output.
type NopNotifier struct{}

func (NopNotifier) ConversationUpdated(string, []model.Message) {}
func (NopNotifier) MessageArrived(string, model.Message)        {}
func (NopNotifier) SendFailed(string, string, error)            {}
func (NopNotifier) UnreadChanged(string, int64)                 {}

// Config wires one engine to its collaborators.
type Config struct {
	ConversationID string
	UserID         string
	Gateway        Gateway
	Stream         realtime.Stream
	Cache          cache.Service
	Notifier       Notifier
}

// Engine owns one open conversation: the local message store, the
// optimistic mutator and the reconciler for pushed events. All store access
// is serialized by the engine's mutex; every continuation that resumes
// after a suspension point re-checks the generation counter and the closed
// flag before touching the store. Notifier callbacks always run outside
// the mutex, so an implementation may call back into the engine.
type Engine struct {
	conversationID string
	userID         string
	gw             Gateway
	stream         realtime.Stream
	cache          cache.Service
	notifier       Notifier

	mu      sync.Mutex
	store   *ConversationStore
	sub     realtime.Subscription
	gen     uint64
	closed  bool
	focused bool
	// pending maps a correlation id to its provisional record's temporary
	// id while the durable write is in flight.
	pending map[string]string
}

// Open builds an engine, pre-populates it from the persisted cache,
// subscribes to the realtime stream and refreshes from the gateway. A
// failed refresh still returns a usable engine along with the error so the
// caller can surface it; the cached snapshot keeps rendering.
func Open(ctx context.Context, cfg Config) (*Engine, error) {
	e := &Engine{
		conversationID: cfg.ConversationID,
		userID:         cfg.UserID,
		gw:             cfg.Gateway,
		stream:         cfg.Stream,
		cache:          cfg.Cache,
		notifier:       cfg.Notifier,
		store:          NewConversationStore(),
		pending:        make(map[string]string),
	}
	if e.notifier == nil {
		e.notifier = NopNotifier{}
	}

	e.warmStart(ctx)

	sub, err := e.stream.Subscribe(e.conversationID, e.HandleEvent)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.sub = sub
	e.mu.Unlock()
	go e.watchDrop(sub)

	return e, e.Reload(ctx)
}

// Messages returns the current rendering-ready sequence.
func (e *Engine) Messages() []model.Message {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Messages()
}

// Send makes the user's write appear instantly: the provisional record is
// appended and published before the durable write runs. On success the
// record is confirmed in place, keeping client-held fields the server
// response omits; on failure it is removed entirely and the failure
// surfaced as a dismissible notice. There is no retry queue; an abandoned
// write must be re-issued by the user.
func (e *Engine) Send(ctx context.Context, draft model.MessageDraft) (model.Message, error) {
	draft.ConversationID = e.conversationID
	draft.SenderID = e.userID
	draft.CorrelationID = uuid.NewString()
	if draft.Type == "" {
		draft.Type = model.MessageTypeText
	}

	provisional := model.Message{
		TemporaryID:      "tmp-" + uuid.NewString(),
		CorrelationID:    draft.CorrelationID,
		ConversationID:   e.conversationID,
		SenderID:         e.userID,
		SenderName:       "You",
		Content:          draft.Content,
		Type:             draft.Type,
		CreatedAt:        time.Now().UTC(),
		ParentMessageID:  draft.ParentMessageID,
		ReplyToMessageID: draft.ReplyToMessageID,
		Pending:          true,
	}
	for _, att := range draft.Attachments {
		if att.URL == "" {
			att.IsUploading = true
		}
		provisional.Attachments = append(provisional.Attachments, att)
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return model.Message{}, ErrClosed
	}
	gen := e.gen
	e.store.Append(provisional)
	e.pending[draft.CorrelationID] = provisional.TemporaryID
	e.persistLocked()
	snapshot := e.store.Messages()
	e.mu.Unlock()
	e.notifier.ConversationUpdated(e.conversationID, snapshot)

	canonical, err := e.gw.SendMessage(ctx, draft)

	e.mu.Lock()
	if e.closed || e.gen != gen {
		// The store this write would mutate is gone or was fully reloaded;
		// the resolution becomes a no-op.
		e.mu.Unlock()
		if err != nil {
			return model.Message{}, err
		}
		return *canonical, nil
	}
	delete(e.pending, draft.CorrelationID)

	if err != nil {
		e.store.Rollback(provisional.TemporaryID)
		e.persistLocked()
		snapshot = e.store.Messages()
		e.mu.Unlock()
		e.notifier.ConversationUpdated(e.conversationID, snapshot)
		e.notifier.SendFailed(e.conversationID, provisional.TemporaryID, err)
		return model.Message{}, err
	}

	confirmed := *canonical
	confirmed.SenderName = "You"
	e.store.Confirm(provisional.TemporaryID, confirmed)
	final, _ := e.store.Get(confirmed.ID)
	e.persistLocked()
	snapshot = e.store.Messages()
	e.mu.Unlock()
	e.notifier.ConversationUpdated(e.conversationID, snapshot)

	// Best-effort read receipt for the just-sent message.
	if err := e.gw.MarkMessageAsRead(ctx, confirmed.ID, e.userID); err != nil {
		log.Printf("mark as read failed for %s: %v", confirmed.ID, err)
	}
	return final, nil
}

// HandleEvent reconciles one pushed event into the store. Events for other
// conversations are ignored even if delivered; events referencing unknown
// ids are dropped silently.
func (e *Engine) HandleEvent(ev realtime.Event) {
	if ev.Conversation() != e.conversationID {
		return
	}

	switch ev := ev.(type) {
	case realtime.InsertEvent:
		e.handleInsert(ev)
	case realtime.UpdateEvent:
		e.apply(func(s *ConversationStore) bool {
			return s.Merge(ev.MessageID, Patch{Content: ev.Content})
		})
	case realtime.DeleteEvent:
		e.apply(func(s *ConversationStore) bool {
			return s.Remove(ev.MessageID)
		})
	case realtime.TombstoneEvent:
		e.apply(func(s *ConversationStore) bool {
			return s.Tombstone(ev.MessageID, ev.TombstoneText)
		})
	case realtime.ReactionAddEvent:
		e.apply(func(s *ConversationStore) bool {
			return s.AddReaction(model.Reaction{MessageID: ev.MessageID, UserID: ev.UserID, Emoji: ev.Emoji})
		})
	case realtime.ReactionRemoveEvent:
		e.apply(func(s *ConversationStore) bool {
			return s.RemoveReaction(ev.MessageID, ev.UserID, ev.Emoji)
		})
	case realtime.AttachmentAddedEvent:
		e.apply(func(s *ConversationStore) bool {
			return s.AppendAttachment(ev.MessageID, ev.Attachment)
		})
	}
}

func (e *Engine) apply(mutate func(*ConversationStore) bool) {
	e.mu.Lock()
	if e.closed || !mutate(e.store) {
		e.mu.Unlock()
		return
	}
	e.persistLocked()
	snapshot := e.store.Messages()
	e.mu.Unlock()
	e.notifier.ConversationUpdated(e.conversationID, snapshot)
}

func (e *Engine) handleInsert(ev realtime.InsertEvent) {
	msg := ev.Message
	msg.ConversationID = e.conversationID

	e.mu.Lock()
	if e.closed || e.suppressLocked(msg) {
		e.mu.Unlock()
		return
	}
	gen := e.gen
	e.mu.Unlock()

	// The payload may omit sender name and attachments; resolve them from
	// the gateway. Both calls are suspension points, so the insert below
	// re-checks the store's generation.
	ctx := context.Background()
	if msg.SenderName == "" {
		if user, err := e.gw.GetProfile(ctx, msg.SenderID); err == nil {
			msg.SenderName = user.DisplayName
		}
	}
	if msg.Attachments == nil && msg.ID != "" {
		if atts, err := e.gw.GetAttachments(ctx, msg.ID); err == nil && len(atts) > 0 {
			msg.Attachments = atts
		}
	}

	e.mu.Lock()
	if e.closed || e.gen != gen || e.suppressLocked(msg) {
		e.mu.Unlock()
		return
	}
	if !e.store.InsertSorted(msg) {
		e.mu.Unlock()
		return
	}
	e.persistLocked()
	snapshot := e.store.Messages()
	focused := e.focused
	e.mu.Unlock()

	e.notifier.ConversationUpdated(e.conversationID, snapshot)
	if !focused {
		if count, err := e.cache.IncrUnread(ctx, e.conversationID); err == nil {
			e.notifier.UnreadChanged(e.conversationID, count)
		}
		e.notifier.MessageArrived(e.conversationID, msg)
	}
}

// suppressLocked decides whether an insert is the echo of this user's own
// optimistic record. The correlation id echoed by the gateway is matched
// explicitly; suppression by sender identity remains only for events that
// carry no token.
func (e *Engine) suppressLocked(msg model.Message) bool {
	if msg.ID != "" {
		if _, ok := e.store.Get(msg.ID); ok {
			return true
		}
	}
	if msg.CorrelationID != "" {
		_, pending := e.pending[msg.CorrelationID]
		return pending
	}
	return msg.SenderID == e.userID
}

// Reload replaces the store's contents from the gateway. Used on open and
// after a dropped subscription: missed events may have corrupted local
// state, and there is no fine-grained catch-up.
func (e *Engine) Reload(ctx context.Context) error {
	msgs, err := e.gw.GetMessages(ctx, e.conversationID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.gen++
	e.pending = make(map[string]string)
	e.store.ReplaceAll(msgs)
	e.persistLocked()
	snapshot := e.store.Messages()
	e.mu.Unlock()
	e.notifier.ConversationUpdated(e.conversationID, snapshot)
	return nil
}

// Focus tracks whether the conversation view is on screen. Regaining focus
// clears the unread counter.
func (e *Engine) Focus(focused bool) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.focused = focused
	e.mu.Unlock()

	if focused {
		if err := e.cache.ResetUnread(context.Background(), e.conversationID); err == nil {
			e.notifier.UnreadChanged(e.conversationID, 0)
		}
	}
}

// Close tears the subscription down and invalidates every in-flight
// continuation. Server state is untouched.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.gen++
	sub := e.sub
	e.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

func (e *Engine) warmStart(ctx context.Context) {
	msgs, err := e.cache.GetMessages(ctx, e.conversationID)
	if err != nil {
		return
	}
	e.mu.Lock()
	e.store.ReplaceAll(msgs)
	snapshot := e.store.Messages()
	e.mu.Unlock()
	// Pre-population only: published for instant rendering, not persisted
	// back, and always followed by a gateway refresh.
	e.notifier.ConversationUpdated(e.conversationID, snapshot)
}

func (e *Engine) watchDrop(sub realtime.Subscription) {
	<-sub.Dropped()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	newSub, err := e.stream.Subscribe(e.conversationID, e.HandleEvent)
	if err != nil {
		log.Printf("resubscribe failed for %s: %v", e.conversationID, err)
		return
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		newSub.Unsubscribe()
		return
	}
	e.sub = newSub
	e.mu.Unlock()
	go e.watchDrop(newSub)

	if err := e.Reload(context.Background()); err != nil {
		log.Printf("reload after resubscribe failed for %s: %v", e.conversationID, err)
	}
}

func (e *Engine) persistLocked() {
	if err := e.cache.PutMessages(context.Background(), e.conversationID, e.store.Messages()); err != nil {
		log.Printf("cache write failed for %s: %v", e.conversationID, err)
	}
}
