package realtime

// Handler consumes one pushed event.
type Handler func(Event)

// Stream is the push channel delivering change events for subscribed
// conversations.
type Stream interface {
	// Subscribe delivers this conversation's events to the handler until the
	// subscription is torn down.
	Subscribe(conversationID string, h Handler) (Subscription, error)
}

// Subscription is one live conversation subscription.
type Subscription interface {
	// Unsubscribe stops delivery into the owning store.
	Unsubscribe() error
	// Dropped is closed when the underlying channel is lost. The owner must
	// resubscribe and fully reload; there is no fine-grained replay.
	Dropped() <-chan struct{}
}
