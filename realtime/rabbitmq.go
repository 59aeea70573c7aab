package realtime

import (
	"fmt"
	"log"
	"sync"

	"teamchat-client/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ActionHeader names the event kind on each pushed delivery.
const ActionHeader string = "x-action"

// Broker consumes the user's event queue on the hosted backend's RabbitMQ
// and fans decoded events out to conversation subscriptions.
type Broker struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue

	mu          sync.Mutex
	subs        map[string][]*brokerSub
	callHandler Handler
	closed      bool
}

type brokerSub struct {
	broker         *Broker
	conversationID string
	handler        Handler
	dropped        chan struct{}
	once           sync.Once
}

func (s *brokerSub) Unsubscribe() error {
	s.broker.remove(s)
	return nil
}

func (s *brokerSub) Dropped() <-chan struct{} { return s.dropped }

func (s *brokerSub) drop() {
	s.once.Do(func() { close(s.dropped) })
}

// RabbitMQConnect dials the broker and declares the device's event queue.
// Queue naming is one queue per user: events.<user-id>.
func RabbitMQConnect(userID string) *Broker {
	conn, err := amqp.Dial(fmt.Sprintf(
		"amqp://%s:%s@%s:%s/",
		config.Config("RABBITMQ_USER"),
		config.Config("RABBITMQ_PASSWORD"),
		config.Config("RABBITMQ_HOST"),
		config.Config("RABBITMQ_PORT"),
	))
	if err != nil {
		panic("failed to connect to RabbitMQ")
	}
	log.Printf("connection opened to RabbitMQ server")

	channel, err := conn.Channel()
	if err != nil {
		panic("failed to open a RabbitMQ channel")
	}

	name := fmt.Sprintf("events.%s", userID)
	queue, err := channel.QueueDeclare(
		name,  // name
		false, // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		panic("failed to declare a RabbitMQ queue")
	}
	log.Printf("success declare a RabbitMQ queue: %s", name)

	return &Broker{
		conn:    conn,
		channel: channel,
		queue:   queue,
		subs:    make(map[string][]*brokerSub),
	}
}

// Consume starts delivering events. Runs until the channel closes; a close
// drops every live subscription so owners resubscribe and reload.
func (b *Broker) Consume() {
	msgs, err := b.channel.Consume(
		b.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		panic("failed to register a consumer")
	}
	log.Printf("success subscribe to RabbitMQ [%s] queue", b.queue.Name)

	go func() {
		for msg := range msgs {
			action, _ := msg.Headers[ActionHeader].(string)

			ev, err := Decode(action, msg.Body)
			msg.Ack(false)
			if err != nil {
				// Malformed or unknown pushes are eventual-consistency
				// noise, not failures.
				log.Printf("dropping event [%s]: %v", action, err)
				continue
			}

			b.dispatch(ev)
		}
		b.dropAll()
	}()
}

// Subscribe registers a conversation handler. Events for other
// conversations never reach it.
func (b *Broker) Subscribe(conversationID string, h Handler) (Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, fmt.Errorf("realtime: broker closed")
	}

	sub := &brokerSub{
		broker:         b,
		conversationID: conversationID,
		handler:        h,
		dropped:        make(chan struct{}),
	}
	b.subs[conversationID] = append(b.subs[conversationID], sub)
	return sub, nil
}

// SubscribeCalls registers the handler receiving call status events.
func (b *Broker) SubscribeCalls(h Handler) {
	b.mu.Lock()
	b.callHandler = h
	b.mu.Unlock()
}

func (b *Broker) dispatch(ev Event) {
	b.mu.Lock()
	var targets []Handler
	if ev.Action() == ActionCallStatus {
		if b.callHandler != nil {
			targets = append(targets, b.callHandler)
		}
	} else {
		for _, sub := range b.subs[ev.Conversation()] {
			targets = append(targets, sub.handler)
		}
	}
	b.mu.Unlock()

	for _, h := range targets {
		h(ev)
	}
}

func (b *Broker) remove(sub *brokerSub) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.subs[sub.conversationID]
	for i, s := range list {
		if s == sub {
			b.subs[sub.conversationID] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(b.subs[sub.conversationID]) == 0 {
		delete(b.subs, sub.conversationID)
	}
}

func (b *Broker) dropAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, list := range b.subs {
		for _, sub := range list {
			sub.drop()
		}
	}
}

// Close tears down the AMQP channel and connection.
func (b *Broker) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.channel.Close()
	b.conn.Close()
}
