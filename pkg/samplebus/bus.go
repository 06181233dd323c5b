package samplebus

import (
	"sync"

	"github.com/cuemby/swanling/pkg/types"
)

// Message pairs a sample with how it should be recorded, so a single bus
// can carry both real and back-filled synthetic samples to every consumer
// without each consumer re-deriving the distinction.
type Message struct {
	Sample types.RequestSample
	Target types.RecordTarget
}

// Subscriber is a channel that receives samples.
type Subscriber chan Message

// Bus distributes samples from many virtual user goroutines to many
// consumers. There is one Bus per run, shared by every user.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[Subscriber]bool
	sampleCh    chan Message
	stopCh      chan struct{}
}

// New creates a bus with its internal buffer sized for burst tolerance.
func New() *Bus {
	return &Bus{
		subscribers: make(map[Subscriber]bool),
		sampleCh:    make(chan Message, 1000),
		stopCh:      make(chan struct{}),
	}
}

// Start begins the distribution loop in its own goroutine.
func (b *Bus) Start() {
	go b.run()
}

// Stop ends the distribution loop. Subscriber channels are left open;
// callers that own a subscription should Unsubscribe explicitly.
func (b *Bus) Stop() {
	close(b.stopCh)
}

// Subscribe registers a new consumer and returns its channel.
func (b *Bus) Subscribe() Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(Subscriber, 200)
	b.subscribers[sub] = true
	return sub
}

// Unsubscribe removes and closes a consumer's channel.
func (b *Bus) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.subscribers, sub)
	close(sub)
}

// Publish hands a sample to the bus. It never blocks the caller on a slow
// consumer: if the bus's own internal buffer is full, the sample is
// dropped rather than stalling the user goroutine that dispatched it.
func (b *Bus) Publish(msg Message) {
	select {
	case b.sampleCh <- msg:
	case <-b.stopCh:
	default:
	}
}

func (b *Bus) run() {
	for {
		select {
		case msg := <-b.sampleCh:
			b.broadcast(msg)
		case <-b.stopCh:
			return
		}
	}
}

func (b *Bus) broadcast(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subscribers {
		select {
		case sub <- msg:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
