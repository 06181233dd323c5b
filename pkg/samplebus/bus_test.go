package samplebus

import (
	"testing"
	"time"

	"github.com/cuemby/swanling/pkg/types"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	b := New()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	b.Publish(Message{Sample: types.RequestSample{Name: "/ping"}, Target: types.RecordRawAndAdjusted})

	select {
	case msg := <-sub:
		if msg.Sample.Name != "/ping" {
			t.Errorf("Sample.Name = %q, want /ping", msg.Sample.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published message")
	}
}

func TestPublishFansOutToMultipleSubscribers(t *testing.T) {
	b := New()
	b.Start()
	defer b.Stop()

	sub1 := b.Subscribe()
	sub2 := b.Subscribe()
	defer b.Unsubscribe(sub1)
	defer b.Unsubscribe(sub2)

	b.Publish(Message{Sample: types.RequestSample{Name: "/ping"}})

	for _, sub := range []Subscriber{sub1, sub2} {
		select {
		case <-sub:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for fan-out delivery")
		}
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := New()
	b.Start()
	defer b.Stop()

	sub := b.Subscribe()
	b.Unsubscribe(sub)

	b.Publish(Message{Sample: types.RequestSample{Name: "/ping"}})

	if _, ok := <-sub; ok {
		t.Error("expected subscriber channel to be closed after Unsubscribe")
	}
}

func TestSubscriberCount(t *testing.T) {
	b := New()
	if b.SubscriberCount() != 0 {
		t.Fatalf("SubscriberCount() = %d, want 0", b.SubscriberCount())
	}

	sub := b.Subscribe()
	if b.SubscriberCount() != 1 {
		t.Errorf("SubscriberCount() = %d, want 1", b.SubscriberCount())
	}

	b.Unsubscribe(sub)
	if b.SubscriberCount() != 0 {
		t.Errorf("SubscriberCount() = %d, want 0 after unsubscribe", b.SubscriberCount())
	}
}

func TestPublishBeforeStartDoesNotPanic(t *testing.T) {
	b := New()
	b.Publish(Message{Sample: types.RequestSample{Name: "/ping"}})
}
