package scheduler

import (
	"testing"
	"time"

	"github.com/cuemby/swanling/pkg/samplebus"
	"github.com/cuemby/swanling/pkg/types"
)

func drain(sub samplebus.Subscriber, n int, timeout time.Duration) []samplebus.Message {
	var got []samplebus.Message
	deadline := time.After(timeout)
	for len(got) < n {
		select {
		case msg := <-sub:
			got = append(got, msg)
		case <-deadline:
			return got
		}
	}
	return got
}

func TestPublishWithoutCadenceRecordsRawAndAdjusted(t *testing.T) {
	bus := samplebus.New()
	bus.Start()
	defer bus.Stop()
	sub := bus.Subscribe()

	publish(bus, types.RequestSample{Name: "home", ResponseTime: 500}, 0, false)

	got := drain(sub, 1, 200*time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("got %d messages, want 1", len(got))
	}
	if got[0].Target != types.RecordRawAndAdjusted {
		t.Errorf("Target = %v, want RecordRawAndAdjusted", got[0].Target)
	}
}

func TestPublishWithSlowRequestEmitsSynthetics(t *testing.T) {
	bus := samplebus.New()
	bus.Start()
	defer bus.Stop()
	sub := bus.Subscribe()

	publish(bus, types.RequestSample{Name: "home", ResponseTime: 2100}, 500, true)

	got := drain(sub, 4, 200*time.Millisecond)
	if len(got) != 4 {
		t.Fatalf("got %d messages, want 4 (1 raw + 3 synthetic)", len(got))
	}
	if got[0].Target != types.RecordRawAndAdjusted {
		t.Error("first message should be the raw+adjusted sample")
	}
	for _, msg := range got[1:] {
		if msg.Target != types.RecordAdjustedOnly {
			t.Error("synthetic messages should be adjusted-only")
		}
	}
}

func TestPublishFastRequestWithCadenceEmitsNoSynthetics(t *testing.T) {
	bus := samplebus.New()
	bus.Start()
	defer bus.Stop()
	sub := bus.Subscribe()

	publish(bus, types.RequestSample{Name: "home", ResponseTime: 200}, 500, true)

	got := drain(sub, 1, 100*time.Millisecond)
	if len(got) != 1 {
		t.Fatalf("got %d messages, want exactly 1", len(got))
	}
}
