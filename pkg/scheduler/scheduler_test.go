package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cuemby/swanling/pkg/issuer"
	"github.com/cuemby/swanling/pkg/metrics"
	"github.com/cuemby/swanling/pkg/samplebus"
	"github.com/cuemby/swanling/pkg/scenario"
	"github.com/cuemby/swanling/pkg/types"
)

func newTestRegistry() *scenario.Registry {
	r := scenario.NewRegistry()
	r.Register(types.TaskSequence{
		Name: "browser",
		Tasks: []types.Task{
			{Name: "home", Weight: 1},
		},
	}, 1)
	return r
}

func TestSchedulerRunsUsersAndPublishesSamples(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bus := samplebus.New()
	bus.Start()
	defer bus.Stop()

	agg := metrics.NewAggregatorState()
	sub := bus.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub {
			agg.Record(msg.Sample, msg.Target)
		}
	}()

	sched := New(Config{
		Registry:      newTestRegistry(),
		Issuer:        issuer.New(srv.URL),
		Bus:           bus,
		CadencePolicy: types.CadenceDisabled,
		Users:         3,
	})
	sched.Start()
	time.Sleep(50 * time.Millisecond)
	sched.Stop()
	bus.Unsubscribe(sub)
	<-done

	found := false
	for _, s := range agg.Snapshot() {
		if s.Name == "home" && s.Requests > 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one recorded request for task \"home\"")
	}
}

func TestSchedulerStopIsIdempotentAndWaitsForUsers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bus := samplebus.New()
	bus.Start()
	defer bus.Stop()

	sched := New(Config{
		Registry:      newTestRegistry(),
		Issuer:        issuer.New(srv.URL),
		Bus:           bus,
		CadencePolicy: types.CadenceDisabled,
		Users:         2,
	})
	sched.Start()
	time.Sleep(10 * time.Millisecond)
	sched.Stop()
	sched.Stop() // must not panic or double-close
}

func TestSchedulerRunTimeStopsAutomatically(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bus := samplebus.New()
	bus.Start()
	defer bus.Stop()

	sched := New(Config{
		Registry:      newTestRegistry(),
		Issuer:        issuer.New(srv.URL),
		Bus:           bus,
		CadencePolicy: types.CadenceDisabled,
		Users:         1,
		RunTime:       20 * time.Millisecond,
	})
	sched.Start()

	select {
	case <-waitForStop(sched):
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop within its configured run-time")
	}
}

// waitForStop returns a channel closed once every user goroutine has
// exited, by piggybacking on Stop's WaitGroup semantics.
func waitForStop(s *Scheduler) <-chan struct{} {
	ch := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(ch)
	}()
	return ch
}

func TestRunUserStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	bus := samplebus.New()
	bus.Start()
	defer bus.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	cfg := Config{
		Registry:      newTestRegistry(),
		Issuer:        issuer.New(srv.URL),
		Bus:           bus,
		CadencePolicy: types.CadenceDisabled,
	}

	doneCh := make(chan struct{})
	go func() {
		runUser(ctx, 0, cfg, time.Now())
		close(doneCh)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-doneCh:
	case <-time.After(time.Second):
		t.Fatal("runUser did not exit after context cancellation")
	}
}
