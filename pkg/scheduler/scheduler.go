package scheduler

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/cuemby/swanling/pkg/backfill"
	"github.com/cuemby/swanling/pkg/cadence"
	"github.com/cuemby/swanling/pkg/detector"
	"github.com/cuemby/swanling/pkg/issuer"
	"github.com/cuemby/swanling/pkg/log"
	"github.com/cuemby/swanling/pkg/metrics"
	"github.com/cuemby/swanling/pkg/samplebus"
	"github.com/cuemby/swanling/pkg/scenario"
	"github.com/cuemby/swanling/pkg/types"
	"github.com/rs/zerolog"
)

// Config describes one run's worth of virtual users.
type Config struct {
	Registry      *scenario.Registry
	Issuer        issuer.Issuer
	Bus           *samplebus.Bus
	CadencePolicy types.CadencePolicy

	// Users is the total number of virtual users to run.
	Users int
	// HatchRate is how many users to start per second during ramp-up. A
	// value <= 0 starts every user immediately.
	HatchRate float64
	// RunTime bounds the run; zero means run until Stop is called.
	RunTime time.Duration
}

// Scheduler owns the ramp-up/ramp-down of every virtual user goroutine
// for one run.
type Scheduler struct {
	cfg        Config
	logger     zerolog.Logger
	attackedAt time.Time

	mu      sync.Mutex
	cancels map[int]context.CancelFunc
	wg      sync.WaitGroup

	stopOnce sync.Once
	doneCh   chan struct{}
}

// New creates a Scheduler for cfg. Call Start to begin ramping up users.
func New(cfg Config) *Scheduler {
	return &Scheduler{
		cfg:     cfg,
		logger:  log.WithComponent("scheduler"),
		cancels: make(map[int]context.CancelFunc),
		doneCh:  make(chan struct{}),
	}
}

// Start begins ramp-up in its own goroutine and returns immediately.
func (s *Scheduler) Start() {
	s.attackedAt = time.Now()
	go s.run()
}

// Stop cancels every running user's context and blocks until all user
// goroutines have returned.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.doneCh)
		s.mu.Lock()
		for _, cancel := range s.cancels {
			cancel()
		}
		s.mu.Unlock()
	})
	s.wg.Wait()
}

// run ramps users up at cfg.HatchRate and, if cfg.RunTime is set,
// schedules the stop.
func (s *Scheduler) run() {
	interval := time.Duration(0)
	if s.cfg.HatchRate > 0 {
		interval = time.Duration(float64(time.Second) / s.cfg.HatchRate)
	}

	for i := 0; i < s.cfg.Users; i++ {
		select {
		case <-s.doneCh:
			return
		default:
		}
		s.startUser(i)
		if interval > 0 && i < s.cfg.Users-1 {
			select {
			case <-time.After(interval):
			case <-s.doneCh:
				return
			}
		}
	}

	if s.cfg.RunTime > 0 {
		go func() {
			select {
			case <-time.After(s.cfg.RunTime):
				s.Stop()
			case <-s.doneCh:
			}
		}()
	}
}

// startUser spawns the goroutine for virtual user id and registers its
// cancel function so Stop can reach it.
func (s *Scheduler) startUser(id int) {
	ctx, cancel := context.WithCancel(context.Background())

	s.mu.Lock()
	s.cancels[id] = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	metrics.UsersActive.Inc()
	go func() {
		defer s.wg.Done()
		defer metrics.UsersActive.Dec()
		defer func() {
			s.mu.Lock()
			delete(s.cancels, id)
			s.mu.Unlock()
			cancel()
		}()
		runUser(ctx, id, s.cfg, s.attackedAt)
	}()
}

// runUser drives virtual user id's loop until ctx is cancelled. A loop is
// one full pass through its task sequence's tasks, fixed once at ramp-up;
// per-request back-fill only kicks in during the loop that follows one
// the detector flagged as slow.
func runUser(ctx context.Context, id int, cfg Config, attackedAt time.Time) {
	logger := log.WithUser(id)
	tracker := cadence.New(cfg.CadencePolicy)
	rng := rand.New(rand.NewSource(time.Now().UnixNano() ^ int64(id)))

	seq, ok := cfg.Registry.SelectSequence(rng)
	if !ok {
		logger.Error().Msg("no task sequences registered, stopping user")
		return
	}

	previousLoopSlow := false

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		tracker.StartLoop()
		if stopped := runLoop(ctx, id, seq, cfg, tracker, attackedAt, previousLoopSlow); stopped {
			return
		}

		loopDurationMs, err := tracker.EndLoop()
		if err != nil {
			logger.Error().Err(err).Msg("cadence tracker misuse")
			return
		}

		cadenceMs, cadenceOK := tracker.Cadence()
		previousLoopSlow = detector.Check(loopDurationMs, cadenceMs, cadenceOK)
		if previousLoopSlow {
			metrics.SlowLoopsTotal.WithLabelValues(strconv.Itoa(id)).Inc()
			logger.Warn().
				Int64("loop_duration_ms", loopDurationMs).
				Int64("cadence_ms", cadenceMs).
				Msg("loop took abnormally long")
		}
	}
}

// runLoop issues every task in seq once, in order, recording one sample per
// task. Per-request back-fill (the INFO log and synthetic generation) only
// runs when loopWasSlow says the previous loop was flagged slow. It reports
// true if ctx was cancelled before the sequence finished.
func runLoop(ctx context.Context, id int, seq types.TaskSequence, cfg Config, tracker *cadence.Tracker, attackedAt time.Time, loopWasSlow bool) bool {
	for _, task := range seq.Tasks {
		select {
		case <-ctx.Done():
			return true
		default:
		}

		dispatchMs := time.Since(attackedAt).Milliseconds()
		outcome := cfg.Issuer.Issue(ctx, issuer.Spec{Name: task.Name, Path: "/" + task.Name})
		responseTimeMs := outcome.ResponseTime.Milliseconds()
		cadenceMs, cadenceOK := tracker.Cadence()

		sample := types.RequestSample{
			Elapsed:      dispatchMs,
			ResponseTime: responseTimeMs,
			Method:       outcome.Method,
			Name:         task.Name,
			URL:          outcome.URL,
			FinalURL:     outcome.FinalURL,
			Redirected:   outcome.Redirected,
			StatusCode:   outcome.StatusCode,
			Success:      outcome.Success,
			Update:       outcome.Update,
			Error:        outcome.Error,
			User:         id,
			UserCadence:  cadenceMs,
		}

		if !loopWasSlow {
			cfg.Bus.Publish(samplebus.Message{Sample: sample, Target: types.RecordRawAndAdjusted})
			continue
		}

		if detector.CheckRequest(responseTimeMs, cadenceMs, cadenceOK) {
			log.SlowRequest(attackedAt, outcome.Method, outcome.URL, outcome.StatusCode, responseTimeMs, task.Name)
		}
		publish(cfg.Bus, sample, cadenceMs, cadenceOK)
	}
	return false
}

// publish folds sample into its raw+adjusted back-fill sequence (when
// cadence is tracked) and hands every resulting sample to the bus.
func publish(bus *samplebus.Bus, sample types.RequestSample, cadenceMs int64, cadenceOK bool) {
	if !cadenceOK || cadenceMs <= 0 {
		bus.Publish(samplebus.Message{Sample: sample, Target: types.RecordRawAndAdjusted})
		return
	}

	raw, synthetics := backfill.Generate(sample, cadenceMs)
	bus.Publish(samplebus.Message{Sample: raw, Target: types.RecordRawAndAdjusted})
	if len(synthetics) > 0 {
		metrics.SyntheticSamplesTotal.WithLabelValues(sample.Name).Add(float64(len(synthetics)))
	}
	for _, syn := range synthetics {
		bus.Publish(samplebus.Message{Sample: syn, Target: types.RecordAdjustedOnly})
	}
}
