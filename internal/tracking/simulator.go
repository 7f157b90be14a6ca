package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/polkiloo/rype/internal/domain/model"
)

const (
	DefaultTickInterval = time.Minute
	// CompletionGrace is how long a delivered session stays visible.
	CompletionGrace = 5 * time.Second
	// SafetyTimeout clears the session this long after the delivery
	// threshold is reached, whatever the stage.
	SafetyTimeout = 5 * time.Minute
)

// Option customises a Simulator.
type Option func(*Simulator)

// WithTickInterval sets the time between ticks. The schedule has
// whole-second resolution: shorter intervals run every second and fractions
// are dropped.
func WithTickInterval(d time.Duration) Option {
	return func(s *Simulator) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithCompletionGrace overrides CompletionGrace.
func WithCompletionGrace(d time.Duration) Option {
	return func(s *Simulator) { s.grace = d }
}

// WithSafetyTimeout overrides SafetyTimeout.
func WithSafetyTimeout(d time.Duration) Option {
	return func(s *Simulator) { s.safety = d }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Simulator) { s.now = now }
}

// WithTickHook registers fn to receive a copy of the session after every change.
func WithTickHook(fn func(Session)) Option {
	return func(s *Simulator) { s.onTick = fn }
}

// WithClearHook registers fn to run when the session is discarded.
func WithClearHook(fn func()) Option {
	return func(s *Simulator) { s.onClear = fn }
}

// Simulator advances at most one session on a cron schedule.
type Simulator struct {
	mu       sync.Mutex
	store    Store
	logger   *slog.Logger
	cron     *cron.Cron
	entry    cron.EntryID
	interval time.Duration
	grace    time.Duration
	safety   time.Duration
	now      func() time.Time
	onTick   func(Session)
	onClear  func()

	session *Session
	// generation invalidates timers armed for an earlier session.
	generation  uint64
	graceTimer  *time.Timer
	safetyTimer *time.Timer
}

// NewSimulator constructs a Simulator persisting to store.
func NewSimulator(store Store, logger *slog.Logger, opts ...Option) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Simulator{
		store:    store,
		logger:   logger.With("component", "tracking_simulator"),
		cron:     cron.New(),
		interval: DefaultTickInterval,
		grace:    CompletionGrace,
		safety:   SafetyTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins tracking order, replacing any active session.
func (s *Simulator) Start(order model.Order) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := Resume(order, s.now())
	if err := s.activateLocked(&session); err != nil {
		return Session{}, err
	}
	return session.clone(), nil
}

// Resume restores a previously stored session. It returns false when there
// is nothing to resume.
func (s *Simulator) Resume() (Session, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := Restore(s.store, s.now())
	if err != nil {
		s.logger.Warn("tracking state discarded", "error", err)
	}
	if session == nil {
		return Session{}, false, nil
	}
	if err := s.activateLocked(session); err != nil {
		return Session{}, false, err
	}
	return session.clone(), true, nil
}

func (s *Simulator) activateLocked(session *Session) error {
	s.cancelLocked()
	s.generation++
	s.session = session

	entry, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.Tick)
	if err != nil {
		s.session = nil
		return fmt.Errorf("schedule tracking ticks: %w", err)
	}
	s.entry = entry
	s.cron.Start()

	s.persistLocked()
	s.armTimersLocked()
	s.notifyLocked()
	s.logger.Info("tracking started", "order_id", session.Order.ID, "stage", session.Stage.String(), "elapsed", session.ElapsedMinutes)
	return nil
}

// Tick advances the active session by one minute and persists it before
// returning.
func (s *Simulator) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return
	}
	s.session.Tick()
	s.persistLocked()
	s.armTimersLocked()
	s.notifyLocked()
}

// Current returns a copy of the active session.
func (s *Simulator) Current() (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return Session{}, false
	}
	return s.session.clone(), true
}

// Clear discards the active session and its stored state immediately.
func (s *Simulator) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Stop cancels the schedule and timers. Stored state is kept so that a
// later Resume can pick it up.
func (s *Simulator) Stop() {
	s.mu.Lock()
	s.cancelLocked()
	s.session = nil
	s.generation++
	s.mu.Unlock()

	<-s.cron.Stop().Done()
}

func (s *Simulator) clearLocked() {
	if s.session == nil {
		return
	}
	orderID := s.session.Order.ID
	s.cancelLocked()
	s.session = nil
	s.generation++
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("clear tracking state", "error", err)
	}
	if s.onClear != nil {
		s.onClear()
	}
	s.logger.Info("tracking cleared", "order_id", orderID)
}

func (s *Simulator) cancelLocked() {
	if s.entry != 0 {
		s.cron.Remove(s.entry)
		s.entry = 0
	}
	if s.graceTimer != nil {
		s.graceTimer.Stop()
		s.graceTimer = nil
	}
	if s.safetyTimer != nil {
		s.safetyTimer.Stop()
		s.safetyTimer = nil
	}
}

func (s *Simulator) armTimersLocked() {
	if s.session.Delivered() && s.graceTimer == nil {
		s.graceTimer = time.AfterFunc(s.grace, s.expire(s.generation))
	}
	if s.session.ElapsedMinutes >= StageDelivered.Threshold() && s.safetyTimer == nil {
		s.safetyTimer = time.AfterFunc(s.safety, s.expire(s.generation))
	}
}

func (s *Simulator) expire(generation uint64) func() {
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.generation != generation {
			return
		}
		s.clearLocked()
	}
}

func (s *Simulator) persistLocked() {
	if err := Save(s.store, *s.session, s.now()); err != nil {
		s.logger.Warn("persist tracking state", "error", err)
	}
}

func (s *Simulator) notifyLocked() {
	if s.onTick != nil {
		s.onTick(s.session.clone())
	}
}

// Entries reports the number of scheduled tick jobs.
func (s *Simulator) Entries() int {
	return len(s.cron.Entries())
}

// Shutdown stops the simulator within ctx.
func (s *Simulator) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
