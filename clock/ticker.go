package clock

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
)

// Ticker moves the hour hand once a minute until stopped.
type Ticker struct {
	layout    Layout
	now       func() time.Time
	logger    *slog.Logger
	scheduler *gocron.Scheduler
	hand      atomic.Pointer[Hand]
	stopOnce  sync.Once
}

// NewTicker creates a Ticker. now defaults to time.Now.
func NewTicker(l Layout, loc *time.Location, now func() time.Time, logger *slog.Logger) *Ticker {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	t := &Ticker{
		layout:    l,
		now:       func() time.Time { return now().In(loc) },
		logger:    logger,
		scheduler: gocron.NewScheduler(loc),
	}
	t.Tick()
	return t
}

// Start schedules the per-minute update.
func (t *Ticker) Start() error {
	if _, err := t.scheduler.Every(1).Minute().Do(t.Tick); err != nil {
		return err
	}
	t.scheduler.StartAsync()
	t.logger.Info("clock ticker started")
	return nil
}

// Stop cancels future updates. It is safe to call more than once.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() {
		t.scheduler.Stop()
		t.logger.Info("clock ticker stopped")
	})
}

// Tick recomputes the hand from the current time.
func (t *Ticker) Tick() {
	h := HandAt(t.layout, t.now())
	t.hand.Store(&h)
}

// Hand returns the latest hand position.
func (t *Ticker) Hand() Hand {
	return *t.hand.Load()
}
