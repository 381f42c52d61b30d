package tracking

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/helixml/brokerseed/domain/progress"
)

var (
	_ Reporter  = (*Cooldown)(nil)
	_ io.Closer = (*Cooldown)(nil)
)

// Cooldown limits how often the batch progress of one step reaches the
// wrapped reporter. Steps report from the seeding goroutine, so throttling
// is decided on each call without background timers: an update passes when
// the interval has elapsed since the step's last delivery and is held
// otherwise. A held update is replaced by newer ones, dropped when the step
// reaches a terminal state, and delivered by Close if the step never does.
type Cooldown struct {
	inner    Reporter
	interval time.Duration
	now      func() time.Time

	mu    sync.Mutex
	steps map[progress.StepName]*stepWindow
}

type stepWindow struct {
	delivered time.Time
	held      *progress.Status
}

// CooldownOption configures a Cooldown.
type CooldownOption func(*Cooldown)

// WithCooldownClock sets the clock the interval is measured against.
func WithCooldownClock(now func() time.Time) CooldownOption {
	return func(c *Cooldown) { c.now = now }
}

// NewCooldown wraps inner, delivering at most one non-terminal update per
// step per interval.
func NewCooldown(inner Reporter, interval time.Duration, opts ...CooldownOption) *Cooldown {
	c := &Cooldown{
		inner:    inner,
		interval: interval,
		now:      time.Now,
		steps:    make(map[progress.StepName]*stepWindow),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnChange delivers or holds status.
func (c *Cooldown) OnChange(ctx context.Context, status progress.Status) error {
	if !c.admit(status) {
		return nil
	}
	return c.inner.OnChange(ctx, status)
}

func (c *Cooldown) admit(status progress.Status) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if status.State().IsTerminal() {
		delete(c.steps, status.Step())
		return true
	}

	w, ok := c.steps[status.Step()]
	if !ok {
		w = &stepWindow{}
		c.steps[status.Step()] = w
	}
	now := c.now()
	if ok && now.Sub(w.delivered) < c.interval {
		held := status
		w.held = &held
		return false
	}
	w.delivered = now
	w.held = nil
	return true
}

// Close delivers the held update of every step that has not finished.
func (c *Cooldown) Close() error {
	c.mu.Lock()
	var held []progress.Status
	for _, w := range c.steps {
		if w.held != nil {
			held = append(held, *w.held)
		}
	}
	c.steps = make(map[progress.StepName]*stepWindow)
	c.mu.Unlock()

	for _, status := range held {
		_ = c.inner.OnChange(context.Background(), status)
	}
	return nil
}
