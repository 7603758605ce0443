// Package calendar provides the business day the ledger operates under.
package calendar

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/cash_ledger/internal/core/domain"
	"github.com/SscSPs/cash_ledger/internal/middleware"
)

// Clock holds the current business day. The day moves only through Advance;
// the wall clock supplies the instant half of each TimePoint.
type Clock struct {
	mu  sync.RWMutex
	day time.Time
	now func() time.Time
}

// Option configures a Clock.
type Option func(*Clock)

// WithNow overrides the wall clock.
func WithNow(now func() time.Time) Option {
	return func(c *Clock) {
		c.now = now
	}
}

// NewClock creates a clock starting at day. A zero day starts at today's UTC date,
// rolled forward to a weekday.
func NewClock(day time.Time, opts ...Option) *Clock {
	c := &Clock{now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	if day.IsZero() {
		day = rollForward(domain.DateOf(c.now()))
	}
	c.day = domain.DateOf(day)
	return c
}

// Today returns the current business day.
func (c *Clock) Today() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.day
}

// Now returns the current business day paired with the wall-clock instant.
func (c *Clock) Now() domain.TimePoint {
	return domain.NewTimePoint(c.Today(), c.now().UTC())
}

// PlusBusinessDays returns day moved by n weekdays. Saturdays and Sundays are
// skipped; holidays are not modelled.
func (c *Clock) PlusBusinessDays(day time.Time, n int) time.Time {
	return PlusBusinessDays(day, n)
}

// Advance moves the business day to the next weekday and returns it.
func (c *Clock) Advance(ctx context.Context) time.Time {
	c.mu.Lock()
	prev := c.day
	c.day = PlusBusinessDays(prev, 1)
	next := c.day
	c.mu.Unlock()

	middleware.GetLoggerFromCtx(ctx).Info("Business day advanced",
		slog.String("from", prev.Format(domain.DayLayout)),
		slog.String("to", next.Format(domain.DayLayout)))
	return next
}

// PlusBusinessDays moves day by n weekdays; negative n moves backwards.
func PlusBusinessDays(day time.Time, n int) time.Time {
	d := domain.DateOf(day)
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for n > 0 {
		d = d.AddDate(0, 0, step)
		if isWeekday(d) {
			n--
		}
	}
	return d
}

func rollForward(d time.Time) time.Time {
	for !isWeekday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func isWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
