package cleanup

import (
	"context"
	"time"
)

const DefaultDelay = 500 * time.Millisecond

// Pacer spaces out calls to the Notion API. Notion allows an average of
// three requests per second per integration.
type Pacer struct {
	delay time.Duration
	after func(time.Duration) <-chan time.Time
}

func NewPacer(delay time.Duration) *Pacer {
	if delay < 0 {
		delay = 0
	}
	return &Pacer{
		delay: delay,
		after: time.After,
	}
}

func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Wait blocks for the configured delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.delay == 0 {
		return ctx.Err()
	}
	select {
	case <-p.after(p.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
