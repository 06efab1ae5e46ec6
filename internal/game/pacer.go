package game

import (
	"context"
	"time"

	"github.com/coder/quartz"
)

// Pacer holds the loop to a fixed frame rate. vsync usually does the work;
// the pacer covers monitors faster than the target and drivers that ignore
// the swap interval.
type Pacer struct {
	clock quartz.Clock
	frame time.Duration
	next  time.Time

	// Frames and elapsed time since the last FPS sample.
	count     int
	sampledAt time.Time
	fps       float64
}

func NewPacer(clock quartz.Clock, fps int) *Pacer {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if fps <= 0 {
		fps = TargetFPS
	}
	now := clock.Now()
	return &Pacer{
		clock:     clock,
		frame:     time.Second / time.Duration(fps),
		next:      now,
		sampledAt: now,
	}
}

// FrameDuration is the target time per frame.
func (p *Pacer) FrameDuration() time.Duration { return p.frame }

// Remaining returns how long to wait before the next frame may start.
func (p *Pacer) Remaining() time.Duration {
	d := p.next.Add(p.frame).Sub(p.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

// Wait blocks until the next frame is due and schedules the one after it.
// A loop that fell more than a frame behind is resynchronised instead of
// running a burst of catch-up frames.
func (p *Pacer) Wait(ctx context.Context) error {
	if d := p.Remaining(); d > 0 {
		t := p.clock.NewTimer(d, "pacer")
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		}
	}
	p.advance()
	return nil
}

func (p *Pacer) advance() {
	now := p.clock.Now()
	p.next = p.next.Add(p.frame)
	if now.Sub(p.next) > p.frame {
		p.next = now
	}

	p.count++
	if el := now.Sub(p.sampledAt); el >= time.Second {
		p.fps = float64(p.count) / el.Seconds()
		p.count = 0
		p.sampledAt = now
	}
}

// FPS returns the measured frame rate over the last full second.
func (p *Pacer) FPS() float64 { return p.fps }
