// Package sprite holds the frame pacing used by animated demos.
package sprite

import (
	"context"
	"time"
)

// DefaultFPS is the rate NewFramerateRegulator uses for a negative fps.
const DefaultFPS = 16.67

// FramerateRegulator keeps a render loop at or below a target frame rate.
// Wrap the work of each frame in Enter and Leave (or use Regulate); Leave
// sleeps away whatever is left of the frame's time slot.
type FramerateRegulator struct {
	// frame is the time slot per frame; zero means unlimited.
	frame time.Duration

	called       int
	totalTransit time.Duration
	start        time.Time
	enter        time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewFramerateRegulator returns a regulator for fps frames per second. An
// fps of zero disables the limit but still keeps statistics.
func NewFramerateRegulator(fps float64) *FramerateRegulator {
	if fps < 0 {
		fps = DefaultFPS
	}
	r := &FramerateRegulator{now: time.Now, sleep: sleepCtx}
	if fps > 0 {
		r.frame = time.Duration(float64(time.Second) / fps)
	}
	return r
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Enter marks the start of a frame.
func (r *FramerateRegulator) Enter() {
	r.enter = r.now()
	if r.start.IsZero() {
		r.start = r.enter
	}
	r.called++
}

// Leave marks the end of a frame and sleeps until its slot is used up. It
// returns early with ctx's error when ctx is cancelled.
func (r *FramerateRegulator) Leave(ctx context.Context) error {
	transit := r.now().Sub(r.enter)
	r.totalTransit += transit
	if r.frame == 0 {
		return nil
	}
	if left := r.frame - transit; left > 0 {
		return r.sleep(ctx, left)
	}
	return nil
}

// Regulate runs fn between Enter and Leave. An error from fn skips the
// sleep.
func (r *FramerateRegulator) Regulate(ctx context.Context, fn func() error) error {
	r.Enter()
	if err := fn(); err != nil {
		r.totalTransit += r.now().Sub(r.enter)
		return err
	}
	return r.Leave(ctx)
}

// Called is the number of frames entered.
func (r *FramerateRegulator) Called() int { return r.called }

// EffectiveFPS is the frame rate achieved since the first Enter.
func (r *FramerateRegulator) EffectiveFPS() float64 {
	if r.start.IsZero() {
		return 0
	}
	elapsed := r.now().Sub(r.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(r.called) / elapsed
}

// AverageTransitTime is the mean time spent inside a frame, excluding the
// regulating sleep.
func (r *FramerateRegulator) AverageTransitTime() time.Duration {
	if r.called == 0 {
		return 0
	}
	return r.totalTransit / time.Duration(r.called)
}
