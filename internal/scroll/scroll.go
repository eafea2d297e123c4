// Package scroll drives horizontally scrolling widgets that pause, scroll and
// rewind in lockstep.
//
// Each widget owns a Scroller. Scrollers that belong to the same group share a
// Synchroniser, which acts as a barrier: a scroller that has finished its
// scroll waits until every sibling has finished too, and then all of them
// rewind to offset 0 together.
//
// Everything here is driven by an external frame loop calling Tick once per
// frame from a single goroutine, so nothing is locked.
package scroll

import (
	"fmt"
	"image"
)

// State is the phase a Scroller is in.
type State int

const (
	// WaitScroll idles at offset 0 before a scroll starts.
	WaitScroll State = iota + 1
	// Scrolling advances the offset by Speed each tick.
	Scrolling
	// WaitRewind idles at the maximum offset.
	WaitRewind
	// WaitSync waits for every sibling in the Synchroniser to be ready.
	WaitSync
)

func (s State) String() string {
	switch s {
	case WaitScroll:
		return "WAIT_SCROLL"
	case Scrolling:
		return "SCROLLING"
	case WaitRewind:
		return "WAIT_REWIND"
	case WaitSync:
		return "WAIT_SYNC"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Target receives the horizontal offset whenever the scroller redraws.
type Target interface {
	SetOffset(offset image.Point)
}

// Scroller is the per-widget state machine.
type Scroller struct {
	target Target
	sync   *Synchroniser

	speed      int
	delay      int
	maxOffset  int
	mustScroll bool

	state  State
	ticks  int
	offset int
	cycles int
}

// New creates a Scroller for content that is maxOffset pixels wider than its
// viewport, registers it as busy in sync and draws the target at offset 0.
//
// delay is the number of idle ticks spent before scrolling and before
// rewinding. target may be nil.
func New(target Target, maxOffset, delay int, sync *Synchroniser) *Scroller {
	if sync == nil {
		sync = NewSynchroniser()
	}
	s := &Scroller{
		target:     target,
		sync:       sync,
		speed:      1,
		delay:      delay,
		maxOffset:  maxOffset,
		mustScroll: maxOffset > 0,
		state:      WaitScroll,
	}
	s.render()
	s.sync.Busy(s)
	return s
}

// NewForWidth is New with the maximum offset derived from the content and
// viewport widths.
func NewForWidth(target Target, contentWidth, viewportWidth, delay int, sync *Synchroniser) *Scroller {
	return New(target, contentWidth-viewportWidth, delay, sync)
}

// SetSpeed sets the number of pixels advanced per scrolling tick. Values
// below 1 are raised to 1.
func (s *Scroller) SetSpeed(speed int) {
	if speed < 1 {
		speed = 1
	}
	s.speed = speed
}

// Tick advances the state machine by one frame. The repeating sequence is:
// wait, scroll, wait, sync with the other scrollers, rewind.
func (s *Scroller) Tick() {
	switch s.state {
	case WaitScroll:
		if !s.waiting() {
			s.cycles++
			s.state = Scrolling
			s.sync.Busy(s)
		}

	case Scrolling:
		if s.mustScroll && s.offset < s.maxOffset {
			s.offset += s.speed
			if s.offset > s.maxOffset {
				s.offset = s.maxOffset
			}
			s.render()
		} else {
			s.state = WaitRewind
		}

	case WaitRewind:
		if !s.waiting() {
			s.sync.Ready(s)
			s.state = WaitSync
		}

	case WaitSync:
		if s.sync.Synchronised() {
			if s.mustScroll {
				s.offset = 0
				s.render()
			}
			s.state = WaitScroll
		}
	}
}

// waiting counts an idle tick and reports whether the delay is still running.
func (s *Scroller) waiting() bool {
	s.ticks++
	if s.ticks > s.delay {
		s.ticks = 0
		return false
	}
	return true
}

func (s *Scroller) render() {
	if s.target != nil {
		s.target.SetOffset(image.Pt(s.offset, 0))
	}
}

// Close removes the scroller from its Synchroniser so it no longer holds up
// its siblings.
func (s *Scroller) Close() {
	s.sync.Remove(s)
}

// State returns the current phase.
func (s *Scroller) State() State { return s.state }

// Offset returns the current horizontal offset.
func (s *Scroller) Offset() int { return s.offset }

// MaxOffset returns the content overhang in pixels; zero or negative when the
// content fits the viewport.
func (s *Scroller) MaxOffset() int { return s.maxOffset }

// MustScroll reports whether the content is wider than the viewport.
func (s *Scroller) MustScroll() bool { return s.mustScroll }

// Cycles returns how many scroll cycles have started.
func (s *Scroller) Cycles() int { return s.cycles }

func (s *Scroller) String() string {
	return fmt.Sprintf("scroll.Scroller{%s offset=%d/%d}", s.state, s.offset, s.maxOffset)
}
