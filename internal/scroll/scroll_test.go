package scroll

import (
	"image"
	"testing"
)

type recordingTarget struct {
	offsets []image.Point
}

func (r *recordingTarget) SetOffset(offset image.Point) {
	r.offsets = append(r.offsets, offset)
}

func TestSynchroniser(t *testing.T) {
	s := NewSynchroniser()
	if !s.Synchronised() {
		t.Error("empty synchroniser should be synchronised")
	}

	a, b := new(int), new(int)
	s.Busy(a)
	s.Ready(b)
	if s.Synchronised() {
		t.Error("synchronised with a busy task")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}

	s.Ready(a)
	if !s.Synchronised() {
		t.Error("not synchronised with every task ready")
	}

	s.Busy(b)
	s.Remove(b)
	if !s.Synchronised() {
		t.Error("removed task still blocks the barrier")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{WaitScroll, "WAIT_SCROLL"},
		{Scrolling, "SCROLLING"},
		{WaitRewind, "WAIT_REWIND"},
		{WaitSync, "WAIT_SYNC"},
		{State(42), "State(42)"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", int(tt.state), got, tt.want)
		}
	}
}

func TestNewRegistersBusyAndRenders(t *testing.T) {
	target := &recordingTarget{}
	sync := NewSynchroniser()
	s := New(target, 20, 5, sync)

	if sync.Synchronised() {
		t.Error("new scroller should be registered busy")
	}
	if len(target.offsets) != 1 || target.offsets[0] != (image.Point{}) {
		t.Errorf("initial render = %v, want one render at (0,0)", target.offsets)
	}
	if s.State() != WaitScroll {
		t.Errorf("initial state = %v, want WAIT_SCROLL", s.State())
	}
	if !s.MustScroll() {
		t.Error("MustScroll() = false for overhanging content")
	}
}

func TestNonScrollingContentCycles(t *testing.T) {
	target := &recordingTarget{}
	s := New(target, 0, 3, NewSynchroniser())

	want := []State{
		WaitScroll, WaitScroll, WaitScroll, // delay
		Scrolling,
		WaitRewind,
		WaitRewind, WaitRewind, WaitRewind, // delay
		WaitSync,
		WaitScroll,
	}
	for i, w := range want {
		s.Tick()
		if s.State() != w {
			t.Fatalf("tick %d: state = %v, want %v", i+1, s.State(), w)
		}
		if s.Offset() != 0 {
			t.Fatalf("tick %d: offset = %d, want 0", i+1, s.Offset())
		}
	}
	if len(target.offsets) != 1 {
		t.Errorf("target redrawn %d times, want only the initial render", len(target.offsets))
	}
	if s.Cycles() != 1 {
		t.Errorf("Cycles() = %d, want 1", s.Cycles())
	}
}

func TestNegativeOverhangNeverMoves(t *testing.T) {
	sync := NewSynchroniser()
	s := NewForWidth(nil, 40, 128, 2, sync)
	if s.MustScroll() {
		t.Fatal("MustScroll() = true for content narrower than the viewport")
	}

	sawSync := 0
	for i := 0; i < 200; i++ {
		s.Tick()
		if s.Offset() != 0 {
			t.Fatalf("tick %d: offset = %d, want 0", i+1, s.Offset())
		}
		if s.State() == WaitSync {
			sawSync++
			if !sync.Synchronised() {
				t.Fatalf("tick %d: WAIT_SYNC without signalling ready", i+1)
			}
		}
	}
	if sawSync == 0 {
		t.Error("scroller never reached WAIT_SYNC")
	}
}

func TestScrollingIsMonotonicAndClamped(t *testing.T) {
	target := &recordingTarget{}
	s := New(target, 10, 0, NewSynchroniser())
	s.SetSpeed(3)

	want := []int{0, 3, 6, 9, 10, 10}
	wantStates := []State{Scrolling, Scrolling, Scrolling, Scrolling, Scrolling, WaitRewind}
	for i := range want {
		s.Tick()
		if s.Offset() != want[i] {
			t.Errorf("tick %d: offset = %d, want %d", i+1, s.Offset(), want[i])
		}
		if s.State() != wantStates[i] {
			t.Errorf("tick %d: state = %v, want %v", i+1, s.State(), wantStates[i])
		}
	}

	prev := 0
	for _, p := range target.offsets {
		if p.X < prev || p.X > 10 {
			t.Errorf("render at %d breaks monotonic clamp (prev %d, max 10)", p.X, prev)
		}
		prev = p.X
	}
}

func TestSetSpeedFloor(t *testing.T) {
	s := New(nil, 5, 0, nil)
	s.SetSpeed(0)
	s.Tick()
	s.Tick()
	if s.Offset() != 1 {
		t.Errorf("offset = %d, want 1 with speed floored to 1", s.Offset())
	}
}

func TestTwoScrollersRewindTogether(t *testing.T) {
	const delay = 100
	sync := NewSynchroniser()
	song := New(&recordingTarget{}, 50, delay, sync)
	artist := New(&recordingTarget{}, 80, delay, sync)

	// Idle delay, scroll the longer overhang, rewind delay, plus the
	// transition ticks out of WAIT_SCROLL, SCROLLING and WAIT_REWIND and the
	// barrier release.
	wantReset := (delay + 1) + 80 + 1 + (delay + 1) + 1

	resetAt := map[*Scroller]int{}
	for tick := 1; tick <= wantReset+10; tick++ {
		before := map[*Scroller]State{song: song.State(), artist: artist.State()}
		song.Tick()
		artist.Tick()

		for _, s := range []*Scroller{song, artist} {
			if before[s] == WaitSync && s.State() == WaitScroll {
				if _, seen := resetAt[s]; !seen {
					resetAt[s] = tick
				}
				for _, other := range []*Scroller{song, artist} {
					if st := other.State(); st != WaitSync && st != WaitScroll {
						t.Fatalf("tick %d: %v reset while sibling is %v", tick, s, st)
					}
				}
			}
		}

		if tick == wantReset-1 {
			if song.State() != WaitSync || song.Offset() != 50 {
				t.Fatalf("tick %d: song = %v, want waiting at offset 50", tick, song)
			}
		}
	}

	if resetAt[song] != wantReset || resetAt[artist] != wantReset {
		t.Errorf("reset ticks song=%d artist=%d, want both %d", resetAt[song], resetAt[artist], wantReset)
	}
	if song.Offset() != 0 || artist.Offset() != 0 {
		t.Errorf("offsets after reset = %d, %d, want 0, 0", song.Offset(), artist.Offset())
	}
}

func TestGroupWithStaticMemberDoesNotDeadlock(t *testing.T) {
	sync := NewSynchroniser()
	group := []*Scroller{
		New(nil, 30, 4, sync),
		New(nil, 0, 4, sync),
		New(nil, -12, 4, sync),
		New(nil, 7, 4, sync),
	}

	for i := 0; i < 1000; i++ {
		for _, s := range group {
			s.Tick()
		}
	}
	for i, s := range group {
		if s.Cycles() < 3 {
			t.Errorf("scroller %d completed %d cycles, want at least 3", i, s.Cycles())
		}
	}
}

func TestCloseReleasesSiblings(t *testing.T) {
	sync := NewSynchroniser()
	a := New(nil, 0, 0, sync)
	b := New(nil, 0, 0, sync)

	for a.State() != WaitSync {
		a.Tick()
	}
	a.Tick()
	if a.State() != WaitSync {
		t.Fatalf("state = %v, want WAIT_SYNC while sibling is busy", a.State())
	}

	b.Close()
	a.Tick()
	if a.State() != WaitScroll {
		t.Errorf("state = %v, want WAIT_SCROLL after the busy sibling closed", a.State())
	}
}
