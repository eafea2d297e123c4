// Package state holds the latest feed values shared between the goroutine
// that fetches them and the frame loop that draws them.
package state

import (
	"maps"
	"strings"
	"sync"
	"time"

	"github.com/rook-computer/panels/internal/feed"
)

type Phase int

const (
	// LOADING means no value has arrived yet.
	LOADING Phase = iota
	// LIVE means the last fetch succeeded.
	LIVE
	// STALE means the last fetch failed; older values are still shown.
	STALE
	// ERROR means fetching failed before any value arrived.
	ERROR
)

func (p Phase) String() string {
	switch p {
	case LOADING:
		return "loading"
	case LIVE:
		return "live"
	case STALE:
		return "stale"
	case ERROR:
		return "error"
	}
	return "unknown"
}

// Quote is the latest known ticker of one pair.
type Quote struct {
	Phase   Phase
	Ticker  feed.Ticker
	Updated time.Time
	Err     string
}

// State is a copy of everything in the Store.
type State struct {
	Quotes map[string]Quote
}

// Quote returns the entry for pair, LOADING when nothing is known.
func (s State) Quote(pair string) Quote {
	if q, ok := s.Quotes[key(pair)]; ok {
		return q
	}
	return Quote{Phase: LOADING}
}

type Store struct {
	mu    sync.RWMutex
	state State
	now   func() time.Time
}

func NewStore() *Store {
	return &Store{state: State{Quotes: make(map[string]Quote)}, now: time.Now}
}

func key(pair string) string { return strings.ToUpper(pair) }

// Snapshot returns a copy that is safe to read without the lock.
func (store *Store) Snapshot() State {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return State{Quotes: maps.Clone(store.state.Quotes)}
}

// SetTicker records a successful fetch.
func (store *Store) SetTicker(t feed.Ticker) {
	store.mu.Lock()
	store.state.Quotes[key(t.Pair)] = Quote{Phase: LIVE, Ticker: t, Updated: store.now()}
	store.mu.Unlock()
}

// SetError records a failed fetch and keeps the previous ticker.
func (store *Store) SetError(pair string, err error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	q := store.state.Quotes[key(pair)]
	if q.Updated.IsZero() {
		q.Phase = ERROR
	} else {
		q.Phase = STALE
	}
	q.Err = err.Error()
	store.state.Quotes[key(pair)] = q
}
