package feed

import (
	"context"
	"time"
)

// Fetcher returns the current ticker of a pair.
type Fetcher interface {
	Ticker(ctx context.Context, pair string) (Ticker, error)
}

// Sink receives poll results.
type Sink interface {
	SetTicker(t Ticker)
	SetError(pair string, err error)
}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// Poll fetches every pair straight away and then once per interval until
// ctx is done. Failures go to the sink and the log; the loop carries on.
func Poll(ctx context.Context, f Fetcher, pairs []string, interval time.Duration, sink Sink, l logger) {
	fetch := func() {
		for _, pair := range pairs {
			t, err := f.Ticker(ctx, pair)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				if l != nil {
					l.Errorf("feed", "%s: %v", pair, err)
				}
				sink.SetError(pair, err)
				continue
			}
			sink.SetTicker(t)
		}
	}

	fetch()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fetch()
		}
	}
}
