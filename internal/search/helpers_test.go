package search

import (
	"context"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
)

// manualScheduler records timers and fires them on demand.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	s       *manualScheduler
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{s: s, d: d, f: f}
	s.timers = append(s.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	pending := !t.stopped && !t.fired
	t.stopped = true
	return pending
}

// pending returns the live timers with duration d.
func (s *manualScheduler) pending(d time.Duration) []*manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*manualTimer
	for _, t := range s.timers {
		if t.d == d && !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// fire runs every live timer with duration d and returns how many ran.
func (s *manualScheduler) fire(d time.Duration) int {
	timers := s.pending(d)
	for _, t := range timers {
		t.run()
	}
	return len(timers)
}

func (t *manualTimer) run() {
	t.s.mu.Lock()
	if t.stopped || t.fired {
		t.s.mu.Unlock()
		return
	}
	t.fired = true
	t.s.mu.Unlock()
	t.f()
}

type fakeFetcher struct {
	mu      sync.Mutex
	calls   []string
	results map[string][]domain.Suggestion
	err     error
	// block holds a fetch for the given query until the channel is closed.
	block   map[string]chan struct{}
	started chan string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		results: map[string][]domain.Suggestion{},
		block:   map[string]chan struct{}{},
		started: make(chan string, 64),
	}
}

func (f *fakeFetcher) Fetch(_ context.Context, query string) ([]domain.Suggestion, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	res, err, ch := f.results[query], f.err, f.block[query]
	f.mu.Unlock()

	f.started <- query
	if ch != nil {
		<-ch
	}
	return res, err
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type staticTrending struct {
	items []domain.Suggestion
	err   error
}

func (s staticTrending) Trending(context.Context) ([]domain.Suggestion, error) {
	return s.items, s.err
}

func suggestions(titles ...string) []domain.Suggestion {
	out := make([]domain.Suggestion, 0, len(titles))
	for _, t := range titles {
		out = append(out, domain.Suggestion{Title: t})
	}
	return out
}

func titlesOf(in []domain.Suggestion) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, s.Title)
	}
	return out
}
