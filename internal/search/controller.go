package search

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
)

// NoSelection is the selected index when no row is highlighted.
const NoSelection = -1

type Key string

const (
	KeyArrowDown Key = "ArrowDown"
	KeyArrowUp   Key = "ArrowUp"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
)

// Mode tells which list is displayed.
type Mode string

const (
	ModeTrending Mode = "trending"
	ModeDynamic  Mode = "dynamic"
)

// State is a snapshot of the controller for rendering. Version increases with
// every change so hosts can drop snapshots that arrive out of order.
type State struct {
	Version     uint64              `json:"version"`
	Query       string              `json:"query"`
	Focused     bool                `json:"focused"`
	Visible     bool                `json:"visible"`
	Selected    int                 `json:"selected"`
	Mode        Mode                `json:"mode"`
	Suggestions []domain.Suggestion `json:"suggestions"`
	HasSearched bool                `json:"hasSearched"`
	Committed   string              `json:"committed"`
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) {
		c.sched = s
	}
}

func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// OnCommit registers the callback receiving committed search terms. An empty
// term means "show everything".
func OnCommit(fn func(term string)) Option {
	return func(c *Controller) {
		c.onCommit = fn
	}
}

func OnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// Controller is the autocomplete state machine behind a search box.
// It is safe for concurrent use; callbacks run outside its lock.
type Controller struct {
	fetcher  SuggestionFetcher
	trending TrendingSource
	sched    Scheduler
	cfg      Config
	onCommit func(string)
	onChange func(State)

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	closed      bool
	version     uint64
	query       string
	focused     bool
	selected    int
	dynamic     []domain.Suggestion
	trendingTop []domain.Suggestion
	hasSearched bool
	committed   string

	// generation changes on every keystroke, commit and clear. A debounce
	// timer or fetch result from an older generation is ignored.
	generation  uint64
	token       uint64
	debounce    Timer
	blur        Timer
	blurSeq     uint64
	cancelFetch context.CancelFunc
}

func NewController(fetcher SuggestionFetcher, trending TrendingSource, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		fetcher:  fetcher,
		trending: trending,
		sched:    SystemScheduler,
		cfg:      DefaultConfig(),
		ctx:      ctx,
		cancel:   cancel,
		selected: NoSelection,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// effect is what a state transition asks to be published once the lock is
// released.
type effect struct {
	changed bool
	commit  bool
	term    string
}

func (c *Controller) apply(fn func() effect) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	eff := fn()
	if eff.changed || eff.commit {
		c.version++
	}
	st := c.snapshotLocked()
	c.mu.Unlock()

	if eff.commit && c.onCommit != nil {
		c.onCommit(eff.term)
	}
	if (eff.changed || eff.commit) && c.onChange != nil {
		c.onChange(st)
	}
}

// QueryChange stores the raw text and restarts the debounce timer.
func (c *Controller) QueryChange(text string) {
	c.apply(func() effect {
		c.query = text
		c.generation++
		c.stopDebounceLocked()
		c.cancelFetchLocked()

		gen := c.generation
		c.debounce = c.sched.AfterFunc(c.cfg.Debounce, func() {
			c.fire(gen)
		})

		c.clampLocked()
		return effect{changed: true}
	})
}

// fire runs when the debounce timer of generation gen expires.
func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.debounce = nil

	prefix := strings.ToLower(c.query)
	if prefix == "" {
		c.mu.Unlock()
		c.apply(func() effect {
			if gen != c.generation {
				return effect{}
			}
			c.dynamic = nil
			c.clampLocked()
			return effect{changed: true}
		})
		return
	}

	c.token++
	tok := c.token
	c.cancelFetchLocked()
	ctx, cancel := context.WithCancel(c.ctx)
	c.cancelFetch = cancel
	c.mu.Unlock()

	results, err := c.fetcher.Fetch(ctx, prefix)
	superseded := ctx.Err() != nil
	cancel()
	if err != nil {
		if !superseded {
			slog.Warn("suggestion fetch failed", "prefix", prefix, "error", err)
		}
		results = nil
	}

	c.apply(func() effect {
		if tok != c.token || gen != c.generation {
			slog.Debug("dropping stale suggestions", "prefix", prefix, "token", tok)
			return effect{}
		}
		c.cancelFetch = nil
		c.dynamic = results
		c.clampLocked()
		return effect{changed: true}
	})
}

func (c *Controller) Focus() {
	c.apply(func() effect {
		c.stopBlurLocked()
		if c.focused {
			return effect{}
		}
		c.focused = true
		return effect{changed: true}
	})
}

// Blur hides the list after the configured delay. A Focus inside the delay
// cancels it.
func (c *Controller) Blur() {
	c.apply(func() effect {
		c.stopBlurLocked()
		c.blurSeq++
		seq := c.blurSeq
		c.blur = c.sched.AfterFunc(c.cfg.BlurDelay, func() {
			c.apply(func() effect {
				if seq != c.blurSeq || !c.focused {
					return effect{}
				}
				c.blur = nil
				c.focused = false
				return effect{changed: true}
			})
		})
		return effect{}
	})
}

// KeyDown handles navigation keys and reports whether the key was consumed.
func (c *Controller) KeyDown(key Key) bool {
	handled := false
	c.apply(func() effect {
		list := c.displayedLocked()
		n := len(list)

		switch key {
		case KeyArrowDown:
			handled = true
			if n == 0 {
				return effect{}
			}
			if c.selected == NoSelection || c.selected >= n-1 {
				c.selected = 0
			} else {
				c.selected++
			}
			return effect{changed: true}

		case KeyArrowUp:
			handled = true
			if n == 0 {
				return effect{}
			}
			if c.selected == NoSelection || c.selected <= 0 {
				c.selected = n - 1
			} else {
				c.selected--
			}
			return effect{changed: true}

		case KeyEnter:
			handled = true
			if c.selected >= 0 && c.selected < n {
				return c.commitLocked(list[c.selected].Title)
			}
			return c.submitLocked()

		case KeyEscape:
			handled = true
			c.stopBlurLocked()
			if !c.focused && c.selected == NoSelection {
				return effect{}
			}
			c.focused = false
			c.selected = NoSelection
			return effect{changed: true}
		}
		return effect{}
	})
	return handled
}

// Submit commits the raw query when it is not blank.
func (c *Controller) Submit() bool {
	submitted := false
	c.apply(func() effect {
		eff := c.submitLocked()
		submitted = eff.commit
		return eff
	})
	return submitted
}

// Select commits the row at index of the displayed list and closes the list.
func (c *Controller) Select(index int) bool {
	selected := false
	c.apply(func() effect {
		list := c.displayedLocked()
		if index < 0 || index >= len(list) {
			return effect{}
		}
		selected = true
		eff := c.commitLocked(list[index].Title)
		c.stopBlurLocked()
		c.focused = false
		return eff
	})
	return selected
}

// Clear resets the box and commits the empty term.
func (c *Controller) Clear() {
	c.apply(func() effect {
		c.generation++
		c.stopDebounceLocked()
		c.stopBlurLocked()
		c.cancelFetchLocked()

		c.query = ""
		c.selected = NoSelection
		c.dynamic = nil
		c.focused = false
		c.hasSearched = false
		c.committed = ""
		return effect{changed: true, commit: true, term: ""}
	})
}

// LoadTrending fetches the default suggestions. Failures leave the list empty.
func (c *Controller) LoadTrending(ctx context.Context) {
	items, err := c.trending.Trending(ctx)
	if err != nil {
		slog.Warn("trending fetch failed", "error", err)
		items = nil
	}
	visible := domain.VisibleSuggestions(items)

	c.apply(func() effect {
		c.trendingTop = visible
		c.clampLocked()
		return effect{changed: true}
	})
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Close stops pending timers and cancels an in-flight fetch. Later calls are
// ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.stopDebounceLocked()
	c.stopBlurLocked()
	c.cancelFetchLocked()
	c.cancel()
}

func (c *Controller) submitLocked() effect {
	if strings.TrimSpace(c.query) == "" {
		return effect{}
	}
	c.generation++
	c.stopDebounceLocked()
	c.cancelFetchLocked()

	c.dynamic = nil
	c.selected = NoSelection
	c.hasSearched = true
	c.committed = c.query
	return effect{changed: true, commit: true, term: c.query}
}

func (c *Controller) commitLocked(title string) effect {
	c.generation++
	c.stopDebounceLocked()
	c.cancelFetchLocked()

	c.query = title
	c.dynamic = nil
	c.selected = NoSelection
	c.hasSearched = true
	c.committed = title
	return effect{changed: true, commit: true, term: title}
}

// displayedLocked is the single list all index arithmetic runs against.
func (c *Controller) displayedLocked() []domain.Suggestion {
	if c.modeLocked() == ModeTrending {
		return c.trendingTop
	}
	return c.dynamic
}

func (c *Controller) modeLocked() Mode {
	if strings.TrimSpace(c.query) == "" {
		return ModeTrending
	}
	return ModeDynamic
}

func (c *Controller) clampLocked() {
	n := len(c.displayedLocked())
	if c.selected >= n {
		c.selected = n - 1
	}
	if c.selected < 0 {
		c.selected = NoSelection
	}
}

func (c *Controller) stopDebounceLocked() {
	if c.debounce != nil {
		c.debounce.Stop()
		c.debounce = nil
	}
}

func (c *Controller) stopBlurLocked() {
	c.blurSeq++
	if c.blur != nil {
		c.blur.Stop()
		c.blur = nil
	}
}

func (c *Controller) cancelFetchLocked() {
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
}

func (c *Controller) snapshotLocked() State {
	list := c.displayedLocked()
	suggestions := make([]domain.Suggestion, len(list))
	copy(suggestions, list)

	return State{
		Version:     c.version,
		Query:       c.query,
		Focused:     c.focused,
		Visible:     c.focused && len(list) > 0,
		Selected:    c.selected,
		Mode:        c.modeLocked(),
		Suggestions: suggestions,
		HasSearched: c.hasSearched,
		Committed:   c.committed,
	}
}
