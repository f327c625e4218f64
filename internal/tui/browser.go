package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/DjordjeVuckovic/media-catalog/internal/domain"
	"github.com/DjordjeVuckovic/media-catalog/internal/search"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// EntryLister loads the full result set after a commit.
type EntryLister interface {
	List(ctx context.Context) ([]domain.Entry, error)
}

type stateMsg search.State

type resultsMsg struct {
	term    string
	entries []domain.Entry
	err     error
}

type trendingLoadedMsg struct{}

// Browser is the terminal search UI. Keystrokes drive a search.Controller;
// committed terms load entries into a search.Pager.
type Browser struct {
	ctrl    *search.Controller
	entries EntryLister
	pager   *search.Pager
	input   textinput.Model

	ctx    context.Context
	cancel context.CancelFunc

	latest atomic.Pointer[search.State]
	notify chan struct{}

	commitMu sync.Mutex
	commits  []string

	state      search.State
	categories []string
	category   int
	loaded     bool
	err        error
	width      int
}

func NewBrowser(fetcher search.SuggestionFetcher, trending search.TrendingSource, entries EntryLister, opts ...search.Option) *Browser {
	ti := textinput.New()
	ti.Placeholder = "Search titles..."
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()

	ctx, cancel := context.WithCancel(context.Background())
	b := &Browser{
		entries: entries,
		pager:   search.NewPager(search.DefaultPageSize),
		input:   ti,
		ctx:     ctx,
		cancel:  cancel,
		notify:  make(chan struct{}, 1),
		width:   80,
	}

	opts = append([]search.Option{
		search.OnChange(b.publish),
		search.OnCommit(b.queueCommit),
	}, opts...)
	b.ctrl = search.NewController(fetcher, trending, opts...)
	b.state = b.ctrl.State()
	return b
}

// Close releases the controller. The program calls it on quit.
func (b *Browser) Close() {
	b.cancel()
	b.ctrl.Close()
}

func (b *Browser) Init() tea.Cmd {
	b.ctrl.Focus()
	return tea.Batch(
		textinput.Blink,
		b.loadTrending(),
		b.loadResults(""),
		b.waitForState(),
	)
}

func (b *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.input.Width = max(10, msg.Width-8)
		return b, nil

	case stateMsg:
		st := search.State(msg)
		if st.Version > b.state.Version {
			b.state = st
		}
		return b, b.waitForState()

	case resultsMsg:
		if msg.err != nil {
			slog.Warn("failed to load entries", "error", msg.err)
		}
		b.err = msg.err
		b.loaded = true
		b.pager.SetResults(msg.entries)
		b.pager.SetQuery(msg.term)
		b.categories = categoriesOf(msg.entries)
		if b.category >= len(b.categories) {
			b.category = 0
		}
		b.pager.SetCategory(b.categories[b.category])
		return b, nil

	case trendingLoadedMsg:
		return b, nil

	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	return b, cmd
}

func (b *Browser) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		b.Close()
		return b, tea.Quit
	case tea.KeyDown:
		b.ctrl.KeyDown(search.KeyArrowDown)
		return b, nil
	case tea.KeyUp:
		b.ctrl.KeyDown(search.KeyArrowUp)
		return b, nil
	case tea.KeyEnter:
		b.ctrl.KeyDown(search.KeyEnter)
		return b, b.drainCommits()
	case tea.KeyEsc:
		b.ctrl.KeyDown(search.KeyEscape)
		return b, nil
	case tea.KeyCtrlL:
		b.ctrl.Clear()
		b.input.SetValue("")
		return b, b.drainCommits()
	case tea.KeyTab:
		b.cycleCategory()
		return b, nil
	case tea.KeyPgDown:
		b.pager.Page(b.pager.Current() + 1)
		return b, nil
	case tea.KeyPgUp:
		b.pager.Page(b.pager.Current() - 1)
		return b, nil
	}

	before := b.input.Value()
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	if v := b.input.Value(); v != before {
		b.ctrl.Focus()
		b.ctrl.QueryChange(v)
	}
	return b, cmd
}

func (b *Browser) cycleCategory() {
	if len(b.categories) == 0 {
		return
	}
	b.category = (b.category + 1) % len(b.categories)
	b.pager.SetCategory(b.categories[b.category])
}

// publish runs on controller goroutines. Only the newest snapshot is kept.
func (b *Browser) publish(st search.State) {
	for {
		cur := b.latest.Load()
		if cur != nil && cur.Version >= st.Version {
			return
		}
		if b.latest.CompareAndSwap(cur, &st) {
			break
		}
	}
	select {
	case b.notify <- struct{}{}:
	default:
	}
}

func (b *Browser) queueCommit(term string) {
	b.commitMu.Lock()
	b.commits = append(b.commits, term)
	b.commitMu.Unlock()
}

// drainCommits syncs the input with the committed term and loads results.
func (b *Browser) drainCommits() tea.Cmd {
	b.commitMu.Lock()
	terms := b.commits
	b.commits = nil
	b.commitMu.Unlock()

	if len(terms) == 0 {
		return nil
	}
	term := terms[len(terms)-1]
	b.input.SetValue(b.ctrl.State().Query)
	b.input.CursorEnd()
	return b.loadResults(term)
}

func (b *Browser) waitForState() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.notify:
			if st := b.latest.Load(); st != nil {
				return stateMsg(*st)
			}
			return nil
		case <-b.ctx.Done():
			return nil
		}
	}
}

func (b *Browser) loadTrending() tea.Cmd {
	return func() tea.Msg {
		b.ctrl.LoadTrending(b.ctx)
		return trendingLoadedMsg{}
	}
}

func (b *Browser) loadResults(term string) tea.Cmd {
	return func() tea.Msg {
		all, err := b.entries.List(b.ctx)
		return resultsMsg{term: term, entries: all, err: err}
	}
}

func (b *Browser) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Media Catalog"))
	sb.WriteString("\n")

	style := inputStyle
	if b.state.Focused {
		style = focusedInputStyle
	}
	sb.WriteString(style.Width(max(20, b.width-4)).Render(b.input.View()))
	sb.WriteString("\n")

	if b.state.Visible {
		for i, s := range b.state.Suggestions {
			if i == b.state.Selected {
				sb.WriteString(selectedSuggestionStyle.Render("› " + s.Title))
			} else {
				sb.WriteString(suggestionStyle.Render(s.Title))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(b.resultsView())
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render("↑/↓ select • enter search • tab category • pgup/pgdn page • ctrl+l clear • ctrl+c quit"))
	return sb.String()
}

func (b *Browser) resultsView() string {
	if b.err != nil {
		return errorStyle.Render("Failed to load results.")
	}
	if !b.loaded {
		return mutedStyle.Render("Loading...")
	}

	var sb strings.Builder
	header := "All entries"
	if q := strings.TrimSpace(b.pager.Query()); q != "" {
		header = fmt.Sprintf("Results for %q", q)
	}
	if c := b.pager.Category(); c != "" {
		header += " in " + c
	}
	sb.WriteString(titleStyle.Render(header))
	sb.WriteString("\n")

	page := b.pager.CurrentPage()
	if len(page) == 0 {
		sb.WriteString(mutedStyle.Render("No results."))
		sb.WriteString("\n")
	}
	for _, e := range page {
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			resultTitleStyle.Render(e.Title), " ", categoryStyle.Render(e.Category)))
		sb.WriteString("\n")
		if e.Description != "" {
			sb.WriteString(mutedStyle.Render("  " + e.Description))
			sb.WriteString("\n")
		}
	}

	if b.pager.HasPagination() {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf("Page %d of %d", b.pager.Current(), b.pager.TotalPages())))
		sb.WriteString("\n")
	}
	return sb.String()
}

// categoriesOf returns "" (all) followed by the distinct categories in
// first-seen order.
func categoriesOf(entries []domain.Entry) []string {
	out := []string{""}
	for _, e := range entries {
		c := strings.TrimSpace(e.Category)
		if c == "" || slices.ContainsFunc(out, func(s string) bool { return strings.EqualFold(s, c) }) {
			continue
		}
		out = append(out, c)
	}
	return out
}
