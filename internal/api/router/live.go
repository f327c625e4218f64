package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DjordjeVuckovic/media-catalog/internal/catalog"
	"github.com/DjordjeVuckovic/media-catalog/internal/search"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	outboxSize     = 64
)

// Client message types.
const (
	msgInput    = "input"
	msgFocus    = "focus"
	msgBlur     = "blur"
	msgKey      = "key"
	msgSubmit   = "submit"
	msgClear    = "clear"
	msgSelect   = "select"
	msgCategory = "category"
	msgPage     = "page"
)

// Server message types.
const (
	msgInit    = "init"
	msgState   = "state"
	msgResults = "results"
	msgError   = "error"
)

type clientMessage struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Key      string `json:"key,omitempty"`
	Index    int    `json:"index,omitempty"`
	Category string `json:"category,omitempty"`
	Page     int    `json:"page,omitempty"`
}

type serverMessage struct {
	Type    string           `json:"type"`
	State   *search.State    `json:"state,omitempty"`
	Results *EntriesResponse `json:"results,omitempty"`
	Message string           `json:"message,omitempty"`
}

type LiveRouterOption func(*LiveRouter)

// WithSearchOptions passes controller options to every session.
func WithSearchOptions(opts ...search.Option) LiveRouterOption {
	return func(r *LiveRouter) {
		r.searchOpts = append(r.searchOpts, opts...)
	}
}

// WithAllowedOrigins restricts the Origin header of upgrade requests. "*"
// allows any origin.
func WithAllowedOrigins(origins []string) LiveRouterOption {
	return func(r *LiveRouter) {
		r.origins = origins
	}
}

// LiveRouter serves /ws/search. Each connection owns one search controller
// and one pager.
type LiveRouter struct {
	e          *echo.Echo
	fetcher    search.SuggestionFetcher
	trending   search.TrendingSource
	entries    *catalog.EntryService
	searchOpts []search.Option
	origins    []string
	upgrader   websocket.Upgrader
}

func NewLiveRouter(
	e *echo.Echo,
	fetcher search.SuggestionFetcher,
	trending search.TrendingSource,
	entries *catalog.EntryService,
	opts ...LiveRouterOption,
) *LiveRouter {
	r := &LiveRouter{
		e:        e,
		fetcher:  fetcher,
		trending: trending,
		entries:  entries,
		origins:  []string{"*"},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     r.checkOrigin,
	}
	return r
}

func (r *LiveRouter) Bind() {
	r.e.GET("/ws/search", r.liveHandler)
}

func (r *LiveRouter) checkOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")
	if origin == "" || slices.Contains(r.origins, "*") {
		return true
	}
	return slices.Contains(r.origins, origin)
}

// liveHandler godoc
// @Summary Live search session
// @Description WebSocket. Client messages: input, focus, blur, key, submit, clear, select, category, page. Server messages: init, state, results, error.
// @Tags search
// @Success 101
// @Router /ws/search [get]
func (r *LiveRouter) liveHandler(c echo.Context) error {
	conn, err := r.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err, "remote_ip", c.RealIP())
		return nil
	}

	s := newLiveSession(conn, r.entries)
	opts := append([]search.Option{
		search.OnChange(s.publishState),
		search.OnCommit(s.commit),
	}, r.searchOpts...)
	s.ctrl = search.NewController(r.fetcher, r.trending, opts...)

	slog.Info("live search session opened", "remote_ip", c.RealIP())
	s.run()
	slog.Info("live search session closed", "remote_ip", c.RealIP())
	return nil
}

type liveSession struct {
	conn    *websocket.Conn
	entries *catalog.EntryService
	ctrl    *search.Controller

	ctx    context.Context
	cancel context.CancelFunc
	outbox chan serverMessage
	ready  atomic.Bool

	pagerMu sync.Mutex
	pager   *search.Pager
}

func newLiveSession(conn *websocket.Conn, entries *catalog.EntryService) *liveSession {
	ctx, cancel := context.WithCancel(context.Background())
	return &liveSession{
		conn:    conn,
		entries: entries,
		ctx:     ctx,
		cancel:  cancel,
		outbox:  make(chan serverMessage, outboxSize),
		pager:   search.NewPager(search.DefaultPageSize),
	}
}

func (s *liveSession) run() {
	defer s.conn.Close()
	defer s.ctrl.Close()
	defer s.cancel()

	s.ctrl.LoadTrending(s.ctx)

	st := s.ctrl.State()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(serverMessage{Type: msgInit, State: &st}); err != nil {
		slog.Warn("failed to write init message", "error", err)
		return
	}

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(st.Version)
	}()
	s.ready.Store(true)

	s.loadResults("")
	s.readLoop()

	s.cancel()
	<-writerDone
}

func (s *liveSession) readLoop() {
	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("live search read failed", "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(serverMessage{Type: msgError, Message: "malformed message"})
			continue
		}
		s.dispatch(msg)
	}
}

func (s *liveSession) dispatch(msg clientMessage) {
	switch msg.Type {
	case msgInput:
		s.ctrl.QueryChange(msg.Text)
	case msgFocus:
		s.ctrl.Focus()
	case msgBlur:
		s.ctrl.Blur()
	case msgKey:
		if !s.ctrl.KeyDown(search.Key(msg.Key)) {
			slog.Debug("ignoring key", "key", msg.Key)
		}
	case msgSubmit:
		s.ctrl.Submit()
	case msgClear:
		s.ctrl.Clear()
	case msgSelect:
		if !s.ctrl.Select(msg.Index) {
			s.send(serverMessage{Type: msgError, Message: "no suggestion at that index"})
		}
	case msgCategory:
		s.pagerMu.Lock()
		s.pager.SetCategory(msg.Category)
		res := s.resultsLocked(1)
		s.pagerMu.Unlock()
		s.send(serverMessage{Type: msgResults, Results: &res})
	case msgPage:
		s.pagerMu.Lock()
		res := s.resultsLocked(msg.Page)
		s.pagerMu.Unlock()
		s.send(serverMessage{Type: msgResults, Results: &res})
	default:
		s.send(serverMessage{Type: msgError, Message: "unknown message type " + msg.Type})
	}
}

// commit runs on the reader goroutine for every committed term.
func (s *liveSession) commit(term string) {
	s.loadResults(term)
}

// loadResults re-reads all entries and shows the first page filtered by term.
// A failed read shows no results.
func (s *liveSession) loadResults(term string) {
	all, err := s.entries.List(s.ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Warn("failed to load entries", "error", err)
		s.send(serverMessage{Type: msgError, Message: "failed to load results"})
	}

	s.pagerMu.Lock()
	s.pager.SetResults(all)
	s.pager.SetQuery(term)
	res := s.resultsLocked(1)
	s.pagerMu.Unlock()

	s.send(serverMessage{Type: msgResults, Results: &res})
}

func (s *liveSession) resultsLocked(page int) EntriesResponse {
	return pagerResponse(s.pager, page)
}

func (s *liveSession) publishState(st search.State) {
	if !s.ready.Load() {
		return
	}
	s.send(serverMessage{Type: msgState, State: &st})
}

func (s *liveSession) send(msg serverMessage) {
	select {
	case s.outbox <- msg:
	case <-s.ctx.Done():
	}
}

// writeLoop owns all writes after init. State snapshots older than the last
// one written are dropped.
func (s *liveSession) writeLoop(lastVersion uint64) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return

		case msg := <-s.outbox:
			if msg.Type == msgState {
				if msg.State.Version <= lastVersion {
					continue
				}
				lastVersion = msg.State.Version
			}
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				slog.Warn("live search write failed", "error", err)
				s.abort()
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.abort()
				return
			}
		}
	}
}

// abort unblocks the reader after a failed write.
func (s *liveSession) abort() {
	s.cancel()
	_ = s.conn.Close()
}
