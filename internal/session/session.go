// Package session binds an overlay controller to one browser page over a
// websocket.
//
// Every page that loads the client script opens one session. The session
// owns an event loop; the reader goroutine only decodes messages and posts
// them onto that loop, and every outbound write happens on the loop too.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/ziadkadry99/overlaykit/internal/eventloop"
	"github.com/ziadkadry99/overlaykit/internal/fetch"
	"github.com/ziadkadry99/overlaykit/internal/focustrap"
	"github.com/ziadkadry99/overlaykit/internal/overlay"
)

// ErrMissingContainer reports a page without the overlay root or body.
var ErrMissingContainer = errors.New("overlay container not found")

const writeWait = 10 * time.Second

// Options configure every session a Handler creates.
type Options struct {
	Overlay overlay.Config
	Fetcher fetch.Fetcher
	// Observe, when set, returns the transition observer for a session.
	Observe func(sessionID string) overlay.TransitionObserver
	// Resolve, when set, makes trigger URLs absolute before they become
	// cache keys, so relative and absolute links to one page share an entry.
	Resolve func(raw string) (string, error)
	Logger  zerolog.Logger
}

// Session is one connected page. It implements overlay.View and
// overlay.Reinitializer by emitting operations to the browser.
type Session struct {
	id        string
	connected time.Time
	conn      *websocket.Conn
	loop      *eventloop.Loop
	opts      Options
	log       zerolog.Logger

	// Loop-owned state.
	ctrl   *overlay.Controller
	body   string
	before int
	after  int
	closed bool

	stopOnce sync.Once
}

func newSession(conn *websocket.Conn, opts Options) *Session {
	id := uuid.New().String()
	log := opts.Logger.With().Str("session", id).Logger()
	return &Session{
		id:        id,
		connected: time.Now(),
		conn:      conn,
		loop:      eventloop.New(log),
		opts:      opts,
		log:       log,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// run serves the session until the connection drops or ctx ends.
func (s *Session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer s.conn.Close()

	var wg conc.WaitGroup
	wg.Go(func() {
		s.loop.Run(ctx)
		// Unblock the reader when the loop ends first.
		s.conn.Close()
	})

	s.log.Debug().Msg("session connected")
	s.read(ctx)

	s.loop.Stop()
	cancel()
	wg.Wait()
	s.loop.Wait()
	s.log.Debug().Msg("session closed")
}

func (s *Session) read(ctx context.Context) {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("websocket read")
			}
			return
		}

		var msg Inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			if !s.loop.Post(func() { s.send(Op{Op: OpError, Message: "invalid message format"}) }) {
				return
			}
			continue
		}
		if !s.loop.Post(func() { s.dispatch(ctx, msg) }) {
			return
		}
	}
}

// dispatch applies one browser event. It runs on the loop.
func (s *Session) dispatch(ctx context.Context, msg Inbound) {
	if msg.Type == msgHello {
		s.handshake(ctx, msg)
		return
	}
	if s.ctrl == nil {
		s.log.Warn().Str("type", msg.Type).Msg("event before handshake ignored")
		return
	}

	switch msg.Type {
	case msgOpen:
		url, title, ok := overlay.ResolveTrigger(msg.Href, msg.DataURL, msg.DataTitle, msg.Text)
		if !ok {
			s.log.Warn().Msg("trigger without url ignored")
			return
		}
		if s.opts.Resolve != nil {
			// A rejected URL is opened as given; the guarded fetch fails it
			// into the error panel.
			if abs, err := s.opts.Resolve(url); err == nil {
				url = abs
			}
		}
		s.ctrl.Open(url, title)
	case msgClose:
		s.ctrl.Close()
	case msgKey:
		s.ctrl.HandleKey(overlay.KeyEvent{
			Key:    msg.Key,
			Shift:  msg.Shift,
			Active: s.element(msg.Active),
		})
	case msgClick:
		s.ctrl.HandleClick(clickTarget(msg.Target))
	case msgTouchStart:
		s.ctrl.TouchStart(msg.Y)
	case msgTouchEnd:
		s.ctrl.TouchEnd(msg.Y, msg.ScrollTop)
	case msgClearCache:
		s.ctrl.ClearCache()
	default:
		s.send(Op{Op: OpError, Message: "unknown message type: " + msg.Type})
	}
}

// handshake builds the controller once the page reports its containers. A
// page without them is a configuration error: it is reported and the
// session ends without affecting others.
func (s *Session) handshake(ctx context.Context, msg Inbound) {
	if s.ctrl != nil {
		s.log.Warn().Msg("duplicate hello ignored")
		return
	}
	if !msg.RootFound || !msg.BodyFound {
		s.log.Warn().
			Bool("root_found", msg.RootFound).
			Bool("body_found", msg.BodyFound).
			Msg("overlay container not found")
		s.send(Op{Op: OpError, Message: ErrMissingContainer.Error()})
		s.shutdown(ErrMissingContainer.Error())
		return
	}

	s.before, s.after = msg.FocusablesBefore, msg.FocusablesAfter

	deps := overlay.Deps{
		View:      s,
		Fetcher:   s.opts.Fetcher,
		Scheduler: s.loop,
		Reinit:    s,
		Logger:    s.log,
	}
	if s.opts.Observe != nil {
		deps.Observer = s.opts.Observe(s.id)
	}
	ctrl, err := overlay.New(ctx, s.opts.Overlay, deps)
	if err != nil {
		s.log.Error().Err(err).Msg("creating overlay controller")
		s.send(Op{Op: OpError, Message: err.Error()})
		s.shutdown("setup failed")
		return
	}
	ctrl.Subscribe(func(ev overlay.Event) {
		s.send(Op{Op: OpEvent, Event: ev.Name, URL: ev.Request.URL, Title: ev.Request.Title, FromCache: ev.FromCache})
	})
	s.ctrl = ctrl

	s.log.Info().Msg("overlay session initialized")
	s.send(Op{Op: OpReady, Session: s.id})
}

// shutdown sends a close frame and stops the loop.
func (s *Session) shutdown(reason string) {
	s.stopOnce.Do(func() {
		s.closed = true
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
		_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		s.loop.Stop()
	})
}

// send writes op to the browser. It must be called on the loop.
func (s *Session) send(op Op) {
	if s.closed {
		return
	}
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteJSON(op); err != nil {
		s.log.Debug().Err(err).Str("op", op.Op).Msg("websocket write")
		s.closed = true
		s.loop.Stop()
	}
}

func clickTarget(target string) overlay.ClickTarget {
	switch target {
	case "close":
		return overlay.ClickClose
	case "backdrop":
		return overlay.ClickBackdrop
	}
	return overlay.ClickOther
}

// View implementation.

func (s *Session) SetVisible(visible bool) { s.send(toggleOp(OpVisible, visible)) }

func (s *Session) SetScrollLocked(locked bool) { s.send(toggleOp(OpScrollLock, locked)) }

func (s *Session) SetAriaHidden(hidden bool) { s.send(toggleOp(OpAriaHidden, hidden)) }

func (s *Session) SetMarker(m overlay.Marker, on bool) { s.send(markerOp(string(m), on)) }

func (s *Session) ReplaceBody(html string) {
	s.body = html
	s.send(bodyOp(html))
}

// Focusables numbers the overlay's focusable elements in document order:
// the shell's elements ahead of the body, the body's own, then the rest.
func (s *Session) Focusables() []focustrap.Element {
	n := s.before + focustrap.CountFragment(s.body) + s.after
	elems := make([]focustrap.Element, n)
	for i := range elems {
		elems[i] = remoteElement{s: s, index: i}
	}
	return elems
}

// Reinitialize asks the page to wire up widgets in the injected content.
func (s *Session) Reinitialize(req overlay.Request) {
	s.send(Op{Op: OpReinit, URL: req.URL, Title: req.Title})
}

func (s *Session) element(active *int) focustrap.Element {
	if active == nil || *active < 0 {
		return nil
	}
	return remoteElement{s: s, index: *active}
}

// remoteElement is a focusable in the browser, addressed by position.
type remoteElement struct {
	s     *Session
	index int
}

func (e remoteElement) Focus() { e.s.send(focusOp(e.index)) }

// Info is a point-in-time view of a session.
type Info struct {
	ID         string    `json:"id"`
	Connected  time.Time `json:"connected"`
	Ready      bool      `json:"ready"`
	State      string    `json:"state"`
	URL        string    `json:"url,omitempty"`
	Generation uint64    `json:"generation"`
	Cached     []string  `json:"cached"`
}

// snapshot must run on the loop.
func (s *Session) snapshot() Info {
	info := Info{ID: s.id, Connected: s.connected, State: overlay.Closed.String(), Cached: []string{}}
	if s.ctrl == nil {
		return info
	}
	info.Ready = true
	info.State = s.ctrl.State().String()
	info.Generation = s.ctrl.Generation()
	if req, ok := s.ctrl.Active(); ok {
		info.URL = req.URL
	}
	info.Cached = s.ctrl.Cache().Keys()
	return info
}
