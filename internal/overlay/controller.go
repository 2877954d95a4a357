package overlay

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ziadkadry99/overlaykit/internal/contentcache"
	"github.com/ziadkadry99/overlaykit/internal/eventloop"
	"github.com/ziadkadry99/overlaykit/internal/fetch"
	"github.com/ziadkadry99/overlaykit/internal/focustrap"
	"github.com/ziadkadry99/overlaykit/internal/gesture"
	"github.com/ziadkadry99/overlaykit/internal/locale"
)

var (
	ErrMissingView      = errors.New("overlay: view is required")
	ErrMissingFetcher   = errors.New("overlay: fetcher is required")
	ErrMissingScheduler = errors.New("overlay: scheduler is required")
)

// Deps are the collaborators of a Controller. View, Fetcher and Scheduler
// are required.
type Deps struct {
	View      View
	Fetcher   fetch.Fetcher
	Scheduler eventloop.Scheduler
	Reinit    Reinitializer
	Observer  TransitionObserver
	Logger    zerolog.Logger
	// Now stamps transitions; time.Now when nil.
	Now func() time.Time
}

// Controller owns the overlay lifecycle. It is not safe for concurrent use:
// every method must be called from the scheduler's loop.
type Controller struct {
	cfg     Config
	catalog locale.Catalog

	ctx       context.Context
	view      View
	fetcher   fetch.Fetcher
	sched     eventloop.Scheduler
	reinit    Reinitializer
	observer  TransitionObserver
	log       zerolog.Logger
	now       func() time.Time
	cache     *contentcache.Cache
	listeners []Listener

	state      State
	generation uint64
	active     *Request
	trap       *focustrap.Trap
	swipe      gesture.Swipe
	closeTimer eventloop.Timer
	clearTimer eventloop.Timer
}

// New builds a controller in the Closed state. ctx bounds every fetch the
// controller starts.
func New(ctx context.Context, cfg Config, deps Deps) (*Controller, error) {
	switch {
	case deps.View == nil:
		return nil, ErrMissingView
	case deps.Fetcher == nil:
		return nil, ErrMissingFetcher
	case deps.Scheduler == nil:
		return nil, ErrMissingScheduler
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	capacity := cfg.CacheCapacity
	if !cfg.CacheEnabled {
		capacity = 0
	}

	return &Controller{
		cfg:      cfg,
		catalog:  locale.For(cfg.Direction),
		ctx:      ctx,
		view:     deps.View,
		fetcher:  deps.Fetcher,
		sched:    deps.Scheduler,
		reinit:   deps.Reinit,
		observer: deps.Observer,
		log:      deps.Logger,
		now:      deps.Now,
		cache:    contentcache.New(capacity),
		swipe:    gesture.Swipe{Threshold: cfg.SwipeThreshold},
		state:    Closed,
	}, nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State { return c.state }

// Active returns the request of the current open cycle.
func (c *Controller) Active() (Request, bool) {
	if c.active == nil {
		return Request{}, false
	}
	return *c.active, true
}

// Generation returns the generation of the most recent open cycle.
func (c *Controller) Generation() uint64 { return c.generation }

// Cache exposes the content cache for inspection.
func (c *Controller) Cache() *contentcache.Cache { return c.cache }

// Subscribe registers l for broadcast events.
func (c *Controller) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

// ClearCache drops every cached fragment.
func (c *Controller) ClearCache() {
	c.cache.Clear()
	c.log.Info().Msg("cache cleared")
}

// Open starts a new open cycle for url, superseding any cycle in progress.
func (c *Controller) Open(url, title string) {
	key := fetch.NormalizeURL(url)

	// A re-open inside the close animation or the clear grace window keeps
	// the shell and its body; neither pending step may run afterwards.
	c.stopTimers()
	if c.state == Closing {
		c.view.SetMarker(MarkerClosing, false)
	}

	c.generation++
	c.active = &Request{URL: key, Title: title, Generation: c.generation}
	c.swipe.Reset()

	c.transition(Opening)
	c.view.SetVisible(true)
	c.view.SetMarker(MarkerOpening, true)
	c.view.SetAriaHidden(false)
	c.view.SetScrollLocked(true)
	c.activateTrap()

	if c.cfg.CacheEnabled {
		if html, ok := c.cache.Get(key); ok {
			c.log.Debug().Str("url", key).Msg("loaded from cache")
			c.showContent(html, true)
			return
		}
	}

	c.transition(Loading)
	c.view.SetMarker(MarkerLoading, true)
	body, err := renderLoading(c.catalog, title)
	if err != nil {
		c.log.Error().Err(err).Msg("panel render failed")
	}
	c.replaceBody(body)

	gen := c.generation
	ctx := c.ctx
	fetcher := c.fetcher
	c.sched.Async(func() func() {
		html, err := fetcher.Fetch(ctx, key)
		return func() { c.resolve(gen, key, html, err) }
	})
}

// resolve applies a finished fetch. Successful results are always cached;
// they reach the body only while their cycle is still the current one.
func (c *Controller) resolve(gen uint64, key, html string, err error) {
	if err == nil && c.cfg.CacheEnabled {
		c.cache.Put(key, html)
	}

	if gen != c.generation || c.state != Loading {
		c.log.Debug().
			Str("url", key).
			Uint64("generation", gen).
			Uint64("current", c.generation).
			Stringer("state", c.state).
			Bool("failed", err != nil).
			Msg("discarding superseded response")
		return
	}

	if err != nil {
		c.log.Warn().Err(err).Str("url", key).Msg("failed to load content")
		c.transition(Error)
		body, rerr := renderError(c.catalog, err.Error())
		if rerr != nil {
			c.log.Error().Err(rerr).Msg("panel render failed")
		}
		c.replaceBody(body)
		c.view.SetMarker(MarkerLoading, false)
		c.view.SetMarker(MarkerOpening, false)
		return
	}

	c.log.Debug().Str("url", key).Msg("content loaded")
	c.showContent(html, false)
}

func (c *Controller) showContent(html string, fromCache bool) {
	c.transition(Loaded)
	c.replaceBody(html)
	c.view.SetMarker(MarkerLoading, false)
	c.view.SetMarker(MarkerOpening, false)

	req := *c.active
	if c.reinit != nil {
		c.reinit.Reinitialize(req)
	}
	ev := Event{Name: EventContentLoaded, Request: req, FromCache: fromCache}
	for _, l := range c.listeners {
		l(ev)
	}
}

// Close starts the close animation. It is a no-op unless the overlay is
// open.
func (c *Controller) Close() {
	if !c.state.Dismissible() {
		return
	}
	c.transition(Closing)
	c.view.SetMarker(MarkerClosing, true)
	c.closeTimer = c.sched.AfterFunc(c.cfg.AnimationDuration, c.finishClose)
}

func (c *Controller) finishClose() {
	c.closeTimer = nil
	if c.state != Closing {
		return
	}

	c.view.SetVisible(false)
	c.view.SetMarker(MarkerClosing, false)
	c.view.SetMarker(MarkerLoading, false)
	c.view.SetMarker(MarkerOpening, false)
	c.view.SetAriaHidden(true)
	c.view.SetScrollLocked(false)
	c.trap.Deactivate()
	c.trap = nil
	c.active = nil
	c.transition(Closed)

	c.clearTimer = c.sched.AfterFunc(c.cfg.ClearGrace, func() {
		c.clearTimer = nil
		if c.state == Closed {
			c.view.ReplaceBody("")
		}
	})
}

func (c *Controller) stopTimers() {
	if c.closeTimer != nil {
		c.closeTimer.Stop()
		c.closeTimer = nil
	}
	if c.clearTimer != nil {
		c.clearTimer.Stop()
		c.clearTimer = nil
	}
}

// replaceBody swaps the body and rebuilds the focus trap over the new
// markup, so no trap ever references removed elements.
func (c *Controller) replaceBody(html string) {
	c.view.ReplaceBody(html)
	c.activateTrap()
}

func (c *Controller) activateTrap() {
	c.trap.Deactivate()
	c.trap = focustrap.Activate(c.view)
}

func (c *Controller) transition(to State) {
	from := c.state
	c.state = to

	t := Transition{From: from, To: to, At: c.now()}
	if c.active != nil {
		t.URL = c.active.URL
		t.Generation = c.active.Generation
	}
	c.log.Debug().
		Stringer("from", from).
		Stringer("to", to).
		Str("url", t.URL).
		Uint64("generation", t.Generation).
		Msg("overlay transition")
	if c.observer != nil {
		c.observer.Transition(t)
	}
}
