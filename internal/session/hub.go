package session

import (
	"context"
	"sort"
	"sync"
)

// Hub tracks live sessions.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Session)}
}

func (h *Hub) add(s *Session) {
	h.mu.Lock()
	h.sessions[s.id] = s
	h.mu.Unlock()
}

func (h *Hub) remove(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.id)
	h.mu.Unlock()
}

func (h *Hub) all() []*Session {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		out = append(out, s)
	}
	return out
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// ClearAll clears the content cache of every live session and returns how
// many sessions were asked to.
func (h *Hub) ClearAll() int {
	n := 0
	for _, s := range h.all() {
		if s.loop.Post(func() {
			if s.ctrl != nil {
				s.ctrl.ClearCache()
			}
		}) {
			n++
		}
	}
	return n
}

// List snapshots every live session, oldest connection first. Sessions that
// stop while being inspected are skipped.
func (h *Hub) List(ctx context.Context) []Info {
	var out []Info
	for _, s := range h.all() {
		var info Info
		if err := s.loop.Call(ctx, func() { info = s.snapshot() }); err != nil {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Connected.Before(out[j].Connected)
	})
	if out == nil {
		out = []Info{}
	}
	return out
}
