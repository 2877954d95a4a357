// Package journal persists overlay state transitions so a session's
// lifecycle can be inspected after the fact.
package journal

import "time"

// Entry is one recorded state transition.
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	Generation uint64    `json:"generation"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	URL        string    `json:"url,omitempty"`
}
