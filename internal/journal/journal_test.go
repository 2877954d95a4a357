package journal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/overlaykit/internal/db"
	"github.com/ziadkadry99/overlaykit/internal/overlay"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndGetByID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	entry := Entry{
		ID:         "t-1",
		SessionID:  "s-1",
		Generation: 3,
		From:       "loading",
		To:         "loaded",
		URL:        "https://shop.example/category/a",
	}
	if err := store.Log(ctx, entry); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.GetByID(ctx, "t-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.SessionID != "s-1" {
		t.Errorf("SessionID = %q, want %q", got.SessionID, "s-1")
	}
	if got.Generation != 3 {
		t.Errorf("Generation = %d, want 3", got.Generation)
	}
	if got.From != "loading" || got.To != "loaded" {
		t.Errorf("transition = %s -> %s, want loading -> loaded", got.From, got.To)
	}
	if got.URL != entry.URL {
		t.Errorf("URL = %q, want %q", got.URL, entry.URL)
	}
	if got.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestLogGeneratesID(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Entry{SessionID: "s", From: "closed", To: "opening"}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	entries, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].ID == "" {
		t.Error("expected generated ID")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := setupStore(t)
	if _, err := store.GetByID(context.Background(), "missing"); err == nil {
		t.Fatal("expected error for missing entry")
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	seed := []Entry{
		{SessionID: "a", From: "closed", To: "opening", URL: "/x", Timestamp: base},
		{SessionID: "a", From: "opening", To: "loading", URL: "/x", Timestamp: base.Add(time.Millisecond)},
		{SessionID: "a", From: "loading", To: "loaded", URL: "/x", Timestamp: base.Add(2 * time.Millisecond)},
		{SessionID: "b", From: "closed", To: "opening", URL: "/y", Timestamp: base.Add(time.Hour)},
	}
	for _, e := range seed {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	got, err := store.Query(ctx, QueryFilter{SessionID: "a"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("session a: got %d, want 3", len(got))
	}
	if got[0].To != "opening" || got[2].To != "loaded" {
		t.Errorf("entries out of order: %v", got)
	}

	got, _ = store.Query(ctx, QueryFilter{To: "opening"})
	if len(got) != 2 {
		t.Errorf("state Opening: got %d, want 2", len(got))
	}

	got, _ = store.Query(ctx, QueryFilter{URL: "/y"})
	if len(got) != 1 {
		t.Errorf("url /y: got %d, want 1", len(got))
	}

	since := base.Add(30 * time.Minute)
	got, _ = store.Query(ctx, QueryFilter{Since: &since})
	if len(got) != 1 || got[0].SessionID != "b" {
		t.Errorf("since: got %v", got)
	}

	got, _ = store.Query(ctx, QueryFilter{Limit: 2, Offset: 1})
	if len(got) != 2 || got[0].To != "loading" {
		t.Errorf("limit/offset: got %v", got)
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	old := time.Now().Add(-48 * time.Hour)

	store.Log(ctx, Entry{SessionID: "s", From: "closed", To: "opening", Timestamp: old})
	store.Log(ctx, Entry{SessionID: "s", From: "opening", To: "loading"})

	n, err := store.DeleteBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted %d, want 1", n)
	}
	got, _ := store.Query(ctx, QueryFilter{})
	if len(got) != 1 {
		t.Errorf("remaining %d, want 1", len(got))
	}
}

func TestRecorderWritesTransitions(t *testing.T) {
	store := setupStore(t)
	rec := NewRecorder(store, zerolog.Nop(), 0)

	obs := rec.Observer("sess-1")
	at := time.Now()
	obs.Transition(overlay.Transition{From: overlay.Closed, To: overlay.Opening, URL: "/c", Generation: 1, At: at})
	obs.Transition(overlay.Transition{From: overlay.Opening, To: overlay.Loading, URL: "/c", Generation: 1, At: at.Add(time.Millisecond)})
	rec.Close()

	got, err := store.Query(context.Background(), QueryFilter{SessionID: "sess-1"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].From != "closed" || got[1].To != "loading" {
		t.Errorf("unexpected entries: %v", got)
	}

	// Transitions after Close are ignored rather than panicking.
	obs.Transition(overlay.Transition{From: overlay.Loading, To: overlay.Loaded})
	rec.Close()
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	store.Log(ctx, Entry{ID: "r-1", SessionID: "a", From: "closed", To: "opening", URL: "/x"})
	store.Log(ctx, Entry{ID: "r-2", SessionID: "b", From: "closed", To: "opening", URL: "/y"})

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest("GET", "/api/transitions/?session=a", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("query status = %d", w.Code)
	}
	var entries []Entry
	if err := json.NewDecoder(w.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "r-1" {
		t.Errorf("entries = %v", entries)
	}

	req = httptest.NewRequest("GET", "/api/transitions/r-2", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}

	req = httptest.NewRequest("GET", "/api/transitions/nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d, want 404", w.Code)
	}
}
