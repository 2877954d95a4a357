package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ziadkadry99/overlaykit/internal/db"
)

// Store provides persistence for transition entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new entry. If entry.ID is empty a UUID is generated; a zero
// timestamp is replaced by the current time.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO overlay_transitions (
			id, timestamp, session_id, generation, from_state, to_state, url
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.UTC().Format(timeLayout),
		entry.SessionID,
		int64(entry.Generation),
		entry.From,
		entry.To,
		entry.URL,
	)
	if err != nil {
		return fmt.Errorf("inserting transition: %w", err)
	}
	return nil
}

// GetByID retrieves a single entry.
func (s *Store) GetByID(ctx context.Context, id string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, timestamp, session_id, generation, from_state, to_state, url
		FROM overlay_transitions WHERE id = ?`, id)
	return scanInto(row)
}

// QueryFilter controls which entries Query returns.
type QueryFilter struct {
	SessionID string
	To        string
	URL       string
	Since     *time.Time
	Limit     int
	Offset    int
}

// Query returns entries matching the filter, oldest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.SessionID != "" {
		clauses = append(clauses, "session_id = ?")
		args = append(args, filter.SessionID)
	}
	if filter.To != "" {
		clauses = append(clauses, "to_state = ?")
		args = append(args, filter.To)
	}
	if filter.URL != "" {
		clauses = append(clauses, "url = ?")
		args = append(args, filter.URL)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(timeLayout))
	}

	query := "SELECT id, timestamp, session_id, generation, from_state, to_state, url FROM overlay_transitions"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp ASC, rowid ASC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transitions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// DeleteBefore removes entries older than before and returns how many went.
func (s *Store) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM overlay_transitions WHERE timestamp < ?",
		before.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting old transitions: %w", err)
	}
	return res.RowsAffected()
}

// Millisecond precision keeps transitions of one open cycle ordered.
const timeLayout = "2006-01-02 15:04:05.000"

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (*Entry, error) {
	var (
		e   Entry
		ts  string
		gen int64
	)
	if err := sc.Scan(&e.ID, &ts, &e.SessionID, &gen, &e.From, &e.To, &e.URL); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning transition: %w", err)
	}
	e.Generation = uint64(gen)

	for _, layout := range []string{timeLayout, time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, ts); err == nil {
			e.Timestamp = t
			break
		}
	}
	return &e, nil
}
