// Package history persists classification outcomes for auditing. With a
// Postgres DSN it writes to a table; without one it keeps a bounded in-memory
// ring so the gateway API behaves the same either way.
package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saferoom-id/judolguard/pkg/detector"
)

// Entry is one recorded classification.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	IsGambling bool      `json:"is_gambling"`
	Confidence string    `json:"confidence"`
	Checkpoint float64   `json:"checkpoint"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store records entries and serves recent ones.
type Store interface {
	Record(ctx context.Context, text string, res *detector.Result) (uuid.UUID, error)
	Recent(ctx context.Context, limit int) ([]Entry, error)
	Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS scan_history (
	id UUID PRIMARY KEY,
	text TEXT NOT NULL,
	is_gambling BOOLEAN NOT NULL,
	confidence TEXT NOT NULL,
	checkpoint DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Open returns a Postgres-backed store when dsn is set, otherwise an
// in-memory ring of the given size.
func Open(ctx context.Context, dsn string, memorySize int) (Store, error) {
	if dsn == "" {
		return newMemoryStore(memorySize), nil
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("history: connect: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("history: ensure schema: %w", err)
	}
	return &pgStore{pool: pool}, nil
}

type pgStore struct {
	pool *pgxpool.Pool
}

func (s *pgStore) Record(ctx context.Context, text string, res *detector.Result) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO scan_history (id, text, is_gambling, confidence, checkpoint)
		 VALUES ($1, $2, $3, $4, $5)`,
		id, text, res.IsGambling, res.Confidence, res.Checkpoint)
	if err != nil {
		return uuid.Nil, fmt.Errorf("history: insert: %w", err)
	}
	return id, nil
}

func (s *pgStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, text, is_gambling, confidence, checkpoint, created_at
		 FROM scan_history ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Text, &e.IsGambling, &e.Confidence,
			&e.Checkpoint, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("history: scan row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *pgStore) Close() {
	s.pool.Close()
}

// memoryStore is a fixed-size ring. Oldest entries are overwritten once the
// ring fills.
type memoryStore struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	filled  bool
}

func newMemoryStore(size int) *memoryStore {
	if size <= 0 {
		size = 1024
	}
	return &memoryStore{entries: make([]Entry, size)}
}

func (s *memoryStore) Record(_ context.Context, text string, res *detector.Result) (uuid.UUID, error) {
	e := Entry{
		ID:         uuid.New(),
		Text:       text,
		IsGambling: res.IsGambling,
		Confidence: res.Confidence,
		Checkpoint: res.Checkpoint,
		CreatedAt:  time.Now().UTC(),
	}
	s.mu.Lock()
	s.entries[s.next] = e
	s.next++
	if s.next == len(s.entries) {
		s.next = 0
		s.filled = true
	}
	s.mu.Unlock()
	return e.ID, nil
}

func (s *memoryStore) Recent(_ context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	size := s.next
	if s.filled {
		size = len(s.entries)
	}
	if limit > size {
		limit = size
	}
	out := make([]Entry, 0, limit)
	// Walk backwards from the most recent slot.
	idx := s.next - 1
	for i := 0; i < limit; i++ {
		if idx < 0 {
			idx = len(s.entries) - 1
		}
		out = append(out, s.entries[idx])
		idx--
	}
	return out, nil
}

func (s *memoryStore) Close() {}
