package cache

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const (
	KindDefinition = "definition"
	KindValidation = "validation"
)

// Record is one cached lookup. Found is false for a confirmed negative answer
// (e.g. "not a dictionary word").
type Record struct {
	Value     string
	Found     bool
	FetchedAt time.Time
}

// Store persists lookup results in SQLite.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// Open opens dsn, applies migrations and returns a Store whose records
// expire after ttl (0 keeps them forever).
func Open(dsn string, ttl time.Duration) (*Store, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, ttl: ttl}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Get returns the record for (kind, word). ok is false on a miss or when the
// record is older than the TTL.
func (s *Store) Get(ctx context.Context, kind, word string) (Record, bool, error) {
	var (
		r       Record
		found   int
		fetched string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT value, found, fetched_at FROM lookups WHERE kind=? AND word=?`, kind, word,
	).Scan(&r.Value, &found, &fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	r.Found = found == 1
	r.FetchedAt, _ = time.Parse(time.RFC3339, fetched)
	if s.ttl > 0 && time.Since(r.FetchedAt) > s.ttl {
		return Record{}, false, nil
	}
	return r, true, nil
}

// Put inserts or replaces the record for (kind, word).
func (s *Store) Put(ctx context.Context, kind, word string, r Record) error {
	found := 0
	if r.Found {
		found = 1
	}
	if r.FetchedAt.IsZero() {
		r.FetchedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO lookups (kind, word, value, found, fetched_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(kind, word) DO UPDATE SET
            value=excluded.value, found=excluded.found, fetched_at=excluded.fetched_at`,
		kind, word, r.Value, found, r.FetchedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// count returns the number of cached records of kind.
func (s *Store) count(ctx context.Context, kind string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM lookups WHERE kind=?`, kind).Scan(&n)
	return n, err
}
