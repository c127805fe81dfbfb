// Package store holds the movie list fetched for the session.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rebeliceyang/lazymovies/internal/logger"
	"github.com/rebeliceyang/lazymovies/internal/models"
)

// FetchError wraps a failure to load the movie list
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch movies from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Status describes the load state of the store
type Status int

const (
	StatusEmpty Status = iota
	StatusLoading
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Store holds the fetched records. Load runs inside a background command, so
// the fields are guarded by a mutex even though every reader is the UI loop.
type Store struct {
	source Source

	mu      sync.RWMutex
	records []models.MovieRecord
	status  Status
	err     error
}

// New creates an empty store backed by source
func New(source Source) *Store {
	return &Store{
		source:  source,
		records: []models.MovieRecord{},
	}
}

// Load fetches the full movie list. On success the contents are replaced
// wholesale; on failure they are left as they were and a *FetchError is
// returned. Callers may ignore the error: the store simply stays empty.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.mu.Unlock()

	records, err := s.source.Fetch(ctx)
	if err != nil {
		fetchErr := &FetchError{Source: s.source.String(), Err: err}
		logger.Warnf("[store] %v", fetchErr)

		s.mu.Lock()
		s.status = StatusFailed
		s.err = fetchErr
		s.mu.Unlock()
		return fetchErr
	}

	s.mu.Lock()
	s.records = records
	s.status = StatusReady
	s.err = nil
	s.mu.Unlock()

	logger.Infof("[store] loaded %d movies from %s", len(records), s.source.String())
	return nil
}

// AllRecords returns the current records. The slice is shared with the
// store and must not be modified; it is never mutated after Load returns,
// so the same slice is returned until the next successful Load.
func (s *Store) AllRecords() []models.MovieRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clip(s.records)
}

// Status returns the current load state
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Err returns the error of the last failed load, if any
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Source returns the store's source
func (s *Store) Source() Source {
	return s.source
}
