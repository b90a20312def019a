package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/darasa-lms/portal/core/session"
)

// Store keeps session records in process memory. Fine for a single portal
// instance; use the redis store when running more than one.
type Store struct {
	mu      sync.RWMutex
	records map[string]entry
}

type entry struct {
	rec       session.Record
	expiresAt time.Time
}

var _ session.Store = (*Store)(nil)

func New() *Store {
	return &Store{records: make(map[string]entry)}
}

func (s *Store) GetSession(_ context.Context, id string) (*session.Record, error) {
	s.mu.RLock()
	ent, ok := s.records[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(ent.expiresAt) {
		return nil, session.ErrNotFound
	}
	rec := ent.rec
	return &rec, nil
}

func (s *Store) PutSession(_ context.Context, rec *session.Record, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = entry{rec: *rec, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *Store) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// StartSweeper evicts expired records every interval until ctx is done.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(time.Now())
			}
		}
	}()
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ent := range s.records {
		if now.After(ent.expiresAt) {
			delete(s.records, id)
		}
	}
}
