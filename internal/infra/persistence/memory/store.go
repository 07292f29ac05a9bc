// Package memory provides an in-process snippet persistence adapter used for
// tests and ephemeral runs.
package memory

import (
	"context"
	"sync"

	"snip/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

// Store keeps a deep copy of the last saved collection.
type Store struct {
	mu       sync.RWMutex
	snippets []domain.Snippet
	saves    int
	saveErr  error
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{snippets: []domain.Snippet{}}
}

// NewStoreWith seeds the store with snippets, as if they had been saved earlier.
func NewStoreWith(snippets []domain.Snippet) *Store {
	s := NewStore()
	s.snippets = domain.CloneSnippets(snippets)
	return s
}

func (s *Store) Driver() domain.StorageDriver { return domain.StorageMemory }

func (s *Store) Load(ctx context.Context) ([]domain.Snippet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.CloneSnippets(s.snippets)
	if out == nil {
		out = []domain.Snippet{}
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, snippets []domain.Snippet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.snippets = domain.CloneSnippets(snippets)
	s.saves++
	return nil
}

// Saves reports how many successful saves the store has seen.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

// FailSaves makes every subsequent Save return err; nil restores normal behaviour.
func (s *Store) FailSaves(err error) {
	s.mu.Lock()
	s.saveErr = err
	s.mu.Unlock()
}
