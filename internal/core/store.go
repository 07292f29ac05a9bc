package core

import (
	"strings"

	"snip/pkg/domain"
)

// SnippetStore holds the ordered snippet collection for one invocation and
// enforces the unique-id invariant. It performs no I/O; persistence adapters
// feed it through Load and receive its contents through Snapshot.
type SnippetStore struct {
	snippets []Snippet
}

// NewSnippetStore returns an empty store.
func NewSnippetStore() *SnippetStore {
	return &SnippetStore{snippets: []Snippet{}}
}

// LoadSnippetStore builds a store from a decoded collection. Duplicate ids
// or non-positive ids are rejected as corrupt because every later operation
// relies on uniqueness.
func LoadSnippetStore(source string, snippets []Snippet) (*SnippetStore, error) {
	seen := make(map[int]struct{}, len(snippets))
	for _, s := range snippets {
		if s.ID <= 0 {
			return nil, &domain.CorruptStoreError{Source: source, Err: errInvalidID(s.ID)}
		}
		if _, dup := seen[s.ID]; dup {
			return nil, &domain.CorruptStoreError{Source: source, Err: errDuplicateID(s.ID)}
		}
		seen[s.ID] = struct{}{}
	}
	cloned := domain.CloneSnippets(snippets)
	if cloned == nil {
		cloned = []Snippet{}
	}
	return &SnippetStore{snippets: cloned}, nil
}

// Len reports how many snippets the store holds.
func (s *SnippetStore) Len() int { return len(s.snippets) }

// Snapshot returns a deep copy of the collection in insertion order.
func (s *SnippetStore) Snapshot() []Snippet {
	out := domain.CloneSnippets(s.snippets)
	if out == nil {
		return []Snippet{}
	}
	return out
}

// nextID is one past the largest id present, or 1 for an empty collection.
func (s *SnippetStore) nextID() int {
	maxID := 0
	for _, sn := range s.snippets {
		if sn.ID > maxID {
			maxID = sn.ID
		}
	}
	return maxID + 1
}

// Add appends a new snippet and returns it with its assigned id.
func (s *SnippetStore) Add(req AddRequest) (Snippet, error) {
	if err := req.Validate(); err != nil {
		return Snippet{}, err
	}
	created := Snippet{
		ID:       s.nextID(),
		Code:     req.Code,
		Language: req.Language,
		Tags:     append([]string{}, req.Tags...),
	}
	s.snippets = append(s.snippets, created)
	return domain.CloneSnippet(created), nil
}

// List returns every snippet in order when filter is nil, otherwise only
// those with at least one tag containing *filter as a substring. An empty
// filter still requires a tag, so untagged snippets never match it.
func (s *SnippetStore) List(filter *string) []Snippet {
	out := make([]Snippet, 0, len(s.snippets))
	for _, sn := range s.snippets {
		if filter != nil && !hasTagContaining(sn.Tags, *filter) {
			continue
		}
		out = append(out, domain.CloneSnippet(sn))
	}
	return out
}

func hasTagContaining(tags []string, filter string) bool {
	for _, t := range tags {
		if strings.Contains(t, filter) {
			return true
		}
	}
	return false
}

func (s *SnippetStore) indexOf(id int) int {
	for i, sn := range s.snippets {
		if sn.ID == id {
			return i
		}
	}
	return -1
}

// Get returns the snippet with the given id.
func (s *SnippetStore) Get(id int) (Snippet, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Snippet{}, domain.ErrNotFound{ID: id}
	}
	return domain.CloneSnippet(s.snippets[idx]), nil
}

// Remove excises the snippet with the given id, keeping the relative order of the rest.
func (s *SnippetStore) Remove(id int) (Snippet, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return Snippet{}, domain.ErrNotFound{ID: id}
	}
	removed := s.snippets[idx]
	s.snippets = append(s.snippets[:idx:idx], s.snippets[idx+1:]...)
	return removed, nil
}

// Pop removes the most recently added snippet: the one with the greatest id,
// which is also the last element whenever ids were assigned by Add.
func (s *SnippetStore) Pop() (Snippet, error) {
	if len(s.snippets) == 0 {
		return Snippet{}, domain.ErrEmptyStore
	}
	newest := 0
	for i, sn := range s.snippets {
		if sn.ID > s.snippets[newest].ID {
			newest = i
		}
	}
	return s.Remove(s.snippets[newest].ID)
}
