// Package memory holds the run-lifetime record of candidate names already
// offered, so no name is ever priced or checked twice.
package memory

import (
	"strings"
	"sync"
)

// Set is a grow-only set of names. Names are case-normalized so "Foo.COM"
// and "foo.com" count as one entry.
//
// Methods are safe for concurrent use; AddNew holds the lock across the
// whole batch so check-and-insert is indivisible.
type Set struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Seen reports whether name was already recorded.
func (s *Set) Seen(name string) bool {
	key := normalize(name)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[key]
	return ok
}

// AddNew records every name not seen before and returns those names,
// normalized, in input order. A name repeated within the batch comes back
// once; names seen in any earlier batch never come back.
func (s *Set) AddNew(names []string) []string {
	fresh := make([]string, 0, len(names))
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range names {
		key := normalize(name)
		if key == "" {
			continue
		}
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		fresh = append(fresh, key)
	}
	return fresh
}

// Len returns how many names have been recorded.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
