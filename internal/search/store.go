package search

import (
	"sync"
)

// resultStore holds the per-directory match counts of the current search
type resultStore struct {
	counts map[string]int
	sync.RWMutex
}

func newResultStore() *resultStore {
	return &resultStore{
		counts: make(map[string]int),
	}
}

func (s *resultStore) reset() {
	s.Lock()
	defer s.Unlock()
	s.counts = make(map[string]int)
}

func (s *resultStore) increment(key string) {
	s.Lock()
	defer s.Unlock()
	s.counts[key]++
}

// snapshot returns a copy that later increments cannot reach
func (s *resultStore) snapshot() Result {
	s.RLock()
	defer s.RUnlock()
	return Result(s.counts).Clone()
}
