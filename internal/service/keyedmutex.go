package service

import "sync"

// KeyedMutex serializes work per listing id.  The availability check
// and the subsequent insert are not atomic on their own; holding the
// listing's lock across both closes the window where two overlapping
// requests could each pass the check before either write lands.
// Entries are reference-counted so the map does not grow with the
// number of listings ever seen.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[uint64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewKeyedMutex returns an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[uint64]*lockEntry)}
}

// Lock acquires the lock for key and returns the matching unlock
// function.  Callers must invoke the returned function exactly once.
func (k *KeyedMutex) Lock(key uint64) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &lockEntry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
