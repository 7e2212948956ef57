// Package lock provides a keyed mutex for serializing work per team.
//
// Schedule generation reads history, accumulates counters in memory and
// writes the replacement month; two concurrent runs for the same team would
// double-count the same base. Runs for different teams stay independent.
package lock

import "sync"

// Keyed hands out one mutex per key, created lazily.
type Keyed struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyed creates an empty keyed mutex set.
func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for key, creating it on first use.
func (k *Keyed) Lock(key string) {
	k.mutexFor(key).Lock()
}

// Unlock releases the mutex for key.
func (k *Keyed) Unlock(key string) {
	k.mutexFor(key).Unlock()
}

func (k *Keyed) mutexFor(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	return m
}
