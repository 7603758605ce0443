// Package lock serializes mutations of account-scoped state inside one process.
package lock

import (
	"sync"
)

// Mode selects shared or exclusive access.
type Mode int

const (
	// Read locks may be held by many callers at once.
	Read Mode = iota
	// Write locks exclude both readers and writers of the same key.
	Write
)

func (m Mode) String() string {
	if m == Write {
		return "write"
	}
	return "read"
}

// Registry hands out one RWMutex per key. Keys are created lazily and never
// evicted, so the table grows with the set of account IDs ever touched.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// NewRegistry creates an empty lock table.
func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.RWMutex)}
}

// Handle releases an acquired lock. The zero Handle releases nothing.
type Handle struct {
	key  string
	mode Mode
	mu   *sync.RWMutex
	once *sync.Once
}

// Key returns the locked key.
func (h Handle) Key() string {
	return h.key
}

// Release unlocks. Calling it more than once is safe.
func (h Handle) Release() {
	if h.mu == nil {
		return
	}
	h.once.Do(func() {
		if h.mode == Write {
			h.mu.Unlock()
		} else {
			h.mu.RUnlock()
		}
	})
}

// Acquire blocks until the lock for key is held in mode. An empty key takes no lock.
func (r *Registry) Acquire(key string, mode Mode) Handle {
	if key == "" {
		return Handle{}
	}
	mu := r.mutex(key)
	if mode == Write {
		mu.Lock()
	} else {
		mu.RLock()
	}
	return Handle{key: key, mode: mode, mu: mu, once: &sync.Once{}}
}

// WithLock runs fn while holding the lock for key.
func (r *Registry) WithLock(key string, mode Mode, fn func() error) error {
	h := r.Acquire(key, mode)
	defer h.Release()
	return fn()
}

// Call runs fn under the lock for key and returns its result.
func Call[T any](r *Registry, key string, mode Mode, fn func() (T, error)) (T, error) {
	h := r.Acquire(key, mode)
	defer h.Release()
	return fn()
}

// Len returns how many keys have been created.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}

func (r *Registry) mutex(key string) *sync.RWMutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	mu, ok := r.locks[key]
	if !ok {
		mu = &sync.RWMutex{}
		r.locks[key] = mu
	}
	return mu
}
