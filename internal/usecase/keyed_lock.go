package usecase

import "sync"

// KeyedLock serializes critical sections per string key. Join requests are
// serialized per team id and stock validation per item id, so invariant
// checks and their writes cannot interleave across requests.
type KeyedLock struct {
	locks sync.Map
}

// NewKeyedLock creates a new KeyedLock.
func NewKeyedLock() *KeyedLock {
	return &KeyedLock{}
}

// Lock acquires the mutex for the key, creating it on first use. Mutexes are
// kept for the process lifetime; key cardinality is bounded by the number of
// teams and items.
func (l *KeyedLock) Lock(key string) {
	mu, _ := l.locks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
}

// Unlock releases the mutex for the key.
func (l *KeyedLock) Unlock(key string) {
	mu, ok := l.locks.Load(key)
	if !ok {
		panic("usecase: unlock of unknown key " + key)
	}
	mu.(*sync.Mutex).Unlock()
}
