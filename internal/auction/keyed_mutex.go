package auction

import "sync"

// KeyedMutex serializes operations per image. Bid placement and the
// settlement sweep both take the image's lock, so a placement can never
// interleave with a settlement of the same image, and no two placements
// can validate against the same stale highest bid.
type KeyedMutex struct {
	locks sync.Map // key: imageID -> *sync.Mutex
}

// NewKeyedMutex creates a new KeyedMutex instance
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{}
}

// Lock acquires the mutex for key and returns its unlock function
func (k *KeyedMutex) Lock(key string) func() {
	value, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
