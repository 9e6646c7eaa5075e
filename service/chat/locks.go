package chat

import (
	"fmt"
	"sync"
)

// keyedLocks serializes work per key. The append-evaluate-materialize
// sequence must hold the session lock for its whole duration so two
// concurrent turns cannot both observe the same pre-threshold counter.
type keyedLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key and returns its unlock func. Lock entries
// are kept for the process lifetime; the key space (active sessions and
// user/influencer pairs) is small.
func (k *keyedLocks) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func sessionKey(sessionID uint) string {
	return fmt.Sprintf("session:%d", sessionID)
}

func pairKey(userID uint, influencer string) string {
	return fmt.Sprintf("pair:%d:%s", userID, influencer)
}
