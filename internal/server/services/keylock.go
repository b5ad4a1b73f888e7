package services

import (
	"context"
	"sync"
)

// keyLock is a table of per-key mutexes. Entries are reference counted and
// removed when the last holder or waiter leaves, so the table only holds keys
// that are currently in use.
type keyLock struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	ch   chan struct{}
	refs int
}

func newKeyLock() *keyLock {
	return &keyLock{locks: make(map[string]*refLock)}
}

// Lock acquires the mutex for key, giving up when ctx is done. The returned
// function releases it and must be called exactly once.
func (k *keyLock) Lock(ctx context.Context, key string) (func(), error) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{ch: make(chan struct{}, 1)}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	select {
	case l.ch <- struct{}{}:
		return func() {
			<-l.ch
			k.deref(key, l)
		}, nil
	case <-ctx.Done():
		k.deref(key, l)
		return nil, ctx.Err()
	}
}

func (k *keyLock) deref(key string, l *refLock) {
	k.mu.Lock()
	defer k.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
}

func (k *keyLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
