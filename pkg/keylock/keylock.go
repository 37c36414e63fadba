// Package keylock provides per-key mutual exclusion for int64 keys.
package keylock

import (
	"context"
	"sort"
	"sync"
)

type entry struct {
	ch   chan struct{}
	refs int
}

// Locker hands out exclusive locks on individual keys. The zero value is not usable, use New.
type Locker struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

// New returns an empty Locker.
func New() *Locker {
	return &Locker{entries: make(map[int64]*entry)}
}

// LockAll acquires the locks of all keys in ascending order and returns a function releasing them.
//
// Duplicate keys are locked once. If ctx is done while waiting, the locks taken so far are
// released and ctx.Err() is returned.
func (l *Locker) LockAll(ctx context.Context, keys ...int64) (func(), error) {
	sorted := make([]int64, 0, len(keys))

	seen := make(map[int64]struct{}, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}

		seen[k] = struct{}{}
		sorted = append(sorted, k)
	}

	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	held := make([]int64, 0, len(sorted))

	for _, k := range sorted {
		if err := l.lock(ctx, k); err != nil {
			l.releaseAll(held)
			return nil, err
		}

		held = append(held, k)
	}

	var once sync.Once

	return func() { once.Do(func() { l.releaseAll(held) }) }, nil
}

// Len returns the number of keys currently locked or waited on.
func (l *Locker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.entries)
}

func (l *Locker) lock(ctx context.Context, key int64) error {
	l.mu.Lock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.entries[key] = e
	}

	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.deref(key, e)
		return ctx.Err()
	}
}

func (l *Locker) releaseAll(keys []int64) {
	for i := len(keys) - 1; i >= 0; i-- {
		l.mu.Lock()
		e := l.entries[keys[i]]
		l.mu.Unlock()

		<-e.ch
		l.deref(keys[i], e)
	}
}

func (l *Locker) deref(key int64, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
