package main

import (
	"fmt"
	"sync"
	"time"
)

// dedupStore tracks which reaction events have already been handled. Keys
// older than ttl are swept out lazily on insert; ttl <= 0 keeps keys for the
// life of the process.
type dedupStore struct {
	mu        sync.Mutex
	seen      map[string]time.Time
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

const sweepInterval = time.Minute

func newDedupStore(ttl time.Duration) *dedupStore {
	return &dedupStore{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func dedupKey(channel, ts, user, emoji string) string {
	return fmt.Sprintf("%s|%s|%s|%s", channel, ts, user, emoji)
}

// Contains reports whether the key is already recorded, without recording it.
func (d *dedupStore) Contains(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.containsLocked(key)
}

// Record inserts the key and reports whether it was new. The check and the
// insert happen under one lock acquisition so two concurrent deliveries of
// the same reaction cannot both win.
func (d *dedupStore) Record(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sweepLocked()
	if d.containsLocked(key) {
		return false
	}
	d.seen[key] = d.now()
	return true
}

func (d *dedupStore) containsLocked(key string) bool {
	inserted, ok := d.seen[key]
	if !ok {
		return false
	}
	if d.ttl > 0 && d.now().Sub(inserted) > d.ttl {
		delete(d.seen, key)
		return false
	}
	return true
}

func (d *dedupStore) sweepLocked() {
	if d.ttl <= 0 {
		return
	}
	now := d.now()
	if now.Sub(d.lastSweep) < sweepInterval {
		return
	}
	d.lastSweep = now
	for key, inserted := range d.seen {
		if now.Sub(inserted) > d.ttl {
			delete(d.seen, key)
		}
	}
}
