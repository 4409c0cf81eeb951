package auth

import (
	"sync"
	"time"
)

// Denylist holds revoked token ids until the tokens would have expired anyway.
type Denylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewDenylist(now func() time.Time) *Denylist {
	if now == nil {
		now = time.Now
	}
	return &Denylist{entries: make(map[string]time.Time), now: now}
}

func (d *Denylist) Add(id string, until time.Time) {
	if id == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[id] = until
}

func (d *Denylist) Contains(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.entries[id]
	return ok && d.now().Before(until)
}

// Purge drops entries whose tokens have expired and returns how many it removed.
func (d *Denylist) Purge() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	removed := 0
	for id, until := range d.entries {
		if !now.Before(until) {
			delete(d.entries, id)
			removed++
		}
	}
	return removed
}

func (d *Denylist) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
