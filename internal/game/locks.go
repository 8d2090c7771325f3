package game

import "sync"

// sessionLocks hands out one mutex per session id so that concurrent guess
// submissions on the same session serialize instead of double-advancing a
// round. Entries are reference-counted and dropped when the last holder
// unlocks, so the map stays bounded by in-flight requests, not by sessions.
type sessionLocks struct {
	mu sync.Mutex
	m  map[int64]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// lock acquires the mutex for id and returns its release function.
func (l *sessionLocks) lock(id int64) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[int64]*lockEntry)
	}
	e, ok := l.m[id]
	if !ok {
		e = &lockEntry{}
		l.m[id] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, id)
		}
		l.mu.Unlock()
	}
}
