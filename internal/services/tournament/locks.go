package tournament

import (
	"sync"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// codeLocks serializes mutations per tournament within this process only;
// the server assumes it is the sole writer to its storage backend. Entries
// are reference counted and dropped once no caller holds or waits on them.
type codeLocks struct {
	mu    sync.Mutex
	locks map[model.TournamentCode]*codeLock
}

type codeLock struct {
	mu   sync.Mutex
	refs int
}

func newCodeLocks() *codeLocks {
	return &codeLocks{locks: make(map[model.TournamentCode]*codeLock)}
}

// lock blocks until the tournament is free and returns the matching unlock
func (l *codeLocks) lock(code model.TournamentCode) func() {
	l.mu.Lock()
	entry, ok := l.locks[code]
	if !ok {
		entry = &codeLock{}
		l.locks[code] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, code)
		}
		l.mu.Unlock()
	}
}

// size returns the number of tracked tournaments
func (l *codeLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
