package storage

import (
	"sync"

	"github.com/nikbrunner/vt/internal/model"
)

// Autosaver persists snapshots asynchronously. Mutations hand it a value
// copy of the store and continue; durability is fire-and-forget relative
// to the in-memory update. Pending snapshots coalesce: only the most
// recent one is written.
//
// Write failures are reported on Errors and never fed back into the
// in-memory state, which stays the source of truth for the session.
type Autosaver struct {
	backend Storage

	mu      sync.Mutex
	pending []model.Item
	dirty   bool
	wake    chan struct{}
	done    chan struct{}
	closed  bool

	errs chan error
}

// NewAutosaver starts the writer goroutine for the given backend.
func NewAutosaver(backend Storage) *Autosaver {
	a := &Autosaver{
		backend: backend,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		errs:    make(chan error, 8),
	}
	go a.run()
	return a
}

// Save schedules a snapshot for persistence and returns immediately,
// replacing any snapshot still waiting to be written.
func (a *Autosaver) Save(items []model.Item) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.pending = items
	a.dirty = true
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
}

// Errors delivers write failures. The channel is buffered; when nobody
// listens, old failures are dropped rather than blocking the writer.
func (a *Autosaver) Errors() <-chan error {
	return a.errs
}

// Close flushes the latest pending snapshot and stops the writer.
func (a *Autosaver) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	a.mu.Unlock()

	select {
	case a.wake <- struct{}{}:
	default:
	}
	<-a.done
}

func (a *Autosaver) run() {
	defer close(a.done)
	for {
		<-a.wake

		for {
			a.mu.Lock()
			items := a.pending
			dirty := a.dirty
			a.dirty = false
			closed := a.closed
			a.mu.Unlock()

			if !dirty {
				if closed {
					return
				}
				break
			}

			if err := a.backend.Save(items); err != nil {
				select {
				case a.errs <- err:
				default:
				}
			}
		}
	}
}
