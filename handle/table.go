// Package handle implements the process-wide handle table: the single
// read/write-lock-guarded map from an opaque uint32 to an owned *session.Session,
// plus the parallel error-handle table described in §4.6 and §7.
//
// Per §5's ordering rule, the table's lock is always released before a
// session's own per-session lock is acquired — Table methods only look up
// or install/remove a *session.Session; they never call into the session
// while still holding the table lock.
package handle

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sandialabs/elucidator-go/errs"
	"github.com/sandialabs/elucidator-go/session"
)

// Table is the process-wide session handle table. The zero value is not
// usable; construct one with New.
type Table struct {
	mu       sync.RWMutex
	sessions map[uint32]*session.Session
	next     uint32

	poisoned atomic.Bool
}

// New returns an empty, unpoisoned Table.
func New() *Table {
	return &Table{sessions: make(map[uint32]*session.Session)}
}

// Create installs a new session built with opts and returns its handle.
func (t *Table) Create(opts ...session.Option) (uint32, error) {
	if err := t.checkPoisoned(); err != nil {
		return 0, err
	}

	s, err := session.New(opts...)
	if err != nil {
		return 0, err
	}

	return withWriteLockPoisoning(t, func() (uint32, error) {
		t.next++
		id := t.next
		t.sessions[id] = s

		return id, nil
	})
}

// Lookup returns the session registered under id, or ErrUnknownSession.
func (t *Table) Lookup(id uint32) (*session.Session, error) {
	if err := t.checkPoisoned(); err != nil {
		return nil, err
	}

	return withReadLockPoisoning(t, func() (*session.Session, error) {
		s, ok := t.sessions[id]
		if !ok {
			return nil, fmt.Errorf("%w: handle %d", errs.ErrUnknownSession, id)
		}

		return s, nil
	})
}

// Release removes id from the table, or returns ErrUnknownSession if id
// names no live session. The handle-reuse tolerance in §4.6 only permits a
// released (or never-used) id to be assigned to a later Create call; it
// does not make releasing an invalid handle succeed.
func (t *Table) Release(id uint32) error {
	if err := t.checkPoisoned(); err != nil {
		return err
	}

	_, err := withWriteLockPoisoning(t, func() (struct{}, error) {
		if _, ok := t.sessions[id]; !ok {
			return struct{}{}, fmt.Errorf("%w: handle %d", errs.ErrUnknownSession, id)
		}

		delete(t.sessions, id)

		return struct{}{}, nil
	})

	return err
}

// Len returns the number of live sessions, for diagnostics.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.sessions)
}

func (t *Table) checkPoisoned() error {
	if t.poisoned.Load() {
		return errs.ErrPoisonedState
	}

	return nil
}

// withWriteLockPoisoning runs fn under the table's write lock, poisoning
// the table for every future call if fn panics. The panic is re-raised
// after poisoning, since PoisonedState is terminal and the caller's only
// remedy (per §4.6) is to restart the process.
func withWriteLockPoisoning[T any](t *Table, fn func() (T, error)) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			t.poisoned.Store(true)
			panic(r)
		}
	}()

	return fn()
}

func withReadLockPoisoning[T any](t *Table, fn func() (T, error)) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	defer func() {
		if r := recover(); r != nil {
			t.poisoned.Store(true)
			panic(r)
		}
	}()

	return fn()
}
