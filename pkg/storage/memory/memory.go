// Package memory implements the storage contract over plain maps. It backs
// tests and single-process deployments; the global mutex gives the
// single-writer guarantee the service layer expects from any backing.
// Transactions stage changes on a deep copy of the state and swap it in on
// commit, so a rolled-back transaction leaves nothing behind.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"stays/pkg/domain"
	"stays/pkg/storage"
)

// state holds every entity map plus per-entity creation-order indexes.
type state struct {
	users     map[uuid.UUID]domain.User
	places    map[uuid.UUID]domain.Place
	amenities map[uuid.UUID]domain.Amenity
	reviews   map[uuid.UUID]domain.Review

	userOrder    []uuid.UUID
	placeOrder   []uuid.UUID
	amenityOrder []uuid.UUID
	reviewOrder  []uuid.UUID
}

func newState() *state {
	return &state{
		users:     map[uuid.UUID]domain.User{},
		places:    map[uuid.UUID]domain.Place{},
		amenities: map[uuid.UUID]domain.Amenity{},
		reviews:   map[uuid.UUID]domain.Review{},
	}
}

// clone returns a deep copy of the state. Entities are value types; the only
// reference field is the place amenity slice, copied element-wise.
func (s *state) clone() *state {
	c := newState()
	for id, u := range s.users {
		c.users[id] = u
	}
	for id, p := range s.places {
		p.AmenityIDs = append([]domain.AmenityID(nil), p.AmenityIDs...)
		c.places[id] = p
	}
	for id, a := range s.amenities {
		c.amenities[id] = a
	}
	for id, r := range s.reviews {
		c.reviews[id] = r
	}
	c.userOrder = append([]uuid.UUID(nil), s.userOrder...)
	c.placeOrder = append([]uuid.UUID(nil), s.placeOrder...)
	c.amenityOrder = append([]uuid.UUID(nil), s.amenityOrder...)
	c.reviewOrder = append([]uuid.UUID(nil), s.reviewOrder...)

	return c
}

// runner executes a function against some state, live or staged.
type runner interface {
	do(fn func(st *state) error) error
}

// ops implements every per-entity storage method on top of a runner, so the
// root handle and the transactional handle share one implementation.
type ops struct {
	r runner
}

// Ensure both handles satisfy the storage contract.
var (
	_ storage.Storage   = (*Memory)(nil)
	_ storage.TxStorage = (*memTx)(nil)
)

// Memory is the root, non-transactional handle. It implements
// storage.Storage.
type Memory struct {
	ops

	mu sync.Mutex
	st *state
}

// New creates an empty in-memory storage.
func New() *Memory {
	m := &Memory{st: newState()}
	m.ops = ops{r: m}

	return m
}

// Close is a no-op for the in-memory backing.
func (m *Memory) Close() error { return nil }

// Begin acquires the store lock and returns a transactional handle working
// on a deep copy of the state. The lock is held until Commit or Rollback, so
// at most one transaction runs at a time.
func (m *Memory) Begin(_ context.Context) (storage.TxStorage, error) {
	m.mu.Lock()

	tx := &memTx{parent: m, st: m.st.clone()}
	tx.ops = ops{r: tx}

	return tx, nil
}

// WithTx begins a transaction, invokes the callback with the transactional
// handle, and commits on success or rolls back on error.
func (m *Memory) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}

	if err := cb(tx); err != nil {
		_ = tx.Rollback()

		return err
	}

	return tx.Commit()
}

// do runs fn against the live state under the lock.
func (m *Memory) do(fn func(st *state) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return fn(m.st)
}

// memTx is a transactional handle staging changes on a private state copy.
// It implements storage.TxStorage.
type memTx struct {
	ops

	parent *Memory
	st     *state
	done   bool
}

// Commit publishes the staged state and releases the store lock.
func (t *memTx) Commit() error {
	if t.done {
		return storage.ErrNotInTx
	}
	t.done = true
	t.parent.st = t.st
	t.parent.mu.Unlock()

	return nil
}

// Rollback discards the staged state and releases the store lock.
func (t *memTx) Rollback() error {
	if t.done {
		return storage.ErrNotInTx
	}
	t.done = true
	t.parent.mu.Unlock()

	return nil
}

// do runs fn against the staged state. The lock is already held by Begin.
func (t *memTx) do(fn func(st *state) error) error {
	if t.done {
		return storage.ErrNotInTx
	}

	return fn(t.st)
}
