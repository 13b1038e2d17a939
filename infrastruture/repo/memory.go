package repo

import (
	"context"
	"sync"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

// MemoryRepo keeps maze documents in process memory.
type MemoryRepo struct {
	ttl   time.Duration
	now   func() time.Time
	mazes map[uuid.UUID]i.StoredMaze
	sync.RWMutex
}

var _ i.MazeStore = &MemoryRepo{}

// NewMemoryRepo creates an empty MemoryRepo. Documents older than ttl are
// treated as gone; a zero ttl keeps them forever.
func NewMemoryRepo(ttl time.Duration) *MemoryRepo {
	return &MemoryRepo{
		ttl:   ttl,
		now:   time.Now,
		mazes: make(map[uuid.UUID]i.StoredMaze),
	}
}

// Save inserts or replaces a maze document.
func (r *MemoryRepo) Save(_ context.Context, m *i.StoredMaze) error {
	r.Lock()
	defer r.Unlock()

	stored := *m
	stored.Document = append([]byte(nil), m.Document...)
	r.mazes[m.ID] = stored
	return nil
}

// ByID retrieves a maze document by its ID.
func (r *MemoryRepo) ByID(_ context.Context, id uuid.UUID) (*i.StoredMaze, error) {
	r.RLock()
	stored, ok := r.mazes[id]
	r.RUnlock()

	if !ok {
		return nil, i.ErrMazeNotFound
	}
	if r.expired(stored) {
		r.Lock()
		delete(r.mazes, id)
		r.Unlock()
		return nil, i.ErrMazeNotFound
	}

	stored.Document = append([]byte(nil), stored.Document...)
	return &stored, nil
}

// Delete removes a maze document.
func (r *MemoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.Lock()
	defer r.Unlock()

	stored, ok := r.mazes[id]
	if !ok || r.expired(stored) {
		delete(r.mazes, id)
		return i.ErrMazeNotFound
	}
	delete(r.mazes, id)
	return nil
}

func (r *MemoryRepo) expired(m i.StoredMaze) bool {
	return r.ttl > 0 && r.now().Sub(m.CreatedAt) >= r.ttl
}

// KeyLocker is an in-process i.Locker holding one mutex per key.
type KeyLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	waiters int
}

var _ i.Locker = &KeyLocker{}

// NewKeyLocker creates a KeyLocker.
func NewKeyLocker() *KeyLocker {
	return &KeyLocker{locks: make(map[string]*keyLock)}
}

// Lock blocks until key is free. The context is not consulted once waiting starts.
func (l *KeyLocker) Lock(ctx context.Context, key string) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	lock, ok := l.locks[key]
	if !ok {
		lock = &keyLock{}
		l.locks[key] = lock
	}
	lock.waiters++
	l.mu.Unlock()

	lock.Lock()
	return func() {
		lock.Unlock()
		l.mu.Lock()
		lock.waiters--
		if lock.waiters == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}, nil
}
