package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "vinom-maze"
	lockExpiry    = 10 * time.Second

	mazeKeyFmt = "%s:maze:%s"
	lockKeyFmt = "%s:lock:%s"

	documentField  = "document"
	createdAtField = "createdAt"
)

// RedisMazeStore keeps maze documents in Redis hashes with a TTL.
type RedisMazeStore struct {
	client *redis.Client
	locker *redsync.Redsync
	prefix string
	ttl    time.Duration
}

var (
	_ i.MazeStore = &RedisMazeStore{}
	_ i.Locker    = &RedisMazeStore{}
)

// NewRedisMazeStore initializes a RedisMazeStore with the provided Redis client and TTL.
// A zero ttlSeconds keeps documents until they are deleted.
func NewRedisMazeStore(client *redis.Client, prefix string, ttlSeconds int) *RedisMazeStore {
	if prefix == "" {
		prefix = defaultPrefix
	}

	store := &RedisMazeStore{
		client: client,
		prefix: prefix,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store
}

// Save writes the document and its creation time, then sets the expiration.
func (s *RedisMazeStore) Save(ctx context.Context, m *i.StoredMaze) error {
	key := s.mazeKey(m.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			documentField, m.Document,
			createdAtField, m.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	return err
}

// ByID retrieves a document by its ID.
func (s *RedisMazeStore) ByID(ctx context.Context, id uuid.UUID) (*i.StoredMaze, error) {
	fields, err := s.client.HGetAll(ctx, s.mazeKey(id)).Result()
	if err != nil {
		return nil, err
	}

	doc, ok := fields[documentField]
	if !ok {
		return nil, i.ErrMazeNotFound
	}

	createdAt, err := time.Parse(time.RFC3339Nano, fields[createdAtField])
	if err != nil {
		return nil, fmt.Errorf("maze %s has an invalid %s: %w", id, createdAtField, err)
	}

	return &i.StoredMaze{ID: id, Document: []byte(doc), CreatedAt: createdAt}, nil
}

// Delete removes a document.
func (s *RedisMazeStore) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.client.Del(ctx, s.mazeKey(id)).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return i.ErrMazeNotFound
	}
	return nil
}

// Lock takes a distributed lock on key so every replica sharing this Redis
// generates a seeded maze at most once.
func (s *RedisMazeStore) Lock(ctx context.Context, key string) (func(), error) {
	mutex := s.locker.NewMutex(fmt.Sprintf(lockKeyFmt, s.prefix, key), redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func (s *RedisMazeStore) mazeKey(id uuid.UUID) string {
	return fmt.Sprintf(mazeKeyFmt, s.prefix, id)
}
