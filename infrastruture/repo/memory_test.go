package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepo(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	r := NewMemoryRepo(time.Minute)
	r.now = func() time.Time { return now }

	id := uuid.New()
	doc := []byte(`{"width":2}`)

	t.Run("Save and ByID", func(t *testing.T) {
		require.NoError(t, r.Save(ctx, &i.StoredMaze{ID: id, Document: doc, CreatedAt: now}))

		got, err := r.ByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, doc, got.Document)
		assert.Equal(t, now, got.CreatedAt)

		// Returned documents are copies.
		got.Document[0] = 'x'
		again, err := r.ByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, doc, again.Document)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		_, err := r.ByID(ctx, uuid.New())
		assert.ErrorIs(t, err, i.ErrMazeNotFound)
		assert.ErrorIs(t, r.Delete(ctx, uuid.New()), i.ErrMazeNotFound)
	})

	t.Run("Expired documents disappear", func(t *testing.T) {
		old := uuid.New()
		require.NoError(t, r.Save(ctx, &i.StoredMaze{ID: old, Document: doc, CreatedAt: now.Add(-2 * time.Minute)}))

		_, err := r.ByID(ctx, old)
		assert.ErrorIs(t, err, i.ErrMazeNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, r.Delete(ctx, id))
		_, err := r.ByID(ctx, id)
		assert.ErrorIs(t, err, i.ErrMazeNotFound)
	})
}

func TestKeyLocker(t *testing.T) {
	l := NewKeyLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for n := 0; n < 8; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "same")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.locks)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err := l.Lock(cancelled, "other")
	assert.ErrorIs(t, err, context.Canceled)
}
