package assets

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextureCache_SameHandle(t *testing.T) {
	cache := NewTextureCache()
	var created atomic.Int32
	create := func(context.Context) (Texture, error) {
		created.Add(1)
		return &fakeTexture{}, nil
	}

	first, err := cache.Get(context.Background(), "brick.png", create)
	require.NoError(t, err)
	second, err := cache.Get(context.Background(), "brick.png", create)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), created.Load())
	assert.Equal(t, 1, cache.Creates())
}

func TestTextureCache_KeyedByRawFilename(t *testing.T) {
	cache := NewTextureCache()
	create := func(context.Context) (Texture, error) { return &fakeTexture{}, nil }

	a, _ := cache.Get(context.Background(), "tex/brick.png", create)
	b, _ := cache.Get(context.Background(), `tex\brick.png`, create)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, cache.Len())
}

func TestTextureCache_ConcurrentRequests(t *testing.T) {
	cache := NewTextureCache()
	var created atomic.Int32
	create := func(context.Context) (Texture, error) {
		created.Add(1)
		return &fakeTexture{}, nil
	}

	const n = 32
	results := make([]Texture, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tex, err := cache.Get(context.Background(), "glass.png", create)
			if err == nil {
				results[i] = tex
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	for _, tex := range results {
		assert.Same(t, results[0], tex)
	}
}

func TestTextureCache_FailureNotCached(t *testing.T) {
	cache := NewTextureCache()
	fail := func(context.Context) (Texture, error) { return nil, errors.New("bad image") }

	_, err := cache.Get(context.Background(), "bad.png", fail)
	require.Error(t, err)
	_, ok := cache.Lookup("bad.png")
	assert.False(t, ok)

	tex, err := cache.Get(context.Background(), "bad.png", func(context.Context) (Texture, error) {
		return &fakeTexture{}, nil
	})
	require.NoError(t, err)
	got, ok := cache.Lookup("bad.png")
	assert.True(t, ok)
	assert.Same(t, tex, got)
}
