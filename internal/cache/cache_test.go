package cache_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/xuyisen-x/oxidice/internal/cache"
)

func TestGetOrCompileCachesOnSecondCall(t *testing.T) {
	c := cache.New()
	var builds int32

	build := func() (*cache.Graph, error) {
		atomic.AddInt32(&builds, 1)
		return &cache.Graph{}, nil
	}

	if _, err := c.GetOrCompile("1d6", build); err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}
	if _, err := c.GetOrCompile("1d6", build); err != nil {
		t.Fatalf("GetOrCompile: %v", err)
	}
	if got := atomic.LoadInt32(&builds); got != 1 {
		t.Fatalf("builds = %d, want 1", got)
	}
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", c.Len())
	}
}

func TestGetOrCompileDeduplicatesConcurrentMisses(t *testing.T) {
	c := cache.New()
	var builds int32
	start := make(chan struct{})

	build := func() (*cache.Graph, error) {
		<-start
		atomic.AddInt32(&builds, 1)
		return &cache.Graph{}, nil
	}

	var wg sync.WaitGroup
	const n = 8
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := c.GetOrCompile("2d20kh1", build); err != nil {
				t.Errorf("GetOrCompile: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&builds); got != 1 {
		t.Fatalf("builds = %d, want 1 (singleflight should dedupe concurrent misses)", got)
	}
}

func TestGetOrCompileDoesNotCacheAnError(t *testing.T) {
	c := cache.New()
	wantErr := errors.New("boom")
	_, err := c.GetOrCompile("bad expr", func() (*cache.Graph, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if c.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 after a failed build", c.Len())
	}

	// A retry after the failure should invoke build again, not replay it.
	var builds int32
	_, err = c.GetOrCompile("bad expr", func() (*cache.Graph, error) {
		atomic.AddInt32(&builds, 1)
		return &cache.Graph{}, nil
	})
	if err != nil {
		t.Fatalf("GetOrCompile retry: %v", err)
	}
	if builds != 1 {
		t.Fatalf("builds = %d, want 1", builds)
	}
}
