package gate_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skyflip/internal/gate"
)

func TestExecuteMutualExclusion(t *testing.T) {
	rq := require.New(t)

	g := gate.New("auction").WithRetryDelay(time.Millisecond)

	var (
		active    atomic.Int32
		maxActive atomic.Int32
		wg        sync.WaitGroup
	)

	const callers = 8

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ok, err := g.Execute(context.Background(), "item", func(context.Context) bool {
				now := active.Add(1)
				defer active.Add(-1)

				for {
					seen := maxActive.Load()
					if now <= seen || maxActive.CompareAndSwap(seen, now) {
						break
					}
				}

				time.Sleep(2 * time.Millisecond)
				return true
			})

			rq.NoError(err)
			rq.True(ok)
		}()
	}

	wg.Wait()

	rq.Equal(int32(1), maxActive.Load(), "two actions overlapped inside one gate")
	rq.False(g.Busy(), "busy flag leaked after all calls returned")
}

func TestExecuteReleasesAfterPanic(t *testing.T) {
	rq := require.New(t)

	g := gate.New("bazaar").WithRetryDelay(time.Millisecond)

	ok, err := g.Execute(context.Background(), "item", func(context.Context) bool {
		panic("executor blew up")
	})
	rq.False(ok)
	rq.ErrorContains(err, "executor blew up")
	rq.False(g.Busy())

	// The very next call must not see contention.
	done := make(chan struct{})
	go func() {
		defer close(done)
		ok, err := g.Execute(context.Background(), "item", func(context.Context) bool { return true })
		rq.NoError(err)
		rq.True(ok)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("gate was not released after panic")
	}
}

func TestExecuteRequeuesUntilSlotFrees(t *testing.T) {
	rq := require.New(t)

	g := gate.New("auction").WithRetryDelay(5 * time.Millisecond)

	release := make(chan struct{})
	firstRunning := make(chan struct{})

	var order []string
	var mu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		_, err := g.Execute(context.Background(), "first", func(context.Context) bool {
			close(firstRunning)
			<-release

			mu.Lock()
			order = append(order, "first")
			mu.Unlock()
			return true
		})
		rq.NoError(err)
	}()

	<-firstRunning

	go func() {
		defer wg.Done()
		ok, err := g.Execute(context.Background(), "second", func(context.Context) bool {
			mu.Lock()
			order = append(order, "second")
			mu.Unlock()
			return true
		})
		rq.NoError(err)
		rq.True(ok)
	}()

	// Give the second caller time to hit the held gate at least once.
	time.Sleep(15 * time.Millisecond)
	close(release)

	wg.Wait()

	rq.Equal([]string{"first", "second"}, order)
	rq.False(g.Busy())
}

func TestExecuteFailureOutcomeStillReleases(t *testing.T) {
	rq := require.New(t)

	g := gate.New("bazaar")

	ok, err := g.Execute(context.Background(), "item", func(context.Context) bool { return false })
	rq.NoError(err)
	rq.False(ok)
	rq.False(g.Busy())
}

func TestExecuteBackoffAbortsOnContextCancel(t *testing.T) {
	rq := require.New(t)

	g := gate.New("auction").WithRetryDelay(10 * time.Second)

	firstRunning := make(chan struct{})
	release := make(chan struct{})

	go func() {
		_, _ = g.Execute(context.Background(), "holder", func(context.Context) bool {
			close(firstRunning)
			<-release
			return true
		})
	}()

	<-firstRunning

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	ok, err := g.Execute(ctx, "waiter", func(context.Context) bool { return true })
	rq.False(ok)
	rq.ErrorIs(err, context.Canceled)

	close(release)
}
