package resilience

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("refresh:1", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
}

func TestSingleFlight_DoDetached_WaiterHonoursCancel(t *testing.T) {
	var g SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})

	go func() {
		_, _, _ = g.DoDetached(context.Background(), "refresh:1", 0, func(context.Context) (any, error) {
			close(started)
			<-release
			return "late", nil
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err, shared := g.DoDetached(ctx, "refresh:1", 0, func(context.Context) (any, error) {
		t.Errorf("waiter must not run fn")
		return nil, nil
	})
	close(release)

	if !shared {
		t.Fatalf("expected waiter to join the in-flight call")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestSingleFlight_KeyReleasedAfterCall(t *testing.T) {
	var g SingleFlight
	var counter int32

	for i := 0; i < 3; i++ {
		_, _, shared := g.Do("k", func() (any, error) {
			atomic.AddInt32(&counter, 1)
			return nil, nil
		})
		if shared {
			t.Fatalf("sequential calls must not be shared")
		}
	}
	if got := atomic.LoadInt32(&counter); got != 3 {
		t.Fatalf("expected 3 runs, got %d", got)
	}
}

func TestSingleFlight_DoDetached_FirstCallerCancelDoesNotFailOthers(t *testing.T) {
	var g SingleFlight
	release := make(chan struct{})
	started := make(chan struct{})

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err, shared := g.DoDetached(leaderCtx, "fixtures", time.Second, func(ctx context.Context) (any, error) {
			close(started)
			select {
			case <-release:
				return "fresh", nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		})
		if shared {
			t.Errorf("first caller must start the call")
		}
		leaderErr <- err
	}()
	<-started

	followerVal := make(chan any, 1)
	go func() {
		v, err, shared := g.DoDetached(context.Background(), "fixtures", time.Second, func(context.Context) (any, error) {
			t.Errorf("follower must not run fn")
			return nil, nil
		})
		if err != nil || !shared {
			t.Errorf("expected shared success, got err=%v shared=%v", err, shared)
		}
		followerVal <- v
	}()

	cancelLeader()
	if err := <-leaderErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected first caller to see its own cancel, got %v", err)
	}

	// Let the follower join before the shared call completes.
	time.Sleep(10 * time.Millisecond)
	close(release)
	if v := <-followerVal; v != "fresh" {
		t.Fatalf("expected follower to get the shared value, got %v", v)
	}
}

func TestSingleFlight_DoDetached_Timeout(t *testing.T) {
	var g SingleFlight
	_, err, _ := g.DoDetached(context.Background(), "slow", 10*time.Millisecond, func(ctx context.Context) (any, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected detached timeout, got %v", err)
	}
}

func TestSingleFlight_PanicBecomesError(t *testing.T) {
	var g SingleFlight
	_, err, _ := g.Do("boom", func() (any, error) { panic("bad payload") })
	if err == nil {
		t.Fatalf("expected panic to surface as error")
	}
	if _, err, shared := g.Do("boom", func() (any, error) { return 1, nil }); err != nil || shared {
		t.Fatalf("expected key to be released after panic, err=%v shared=%v", err, shared)
	}
}
