package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// SingleFlight deduplicates concurrent calls for the same key.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*call
}

type call struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key for all concurrent callers. The bool reports
// whether the result was shared with an in-flight call.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	c, leader := g.join(key)
	if !leader {
		<-c.done
		return c.val, c.err, true
	}
	g.run(key, c, fn)
	return c.val, c.err, false
}

// DoDetached runs fn once per key under a context that keeps the values of
// the first caller's ctx but not its cancellation, bounded by timeout when
// timeout > 0. Every caller, the first included, returns early with
// ctx.Err() when its own context ends while fn keeps running for the rest.
func (g *SingleFlight) DoDetached(ctx context.Context, key string, timeout time.Duration, fn func(context.Context) (any, error)) (any, error, bool) {
	c, leader := g.join(key)
	if leader {
		runCtx := context.WithoutCancel(ctx)
		go g.run(key, c, func() (any, error) {
			if timeout > 0 {
				var cancel context.CancelFunc
				runCtx, cancel = context.WithTimeout(runCtx, timeout)
				defer cancel()
			}
			return fn(runCtx)
		})
	}

	select {
	case <-c.done:
		return c.val, c.err, !leader
	case <-ctx.Done():
		return nil, ctx.Err(), !leader
	}
}

func (g *SingleFlight) join(key string) (*call, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.calls == nil {
		g.calls = make(map[string]*call)
	}
	if c, ok := g.calls[key]; ok {
		return c, false
	}

	c := &call{done: make(chan struct{})}
	g.calls[key] = c
	return c, true
}

// run turns a panic in fn into the call's error so waiters are released.
func (g *SingleFlight) run(key string, c *call, fn func() (any, error)) {
	defer func() {
		if rec := recover(); rec != nil {
			c.val, c.err = nil, fmt.Errorf("singleflight %s: panic: %v", key, rec)
		}
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(c.done)
	}()
	c.val, c.err = fn()
}
