package resilience

import (
	"fmt"
	"sync"
)

// SingleFlight deduplicates concurrent calls for the same key. The zero value is ready to use.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*flightCall
}

type flightCall struct {
	done chan struct{}
	val  any
	err  error
}

// Do runs fn once per key at a time; callers arriving while it runs get the same result
// and shared=true. A panic in fn is returned to every caller as an error.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (value any, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flightCall)
	}
	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err, true
	}

	c := &flightCall{done: make(chan struct{})}
	g.calls[key] = c
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		close(c.done)
	}()

	c.val, c.err = g.call(key, fn)
	return c.val, c.err, false
}

// InFlight reports whether a call for key is currently running.
func (g *SingleFlight) InFlight(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.calls[key]
	return ok
}

func (g *SingleFlight) call(key string, fn func() (any, error)) (val any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("singleflight %s: panic: %v", key, r)
		}
	}()
	return fn()
}
