package mainloop

import (
	"sync"
	"time"
)

// Scheduler runs fn once after delay and returns a function that cancels it.
// The cancel function reports whether fn was still pending.
type Scheduler func(delay time.Duration, fn func()) (cancel func() bool)

// AfterFunc is the wall-clock Scheduler.
func AfterFunc(delay time.Duration, fn func()) func() bool {
	return time.AfterFunc(delay, fn).Stop
}

// Coalescer merges bursts of same-key tasks into one trailing call. Every
// Post restarts the key's quiet period; when it elapses the most recent
// callback is handed to post, normally Loop.Post.
type Coalescer struct {
	mu        sync.Mutex
	delay     time.Duration
	schedule  Scheduler
	post      func(func())
	timers    map[string]func() bool
	callbacks map[string]func()
	// gens counts Posts per key; a fire carrying an older count is stale.
	gens      map[string]uint64
	destroyed bool
}

// NewCoalescer panics if post is nil. A nil schedule means AfterFunc.
func NewCoalescer(delay time.Duration, schedule Scheduler, post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	if schedule == nil {
		schedule = AfterFunc
	}

	return &Coalescer{
		delay:     delay,
		schedule:  schedule,
		post:      post,
		timers:    make(map[string]func() bool),
		callbacks: make(map[string]func()),
		gens:      make(map[string]uint64),
	}
}

// Post records fn as the latest callback for key and restarts its timer.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	c.callbacks[key] = fn
	c.gens[key]++
	gen := c.gens[key]
	if cancel, ok := c.timers[key]; ok {
		cancel()
	}
	c.mu.Unlock()

	// Scheduled outside the lock: a synchronous scheduler fires immediately.
	cancel := c.schedule(c.delay, func() {
		c.post(func() { c.fire(key, gen) })
	})

	c.mu.Lock()
	if _, pending := c.callbacks[key]; pending && !c.destroyed {
		c.timers[key] = cancel
	}
	c.mu.Unlock()
}

// Pending reports whether key has a callback waiting.
func (c *Coalescer) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.callbacks[key]
	return ok
}

func (c *Coalescer) fire(key string, gen uint64) {
	c.mu.Lock()
	if c.destroyed || c.gens[key] != gen {
		c.mu.Unlock()
		return
	}
	fn := c.callbacks[key]
	delete(c.callbacks, key)
	delete(c.timers, key)
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Destroy cancels every pending timer and drops queued work.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	for _, cancel := range c.timers {
		cancel()
	}
	c.timers = map[string]func() bool{}
	c.callbacks = map[string]func(){}
	c.gens = map[string]uint64{}
	c.mu.Unlock()
}
