// Package mainloop provides the single event loop that owns the panel tree
// and the coalescing helpers that post work onto it.
package mainloop

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/dockpane/internal/logging"
)

// ErrLoopClosed is returned when work is submitted to a closed loop.
var ErrLoopClosed = errors.New("main loop closed")

type loopKey struct{}

// Loop runs posted functions one at a time on a dedicated goroutine, the
// way a UI main loop does. Everything that touches the panel tree runs here.
type Loop struct {
	base context.Context

	mu     sync.Mutex
	queue  []func(context.Context)
	closed bool

	wake      chan struct{}
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// New starts a loop. ctx supplies the logger and values visible to posted
// work; cancelling it does not stop the loop, Close does.
func New(ctx context.Context) *Loop {
	l := &Loop{
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	l.base = context.WithValue(context.WithoutCancel(ctx), loopKey{}, l)
	go l.run()
	return l
}

// OnLoop reports whether ctx was handed out by this loop, meaning the caller
// is already running on the loop goroutine.
func (l *Loop) OnLoop(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	owner, _ := ctx.Value(loopKey{}).(*Loop)
	return owner == l
}

// Post queues fn without waiting. Returns false if the loop is closed.
func (l *Loop) Post(fn func(ctx context.Context)) bool {
	if fn == nil {
		return false
	}
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Invoke runs fn on the loop and waits for its result. Called from the loop
// itself (ctx obtained from the loop), fn runs inline.
func (l *Loop) Invoke(ctx context.Context, fn func(ctx context.Context) error) error {
	if l.OnLoop(ctx) {
		return fn(ctx)
	}

	result := make(chan error, 1)
	posted := l.Post(func(loopCtx context.Context) {
		result <- fn(loopCtx)
	})
	if !posted {
		return ErrLoopClosed
	}

	select {
	case err := <-result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopped:
		select {
		case err := <-result:
			return err
		default:
			return ErrLoopClosed
		}
	}
}

// Close stops the loop after the function currently running. Queued work is
// dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed = true
		l.queue = nil
		l.mu.Unlock()
		close(l.done)
	})
	<-l.stopped
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		select {
		case <-l.done:
			return
		case <-l.wake:
		}

		for {
			l.mu.Lock()
			if l.closed || len(l.queue) == 0 {
				l.mu.Unlock()
				break
			}
			batch := l.queue
			l.queue = nil
			l.mu.Unlock()

			for _, fn := range batch {
				l.runOne(fn)
			}
		}
	}
}

func (l *Loop) runOne(fn func(context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			log := logging.FromContext(l.base)
			log.Error().Err(fmt.Errorf("panic: %v", r)).Msg("main loop task panicked")
		}
	}()
	fn(l.base)
}
