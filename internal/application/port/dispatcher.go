package port

import "context"

// Dispatcher serializes work onto the single goroutine that owns the panel
// tree. mainloop.Loop implements it.
type Dispatcher interface {
	// Post queues fn and returns false if the dispatcher is closed.
	Post(fn func(ctx context.Context)) bool
	// Invoke runs fn on the owner goroutine and waits. When ctx already
	// belongs to that goroutine fn runs inline.
	Invoke(ctx context.Context, fn func(ctx context.Context) error) error
	OnLoop(ctx context.Context) bool
	Close()
}

// Debouncer collapses bursts of same-key calls into one trailing call.
// mainloop.Coalescer implements it.
type Debouncer interface {
	Post(key string, fn func())
	Destroy()
}
