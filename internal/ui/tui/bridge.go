package tui

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

// Bridge carries events from the docker's dispatcher into the bubbletea
// program. Senders never block: the dispatcher may be waited on by Update.
type Bridge struct {
	ch        chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
	frame     atomic.Bool
}

// NewBridge creates an open bridge.
func NewBridge() *Bridge {
	return &Bridge{
		ch:   make(chan tea.Msg, 64),
		done: make(chan struct{}),
	}
}

// Send queues msg for the program.
func (b *Bridge) Send(msg tea.Msg) {
	select {
	case <-b.done:
		return
	default:
	}
	select {
	case b.ch <- msg:
		return
	default:
	}
	go func() {
		select {
		case b.ch <- msg:
		case <-b.done:
		}
	}()
}

// Frame signals that the renderer published a frame. At most one signal is
// queued at a time; the model reads the latest frame when it arrives.
func (b *Bridge) Frame() {
	if b.frame.CompareAndSwap(false, true) {
		b.Send(frameMsg{})
	}
}

// Wait returns a command that delivers the next event. The model re-arms it
// after every event it receives.
func (b *Bridge) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-b.done:
			return nil
		default:
		}
		select {
		case msg := <-b.ch:
			return msg
		case <-b.done:
			return nil
		}
	}
}

// Close releases every pending Wait and Send.
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.done) })
}

func (b *Bridge) frameTaken() { b.frame.Store(false) }
