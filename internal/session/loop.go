package session

import (
	"context"
	"sync"
)

// Loop runs submitted functions one at a time on a single goroutine.
// Everything that touches a session's state goes through its loop.
// Functions running on the loop must not call Do on the same loop.
type Loop struct {
	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

// NewLoop starts a loop goroutine.
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func()),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			return
		}
	}
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	// Once handed over the task always runs; only the wait can be abandoned.
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post queues fn without waiting for it to run. It reports false if the
// loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop. Pending Do and Post calls return ErrClosed / false.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

// Done is closed when the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
