package model

import "time"

// Pending is the handle of a scheduled asynchronous validation pass.
// Dropping the handle is safe; the pass still runs to completion.
type Pending struct {
	err  error
	done chan struct{}
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// complete publishes the result; err must not be written afterwards.
func (p *Pending) complete() {
	close(p.done)
}

// Await blocks until the pass completes and returns its error, if any.
func (p *Pending) Await() error {
	<-p.done
	return p.err
}

// AwaitTimeout waits for completion up to d and returns ErrAwaitTimeout if
// the pass is still running. The pass itself is not cancelled.
func (p *Pending) AwaitTimeout(d time.Duration) error {
	select {
	case <-p.done:
		return p.err
	case <-time.After(d):
		return ErrAwaitTimeout
	}
}

// Done returns a channel closed when the pass completes, for use in select.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Completed reports, without blocking, whether the pass has finished.
func (p *Pending) Completed() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
