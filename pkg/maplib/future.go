package maplib

import (
	"context"
	"sync"
)

// future is settled exactly once, by whichever of resolve or reject runs
// first. Later calls are ignored.
type future struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newFuture() *future {
	return &future{done: make(chan struct{})}
}

func (f *future) resolve() {
	f.settle(nil)
}

func (f *future) reject(err error) {
	f.settle(err)
}

func (f *future) settle(err error) {
	f.once.Do(func() {
		f.err = err
		close(f.done)
	})
}

// Wait blocks until the future settles or ctx is done.
func (f *future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
