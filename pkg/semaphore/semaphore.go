package semaphore

import "context"

// Semaphore is a counting semaphore for limiting concurrency.
type Semaphore struct {
	ch chan struct{}
}

// New creates a Semaphore with the given capacity; capacity < 1 is treated as 1.
func New(capacity int) *Semaphore {
	if capacity < 1 {
		capacity = 1
	}
	return &Semaphore{
		ch: make(chan struct{}, capacity),
	}
}

// Acquire takes a slot, blocking until one is free or ctx is done.
func (s *Semaphore) Acquire(ctx context.Context) error {
	select {
	case s.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns a slot taken by Acquire.
func (s *Semaphore) Release() {
	<-s.ch
}

// Cap is the number of slots.
func (s *Semaphore) Cap() int {
	return cap(s.ch)
}
