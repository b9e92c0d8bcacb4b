package session

import (
	"context"
	"sync"
)

// Controller owns the observable state for a single screen. Each open
// screen constructs its own Controller; they share nothing but the
// cache underneath Sync. State is only ever mutated from the
// controller's own task, so observers never see a half-written state.
type Controller[T any] struct {
	mu    sync.Mutex
	state State[T]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController creates a controller in the Loading phase with a task
// context scoped to its lifetime.
func NewController[T any]() *Controller[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		state:  NewLoading[T](),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Run moves the state to Loading and executes op on the controller's
// task. The terminal state is Success or Failed; a failed operation is
// never retried automatically, the user triggers the repeat.
func (c *Controller[T]) Run(op func(ctx context.Context) (T, error)) {
	c.setState(NewLoading[T]())
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		v, err := op(c.ctx)
		if err != nil {
			c.setState(NewFailure[T](err))
			return
		}
		c.setState(NewSuccess(v))
	}()
}

// State returns the current state snapshot.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until the in-flight operation, if any, has reached a
// terminal state.
func (c *Controller[T]) Wait() {
	c.wg.Wait()
}

// Close cancels the controller's context and waits for the in-flight
// task. Network calls abort with the context; write-throughs already
// issued by Sync run on a detached context, so a successful network
// result still lands in the cache before Close returns.
func (c *Controller[T]) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *Controller[T]) setState(s State[T]) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
