package mmb

import (
	"context"
	"fmt"
)

// runAsync executes fn on its own goroutine and races its completion against
// ctx. If ctx is done first, runAsync returns ctx.Err() without waiting for
// fn; fn's goroutine is abandoned (it is expected to observe ctx itself and
// unwind). A panic inside fn is recovered and surfaced as an error rather
// than crashing the caller.
func runAsync[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	done := make(chan struct{})
	var (
		result T
		err    error
	)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("mmb: adapter call panicked: %v", p)
				close(done)
			}
		}()
		result, err = fn(ctx)
		close(done)
	}()

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case <-done:
		return result, err
	}
}
