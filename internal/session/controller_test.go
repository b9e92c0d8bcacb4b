package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestController_RunReachesSuccess(t *testing.T) {
	c := NewController[string]()
	defer c.Close()

	if c.State().Phase() != Loading {
		t.Fatalf("initial phase = %v; want Loading", c.State().Phase())
	}

	c.Run(func(ctx context.Context) (string, error) {
		return "done", nil
	})
	c.Wait()

	v, ok := c.State().Value()
	if !ok || v != "done" {
		t.Errorf("State = %v, %v; want done, true", v, ok)
	}
}

func TestController_RunReachesFailed(t *testing.T) {
	c := NewController[string]()
	defer c.Close()

	wantErr := errors.New("boom")
	c.Run(func(ctx context.Context) (string, error) {
		return "", wantErr
	})
	c.Wait()

	if got := c.State().Err(); !errors.Is(got, wantErr) {
		t.Errorf("Err = %v; want %v", got, wantErr)
	}
}

func TestController_CloseCancelsTask(t *testing.T) {
	c := NewController[string]()

	started := make(chan struct{})
	c.Run(func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	})

	<-started
	c.Close()

	if got := c.State().Err(); !errors.Is(got, context.Canceled) {
		t.Errorf("Err = %v; want context.Canceled", got)
	}
}

func TestController_CloseAwaitsInFlightWrite(t *testing.T) {
	c := NewController[string]()

	started := make(chan struct{})
	finished := false
	c.Run(func(ctx context.Context) (string, error) {
		close(started)
		// simulates a write-through on a detached context: it does not
		// observe the cancellation and must still run to completion
		time.Sleep(20 * time.Millisecond)
		finished = true
		return "done", nil
	})

	<-started
	c.Close()

	if !finished {
		t.Error("Close returned before the in-flight task completed")
	}
}
