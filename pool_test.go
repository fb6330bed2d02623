package asyncscope

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPoolSiblingIsolation(t *testing.T) {
	testMultiConcurrencies(t, "pool-isolation", testPoolSiblingIsolation)
}

func testPoolSiblingIsolation(t *testing.T, numTasks int) {
	h := NewVar[int]("h")
	testInRootScope(t, func(ctx context.Context) {
		testMustSet(t, ctx, h, 1)
		p := NewPool(ctx, PoolInput{Name: "test-pool-isolation", MaxConcurrency: 8})
		for i := 0; i < numTasks; i++ {
			i := i
			p.Go(ctx, func(ctx context.Context) error {
				if got, err := h.Get(ctx); err != nil || got != 1 {
					t.Errorf("Expected to inherit 1, got %d (%v)", got, err)
				}
				if err := h.Set(ctx, i+2); err != nil {
					return err
				}
				time.Sleep(time.Microsecond)
				if got, err := h.Get(ctx); err != nil || got != i+2 {
					t.Errorf("Task %d observed %d (%v)", i, got, err)
				}
				return nil
			})
		}
		if err := p.Wait(); err != nil {
			t.Fatal(err)
		}
		if got := testMustGet(t, ctx, h); got != 1 {
			t.Fatalf("Expected the parent to keep 1, got %d", got)
		}
		if p.Status().GetNumTasksFinished() != int32(numTasks) {
			t.Fatalf("Expected %d finished tasks, got %d", numTasks, p.Status().GetNumTasksFinished())
		}
	})
}

func TestPoolCollectsAllErrors(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	p := NewPool(context.Background(), PoolInput{})
	p.Go(context.Background(), func(ctx context.Context) error { return first })
	p.Go(context.Background(), func(ctx context.Context) error { return second })
	p.Go(context.Background(), func(ctx context.Context) error { return nil })

	err := p.Wait()
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("Expected both errors, received %v", err)
	}
	status := p.Status()
	if status.GetRunnerName() != DefaultPoolName {
		t.Fatalf("Expected the default pool name, got %q", status.GetRunnerName())
	}
	if status.GetNumTasksErrored() != 2 || status.GetNumTasksFinished() != 1 {
		t.Fatalf("Expected 2 errored and 1 finished, got %d and %d", status.GetNumTasksErrored(), status.GetNumTasksFinished())
	}
}

func TestPoolCancelOnError(t *testing.T) {
	failure := errors.New("failure")
	p := NewPool(context.Background(), PoolInput{CancelOnError: true})
	p.Go(context.Background(), func(ctx context.Context) error {
		return failure
	})
	p.Go(context.Background(), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(10 * time.Second):
			return errors.New("context was not cancelled")
		}
	})
	if err := p.Wait(); !errors.Is(err, failure) {
		t.Fatalf("Expected the failure, received %v", err)
	}
}

func TestPoolPanicBecomesError(t *testing.T) {
	p := NewPool(context.Background(), PoolInput{})
	p.Go(context.Background(), func(ctx context.Context) error {
		panic("pool task blew up")
	})
	if err := p.Wait(); err == nil {
		t.Fatalf("Expected the panic as an error")
	}
	if p.Status().GetNumTasksPanicked() != 1 {
		t.Fatalf("Expected 1 panicked task, got %d", p.Status().GetNumTasksPanicked())
	}
}
