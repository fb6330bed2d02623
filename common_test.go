package asyncscope

import (
	"context"
	"fmt"
	"testing"
)

func testMultiConcurrencies(t *testing.T, testName string, f func(t *testing.T, numTasks int)) {
	concurrencies := []int{
		1,
		10,
		100,
		1000,
	}
	for _, numTasks := range concurrencies {
		numTasks := numTasks
		t.Run(fmt.Sprintf("%s-%d", testName, numTasks), func(t *testing.T) {
			f(t, numTasks)
		})
	}
}

// Runs f within a fresh root scope.
func testInRootScope(t *testing.T, f func(ctx context.Context)) {
	t.Helper()
	root := NewScope(context.Background())
	if err := root.RunWithin(context.Background(), func(ctx context.Context) error {
		f(ctx)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
}

func testMustGet[T any](t *testing.T, ctx context.Context, v *Var[T]) T {
	t.Helper()
	value, err := v.Get(ctx)
	if err != nil {
		t.Fatalf("Get of %s failed: %v", v, err)
	}
	return value
}

func testMustSet[T any](t *testing.T, ctx context.Context, v *Var[T], value T) {
	t.Helper()
	if err := v.Set(ctx, value); err != nil {
		t.Fatalf("Set of %s failed: %v", v, err)
	}
}
