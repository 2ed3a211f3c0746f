package worker

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
)

func TestMapPreservesOrder(t *testing.T) {
	items := []int{5, 3, 8, 1, 9, 2}

	results := Map(items, 3, func(n int) (int, error) {
		return n * 10, nil
	})

	if len(results) != len(items) {
		t.Fatalf("got %d results, want %d", len(results), len(items))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("results[%d].Err = %v", i, r.Err)
		}
		if r.Index != i {
			t.Errorf("results[%d].Index = %d", i, r.Index)
		}
		if r.Value != items[i]*10 {
			t.Errorf("results[%d].Value = %d, want %d", i, r.Value, items[i]*10)
		}
	}
}

func TestMapCapturesPerItemErrors(t *testing.T) {
	wantErr := errors.New("boom")

	results := Map([]int{1, 2, 3}, 2, func(n int) (string, error) {
		if n == 2 {
			return "", wantErr
		}
		return fmt.Sprintf("ok-%d", n), nil
	})

	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("unexpected errors: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, wantErr) {
		t.Errorf("results[1].Err = %v, want %v", results[1].Err, wantErr)
	}
	if results[0].Value != "ok-1" || results[2].Value != "ok-3" {
		t.Errorf("values = %q, %q", results[0].Value, results[2].Value)
	}
}

func TestMapEmptyInput(t *testing.T) {
	results := Map(nil, 4, func(n int) (int, error) { return n, nil })
	if results != nil {
		t.Errorf("Map(nil) = %v, want nil", results)
	}
}

func TestMapDefaultConcurrency(t *testing.T) {
	var calls atomic.Int32

	results := Map([]int{1, 2, 3, 4}, 0, func(n int) (int, error) {
		calls.Add(1)
		return n, nil
	})

	if calls.Load() != 4 {
		t.Errorf("fn called %d times, want 4", calls.Load())
	}
	for i, r := range results {
		if r.Value != i+1 {
			t.Errorf("results[%d].Value = %d, want %d", i, r.Value, i+1)
		}
	}
}
