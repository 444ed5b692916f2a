package pipeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPool_RunsAllTasks(t *testing.T) {
	p := NewWorkerPool(4, 16)
	out := p.Run(context.Background())

	var ran atomic.Int64
	go func() {
		for i := 0; i < 50; i++ {
			p.Submit(func(ctx context.Context) error {
				ran.Add(1)
				return nil
			})
		}
		p.Close()
	}()

	results := 0
	for r := range out {
		if r.Err != nil {
			t.Fatalf("unexpected task error: %v", r.Err)
		}
		results++
	}

	if ran.Load() != 50 {
		t.Fatalf("expected 50 tasks run, got %d", ran.Load())
	}
	if results != 50 {
		t.Fatalf("expected 50 results, got %d", results)
	}
}

func TestWorkerPool_PropagatesErrors(t *testing.T) {
	p := NewWorkerPool(2, 4)
	want := errors.New("boom")

	out := p.Run(context.Background())
	p.Submit(func(ctx context.Context) error { return want })
	p.Submit(func(ctx context.Context) error { return nil })
	p.Close()

	var got []error
	for r := range out {
		if r.Err != nil {
			got = append(got, r.Err)
		}
	}
	if len(got) != 1 || !errors.Is(got[0], want) {
		t.Fatalf("expected one boom error, got %v", got)
	}
}

func TestWorkerPool_ContextCancel(t *testing.T) {
	p := NewWorkerPool(1, 0)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range p.Run(ctx) {
		}
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("pool did not stop after cancel")
	}
}
