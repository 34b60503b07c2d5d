package worker

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsEverything(t *testing.T) {
	p := New(4)
	var n atomic.Int64
	for range 100 {
		p.Submit(func() { n.Add(1) })
	}
	p.Close()
	if n.Load() != 100 {
		t.Fatalf("expected 100 runs, got %d", n.Load())
	}
	// Closing twice must not panic.
	p.Close()
}

func TestPoolSurvivesPanics(t *testing.T) {
	p := New(1)
	var n atomic.Int64
	p.Submit(func() { panic("boom") })
	p.Submit(func() { n.Add(1) })
	p.Close()
	if n.Load() != 1 {
		t.Fatalf("expected the worker to keep running after a panic")
	}
}
