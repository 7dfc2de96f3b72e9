package testutil

import (
	"testing"
	"time"
)

func TestContextBoundedByTimeout(t *testing.T) {
	deadline, ok := Context(t).Deadline()
	if !ok {
		t.Fatalf("expected a deadline")
	}
	if left := time.Until(deadline); left <= 0 || left > Timeout {
		t.Fatalf("unexpected time left %v", left)
	}
}

func TestContextAcceptsBenchmarks(t *testing.T) {
	var left time.Duration
	testing.Benchmark(func(b *testing.B) {
		deadline, ok := Context(b).Deadline()
		if ok {
			left = time.Until(deadline)
		}
	})
	if left <= 0 || left > Timeout {
		t.Fatalf("unexpected benchmark time left %v", left)
	}
}
