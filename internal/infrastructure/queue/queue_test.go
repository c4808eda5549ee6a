package queue

import (
	"testing"
	"time"
)

func TestNewPreservesOrder(t *testing.T) {
	in, out := New[int]()

	for i := range 1000 {
		in <- i
	}
	close(in)

	want := 0
	for got := range out {
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
		want++
	}

	if want != 1000 {
		t.Fatalf("expected 1000 values, got %d", want)
	}
}

func TestNewDoesNotBlockProducer(t *testing.T) {
	in, out := New[string]()

	done := make(chan struct{})
	go func() {
		for range 10_000 {
			in <- "x"
		}
		close(in)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer blocked without a consumer")
	}

	count := 0
	for range out {
		count++
	}
	if count != 10_000 {
		t.Fatalf("expected 10000 values, got %d", count)
	}
}

func TestNewClosesWhenEmpty(t *testing.T) {
	in, out := New[int]()
	close(in)

	select {
	case _, ok := <-out:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("receive end was not closed")
	}
}
