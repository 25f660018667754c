package telemetry

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFeedDrainOrder(t *testing.T) {
	f := NewFeed[int]()
	for i := 0; i < 1000; i++ {
		if !f.Send(i) {
			t.Fatalf("send %d rejected", i)
		}
	}
	select {
	case <-f.Ready():
	default:
		t.Fatal("ready not signalled")
	}
	got := f.Drain()
	if len(got) != 1000 || got[0] != 0 || got[999] != 999 {
		t.Fatalf("drained %d items", len(got))
	}
	if f.Drain() != nil {
		t.Fatal("second drain not empty")
	}
}

func TestFeedClosedDropsSends(t *testing.T) {
	f := NewFeed[string]()
	f.Send("a")
	f.Close()
	if f.Send("b") {
		t.Fatal("send after close accepted")
	}
	if diff := cmp.Diff([]string(nil), f.Drain()); diff != "" {
		t.Fatal(diff)
	}
}
