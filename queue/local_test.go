package queue

import "testing"

func TestLocal_FIFOOrder(t *testing.T) {
	q := NewLocal[int]()
	for i := 1; i <= 3; i++ {
		q.Offer(i)
	}
	for i := 1; i <= 3; i++ {
		v, ok := q.Poll()
		if !ok || v != i {
			t.Fatalf("want (%d, true), got (%d, %v)", i, v, ok)
		}
	}
	if _, ok := q.Poll(); ok {
		t.Fatal("expected empty poll to report false")
	}
}

func TestLocal_Empty(t *testing.T) {
	q := NewLocal[string]()
	if !q.Empty() {
		t.Fatal("new queue should be empty")
	}
	q.Offer("x")
	if q.Empty() {
		t.Fatal("queue with an item should not be empty")
	}
}

func TestLocal_OfferUnique(t *testing.T) {
	q := NewLocal[int]()

	if !q.OfferUnique(1) {
		t.Fatal("first offer of a value should succeed")
	}
	if q.OfferUnique(1) {
		t.Fatal("duplicate offer before poll should be a no-op")
	}
	if q.Len() != 1 {
		t.Fatalf("want len 1, got %d", q.Len())
	}

	if v, ok := q.Poll(); !ok || v != 1 {
		t.Fatalf("unexpected poll result: %d, %v", v, ok)
	}

	// once polled, the value is no longer considered enqueued
	if !q.OfferUnique(1) {
		t.Fatal("offer after poll should succeed again")
	}
}
