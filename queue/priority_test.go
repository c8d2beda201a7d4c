package queue

import "testing"

func TestPriority_OrderLowestFirst(t *testing.T) {
	q := NewPriority[string](10)
	_ = q.Offer(PriorityItem[string]{Priority: 3, Item: "c"})
	_ = q.Offer(PriorityItem[string]{Priority: 1, Item: "a"})
	_ = q.Offer(PriorityItem[string]{Priority: 2, Item: "b"})

	var got []string
	for {
		x, ok := q.Poll()
		if !ok {
			break
		}
		got = append(got, x.Item)
	}

	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("want %v, got %v", want, got)
		}
	}
}

func TestPriority_TieBreakIsInsertionOrder(t *testing.T) {
	q := NewPriority[int](10)
	for i := 0; i < 5; i++ {
		if err := q.Offer(PriorityItem[int]{Priority: 1, Item: i}); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 5; i++ {
		x, ok := q.Poll()
		if !ok || x.Item != i {
			t.Fatalf("want %d, got %d, %v", i, x.Item, ok)
		}
	}
}

func TestPriority_Overflow(t *testing.T) {
	q := NewPriority[int](2)
	if err := q.Offer(PriorityItem[int]{Priority: 1, Item: 1}); err != nil {
		t.Fatal(err)
	}
	if err := q.Offer(PriorityItem[int]{Priority: 1, Item: 2}); err != nil {
		t.Fatal(err)
	}
	if err := q.Offer(PriorityItem[int]{Priority: 1, Item: 3}); err != ErrFull {
		t.Fatalf("want ErrFull, got %v", err)
	}
}

func TestPriority_OfferUniqueDedups(t *testing.T) {
	q := NewPriority[int](10)

	ok, err := q.OfferUnique(PriorityItem[int]{Priority: 1, Item: 1})
	if !ok || err != nil {
		t.Fatalf("want (true, nil), got (%v, %v)", ok, err)
	}

	ok, err = q.OfferUnique(PriorityItem[int]{Priority: 5, Item: 1})
	if ok || err != nil {
		t.Fatalf("want (false, nil), got (%v, %v)", ok, err)
	}

	if q.Len() != 1 {
		t.Fatalf("want len 1, got %d", q.Len())
	}
}

func TestPriority_PollEmpty(t *testing.T) {
	q := NewPriority[int](1)
	if _, ok := q.Poll(); ok {
		t.Fatal("expected empty poll to report false")
	}
}
