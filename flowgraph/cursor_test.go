package flowgraph

import "testing"

func TestCursor_DownLeftmostNext(t *testing.T) {
	root := New(identity(), WithID("root"))
	a := Each(root, identity(), WithID("a"))
	Each(root, identity(), WithID("b"))
	Each(a, identity(), WithID("a1"))

	down, ok := root.Down()
	if !ok || down.Node().ID != "a" {
		t.Fatalf("Down: want a, got ok=%v id=%v", ok, safeID(down))
	}

	b := &Cursor{root: root.root, path: []int{1}}
	leftmost, ok := b.Leftmost()
	if !ok || leftmost.Node().ID != "a" {
		t.Fatalf("Leftmost from b: want a, got ok=%v id=%v", ok, safeID(leftmost))
	}

	next, ok := root.Next()
	if !ok || next.Node().ID != "a" {
		t.Fatalf("Next from root: want a (down into first child), got ok=%v id=%v", ok, safeID(next))
	}

	next2, ok := next.Next()
	if !ok || next2.Node().ID != "a1" {
		t.Fatalf("Next from a: want a1 (down into a's child), got ok=%v id=%v", ok, safeID(next2))
	}

	next3, ok := next2.Next()
	if !ok || next3.Node().ID != "b" {
		t.Fatalf("Next from a1: want b (climb then sibling), got ok=%v id=%v", ok, safeID(next3))
	}

	_, ok = next3.Next()
	if ok {
		t.Fatal("Next from the last node in traversal order should report false")
	}
}

func safeID(c *Cursor) string {
	if c == nil {
		return "<nil>"
	}
	return c.Node().ID
}

func TestCursor_Edit(t *testing.T) {
	root := New(identity(), WithID("root"))
	root.Edit(func(n *Node) { n.Threads = 7 })
	if root.Node().Threads != 7 {
		t.Fatalf("want Threads=7, got %d", root.Node().Threads)
	}
}

func TestCursor_RootReturnsToTreeRoot(t *testing.T) {
	root := New(identity(), WithID("root"))
	a := Each(root, identity(), WithID("a"))
	b := Each(a, identity(), WithID("b"))

	back := b.Root()
	if back.Node().ID != "root" {
		t.Fatalf("want root, got %s", back.Node().ID)
	}
}
