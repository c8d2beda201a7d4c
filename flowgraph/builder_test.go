package flowgraph

import "testing"

func TestSubgraph_AppendsBuiltTreeUnderParent(t *testing.T) {
	root := New(identity(), WithID("root"))
	Subgraph(root, identity(), func(sub *Cursor) {
		sub.Node().ID = "sub-root"
		Each(sub, identity(), WithID("sub-leaf"))
	})

	ids := FilterNodes(root, func(*Node) bool { return true })
	var got []string
	for _, n := range ids {
		got = append(got, n.ID)
	}

	want := map[string]bool{"root": true, "sub-root": true, "sub-leaf": true}
	if len(got) != len(want) {
		t.Fatalf("want %d nodes, got %v", len(want), got)
	}
	for _, id := range got {
		if !want[id] {
			t.Fatalf("unexpected node id %q in %v", id, got)
		}
	}
}

func TestAppendChild_InsertsUnderMatchingID(t *testing.T) {
	root := New(identity(), WithID("root"))
	Each(root, identity(), WithID("a"))

	child := newNode(identity(), WithID("inserted"))
	cur, err := AppendChild(root, "a", child)
	if err != nil {
		t.Fatal(err)
	}
	if cur.Node().ID != "inserted" {
		t.Fatalf("want inserted, got %s", cur.Node().ID)
	}
}

func TestAppendChild_UnknownIDReturnsError(t *testing.T) {
	root := New(identity(), WithID("root"))
	_, err := AppendChild(root, "missing", newNode(identity(), WithID("x")))
	if err == nil {
		t.Fatal("want an error for an unknown id")
	}
}

func TestUpdateNode_MutatesMatchingNode(t *testing.T) {
	root := New(identity(), WithID("root"))
	Each(root, identity(), WithID("a"))

	if err := UpdateNode(root, "a", func(n *Node) { n.Threads = 3 }); err != nil {
		t.Fatal(err)
	}

	nodes := FilterNodes(root, func(n *Node) bool { return n.ID == "a" })
	if len(nodes) != 1 || nodes[0].Threads != 3 {
		t.Fatalf("want a.Threads=3, got %+v", nodes)
	}
}

func TestUpdateNodes_VisitsWholeTree(t *testing.T) {
	root := New(identity(), WithID("root"))
	a := Each(root, identity(), WithID("a"))
	Each(a, identity(), WithID("b"))

	UpdateNodes(root, func(n *Node) { n.Threads = 9 })

	for _, n := range FilterNodes(root, func(*Node) bool { return true }) {
		if n.Threads != 9 {
			t.Fatalf("node %s: want Threads=9, got %d", n.ID, n.Threads)
		}
	}
}

func TestFilterNodes_PredicateSelectsSubset(t *testing.T) {
	root := New(identity(), WithID("root"), WithThreads(1))
	Each(root, identity(), WithID("a"), WithThreads(2))
	Each(root, identity(), WithID("b"), WithThreads(1))

	matches := FilterNodes(root, func(n *Node) bool { return n.Threads == 1 })
	if len(matches) != 2 {
		t.Fatalf("want 2 matches, got %d", len(matches))
	}
}

func TestNew_NilTransformPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("want a panic for a nil transform")
		}
	}()
	New(nil)
}
