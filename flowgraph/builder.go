package flowgraph

import "fmt"

// New constructs a single-node graph and returns a cursor pointing at its
// root. f must not be nil (a programmer error, so this panics rather than
// returning an error).
func New(f Transform, opts ...Opt) *Cursor {
	return &Cursor{root: newNode(f, opts...)}
}

// Each appends a child to parent's current node that receives the
// parent's output (or, in a multimap parent, each element of it).
func Each(parent *Cursor, f Transform, opts ...Opt) *Cursor {
	if parent == nil {
		panic("flowgraph: parent cursor must not be nil")
	}
	return parent.appendChild(newNode(f, opts...))
}

// Multimap appends a child whose Transform must return a []any boxed as
// any; each element is forwarded to the child's own children
// independently.
func Multimap(parent *Cursor, f Transform, opts ...Opt) *Cursor {
	if parent == nil {
		panic("flowgraph: parent cursor must not be nil")
	}
	opts = append(append([]Opt{}, opts...), WithMultimap())
	return parent.appendChild(newNode(f, opts...))
}

// Subgraph builds a fresh sub-tree rooted at a node with Transform f,
// lets build populate it via the builder operators (build receives a
// cursor over that fresh root), and appends the resulting root as a
// child of parent. build may be nil for a leaf sub-tree of one node.
func Subgraph(parent *Cursor, f Transform, build func(root *Cursor), opts ...Opt) *Cursor {
	if parent == nil {
		panic("flowgraph: parent cursor must not be nil")
	}
	root := New(f, opts...)
	if build != nil {
		build(root)
	}
	return parent.appendChild(root.Node())
}

// AppendChild inserts child under the first node matching id, searching
// the subtree reachable from root. It returns a cursor pointing at the
// inserted child, or an error if no node with id exists.
func AppendChild(root *Cursor, id string, child *Node) (*Cursor, error) {
	target, ok := findByID(root, id)
	if !ok {
		return nil, fmt.Errorf("flowgraph: no node with id %q", id)
	}
	return target.appendChild(child), nil
}

// UpdateNode applies fn to the first node matching id, searching the
// subtree reachable from root. It returns an error if no node with id
// exists.
func UpdateNode(root *Cursor, id string, fn func(*Node)) error {
	target, ok := findByID(root, id)
	if !ok {
		return fmt.Errorf("flowgraph: no node with id %q", id)
	}
	fn(target.Node())
	return nil
}

// UpdateNodes applies fn to every node in the subtree reachable from
// root, pre-order.
func UpdateNodes(root *Cursor, fn func(*Node)) {
	walkNodes(root.Node(), fn)
}

// FilterNodes returns every node in the subtree reachable from root for
// which pred returns true, pre-order.
func FilterNodes(root *Cursor, pred func(*Node) bool) []*Node {
	var out []*Node
	walkNodes(root.Node(), func(n *Node) {
		if pred(n) {
			out = append(out, n)
		}
	})
	return out
}

func walkNodes(n *Node, visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		walkNodes(c, visit)
	}
}

func findPath(n *Node, id string, prefix []int) ([]int, bool) {
	if n.ID == id {
		return prefix, true
	}
	for i, c := range n.Children {
		if p, ok := findPath(c, id, appendPath(prefix, i)); ok {
			return p, true
		}
	}
	return nil, false
}

func findByID(root *Cursor, id string) (*Cursor, bool) {
	rel, ok := findPath(root.Node(), id, nil)
	if !ok {
		return nil, false
	}
	full := make([]int, 0, len(root.path)+len(rel))
	full = append(full, root.path...)
	full = append(full, rel...)
	return &Cursor{root: root.root, path: full}, true
}
