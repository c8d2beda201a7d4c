package flowgraph

// Cursor is a navigable, construction-time-only view over a Node tree —
// an explicit (root, path) pair rather than a persistent/functional
// zipper, since graphs here are built single-threaded and mutated in
// place. It is never present at runtime.
type Cursor struct {
	root *Node
	path []int
}

// Node returns the node the cursor currently points at.
func (c *Cursor) Node() *Node {
	n := c.root
	for _, i := range c.path {
		n = n.Children[i]
	}
	return n
}

// Root returns a cursor pointing at the tree's root.
func (c *Cursor) Root() *Cursor {
	return &Cursor{root: c.root}
}

// Down moves to the leftmost (first) child of the current node. It
// reports false if the current node has no children.
func (c *Cursor) Down() (*Cursor, bool) {
	n := c.Node()
	if len(n.Children) == 0 {
		return nil, false
	}
	return &Cursor{root: c.root, path: appendPath(c.path, 0)}, true
}

// Leftmost moves to the first sibling at the current depth. The root has
// no siblings, so Leftmost on the root returns the root itself.
func (c *Cursor) Leftmost() (*Cursor, bool) {
	if len(c.path) == 0 {
		return c.Root(), true
	}
	path := append([]int{}, c.path[:len(c.path)-1]...)
	return &Cursor{root: c.root, path: appendPath(path, 0)}, true
}

// Next moves to the next node in pre-order (depth-first) traversal order:
// down to the first child if one exists, else to the next sibling, else
// up and over to the nearest ancestor's next sibling. It reports false
// once traversal has exhausted the tree.
func (c *Cursor) Next() (*Cursor, bool) {
	if down, ok := c.Down(); ok {
		return down, true
	}
	path := c.path
	for len(path) > 0 {
		parentPath := path[:len(path)-1]
		idx := path[len(path)-1]
		parent := c.nodeAt(parentPath)
		if idx+1 < len(parent.Children) {
			return &Cursor{root: c.root, path: appendPath(parentPath, idx+1)}, true
		}
		path = parentPath
	}
	return nil, false
}

// Edit applies fn to the current node in place and returns the same
// cursor, for chaining.
func (c *Cursor) Edit(fn func(*Node)) *Cursor {
	fn(c.Node())
	return c
}

func (c *Cursor) nodeAt(path []int) *Node {
	n := c.root
	for _, i := range path {
		n = n.Children[i]
	}
	return n
}

// appendChild appends child to the current node and returns a cursor
// pointing at it, per the builder operators' "return a new cursor
// pointing at the newly added child" contract.
func (c *Cursor) appendChild(child *Node) *Cursor {
	n := c.Node()
	n.Children = append(n.Children, child)
	return &Cursor{root: c.root, path: appendPath(c.path, len(n.Children)-1)}
}

func appendPath(path []int, next int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = next
	return out
}
