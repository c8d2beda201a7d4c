package flowgraph

import "fmt"

// Rewrite is a deterministic, in-place transformation of a graph, folded
// over by GraphRewrite.
type Rewrite func(root *Node)

// GraphRewrite applies every rewrite in rewrites, in order, to root, then
// checks that every node in the resulting tree has a non-empty id and
// that ids are unique across the whole tree. Each and AppendChild do not
// check ids themselves, so this pass is where duplicates are caught,
// including ones introduced when AppendChild stitches together subtrees
// built independently. A violation panics: id collisions are a
// programmer error discoverable at build time, not a runtime condition
// callers should need to handle.
func GraphRewrite(rewrites []Rewrite, root *Node) {
	for _, rw := range rewrites {
		rw(root)
	}
	checkUniqueIDs(root)
}

func checkUniqueIDs(root *Node) {
	seen := make(map[string]struct{})
	walkNodes(root, func(n *Node) {
		if n.ID == "" {
			panic("flowgraph: node id must not be empty")
		}
		if _, ok := seen[n.ID]; ok {
			panic(fmt.Sprintf("flowgraph: duplicate node id %q", n.ID))
		}
		seen[n.ID] = struct{}{}
	})
}
