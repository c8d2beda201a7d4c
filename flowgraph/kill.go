package flowgraph

import "github.com/joeycumines/go-flowgraph/flog"

// KillGraph visits every vertex of root, pre-order, and runs every
// Shutdown thunk, logging and swallowing per-thunk errors. Safe to call
// on a graph that was never started (empty Shutdown slices) and on one
// already killed, since Shutdowner implementations must be idempotent.
func KillGraph(root *Node) {
	walkNodes(root, func(n *Node) {
		for _, s := range n.Shutdown {
			if err := s.Shutdown(); err != nil {
				flog.Error("flowgraph", "shutdown action failed", err, flog.Fields{"node": n.ID})
			}
		}
	})
}
