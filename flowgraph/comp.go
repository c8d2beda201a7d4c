package flowgraph

import (
	"fmt"

	"github.com/joeycumines/go-flowgraph/flog"
)

// CompRewrite produces one composed function for the whole tree rooted
// at root: applying it to a value runs root's Transform, then recurses
// into children per root.When/root.Multimap, and so on down to leaves.
// Runs entirely on the caller's goroutine; no queues, no pools.
//
// A child's error is logged and swallowed at the point its parent
// invokes it: runtime errors never propagate through child edges, so a
// failed node produces no output for that input and siblings are
// unaffected. The root has no parent within this function, so its own
// error propagates to whatever calls the returned Transform (typically
// RunSync).
func CompRewrite(root *Node) Transform {
	return compNode(root)
}

func compNode(v *Node) Transform {
	children := make([]Transform, len(v.Children))
	for i, c := range v.Children {
		children[i] = compNode(c)
	}
	return TransformFunc(func(x any) (any, error) {
		if v.When != nil && !v.When.Test(x) {
			return nil, nil
		}
		y, err := v.F.Apply(x)
		if err != nil {
			return nil, err
		}
		for _, z := range multimapElems(v, y) {
			for _, c := range children {
				if _, cerr := c.Apply(z); cerr != nil {
					flog.Error("flowgraph", "transform returned an error", cerr, flog.Fields{"node": v.ID})
				}
			}
		}
		return y, nil
	})
}

// multimapElems expands a node's raw transform output into the sequence
// of values forwarded to its children: the single value itself, unless
// the node is Multimap, in which case y must be a []any.
func multimapElems(v *Node, y any) []any {
	if !v.Multimap {
		return []any{y}
	}
	seq, ok := y.([]any)
	if !ok {
		flog.Error("flowgraph", "multimap node did not return []any", fmt.Errorf("got %T", y), flog.Fields{"node": v.ID})
		return nil
	}
	return seq
}

// RunSync folds rewrites over root, compiles it via CompRewrite, and
// applies the result to every value in data in order, on the caller's
// goroutine. It returns the root-level error (if any) for each input, in
// input order; inputs that succeed contribute no entry.
func RunSync(root *Node, data []any, rewrites ...Rewrite) []error {
	GraphRewrite(rewrites, root)
	mono := CompRewrite(root)
	var errs []error
	for _, x := range data {
		if _, err := mono.Apply(x); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
