package flowgraph

import (
	"fmt"
	"hash/fnv"
	"reflect"
)

// Node is one vertex of a dataflow graph: a Transform plus its children.
//
// Runtime is nil until a lowering pass (QueueRewrite/FifoIn/AddPool/
// PriorityIn) populates it; construction-time code must never read it.
type Node struct {
	ID       string
	F        Transform
	Children []*Node
	Multimap bool
	When     Predicate
	Threads  int
	Shutdown []Shutdowner
	Runtime  *Runtime
}

// Runtime holds the fields a lowering pass populates on a Node. It is the
// re-architected form of the source's open `:queue`/`:offer`/`:in`/`:out`
// keys, kept separate from the declarative fields above.
type Runtime struct {
	// Queue is the node's own ingress queue, if any (root only, once
	// FifoIn or PriorityIn has run).
	Queue Poller
	// Offer is the public entry point, set only on the root once FifoIn
	// or PriorityIn has run.
	Offer OfferFunc
	// In is what this node's workers poll (see AddPool): for a child, the
	// poll side of its edge queue once QueueRewrite has run; for the root,
	// its ingress queue (the same queue as Queue) once FifoIn or PriorityIn
	// has run, and nil before that.
	In Poller
	// Out fans a node's output into every child's edge queue; nil for
	// leaves.
	Out Sink
}

// Opt configures a Node at construction time.
type Opt func(*Node)

// WithID overrides a node's default content-hash id.
func WithID(id string) Opt { return func(n *Node) { n.ID = id } }

// WithThreads sets a node's pool size for pool-mode lowering. Zero (the
// default) resolves to runtime.GOMAXPROCS(0) at AddPool time.
func WithThreads(threads int) Opt { return func(n *Node) { n.Threads = threads } }

// WithWhen sets a node's gating predicate.
func WithWhen(p Predicate) Opt { return func(n *Node) { n.When = p } }

// WithMultimap marks a node as multimap: its Transform must return a
// []any boxed as any, each element forwarded to children independently.
func WithMultimap() Opt { return func(n *Node) { n.Multimap = true } }

func newNode(f Transform, opts ...Opt) *Node {
	if f == nil {
		panic("flowgraph: transform must not be nil")
	}
	n := &Node{F: f, ID: defaultNodeID(f)}
	for _, opt := range opts {
		opt(n)
	}
	if n.ID == "" {
		panic("flowgraph: node id must not be empty")
	}
	return n
}

// defaultNodeID hashes a Transform's concrete type and, for func-shaped
// values, its entry point, giving a stable id across repeated builds of
// the same graph within one process. Two distinct nodes sharing the exact
// same function value collide by design; override with WithID to
// disambiguate.
func defaultNodeID(f Transform) string {
	v := reflect.ValueOf(f)
	h := fnv.New64a()
	fmt.Fprint(h, v.Type().String())
	switch v.Kind() {
	case reflect.Func, reflect.Ptr, reflect.Chan, reflect.Map, reflect.UnsafePointer:
		fmt.Fprintf(h, ":%d", v.Pointer())
	default:
		fmt.Fprintf(h, ":%#v", f)
	}
	return fmt.Sprintf("%x", h.Sum64())
}
