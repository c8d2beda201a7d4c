package flowgraph

import (
	"context"
	"runtime"
	"time"

	"github.com/joeycumines/go-flowgraph/flog"
	"github.com/joeycumines/go-flowgraph/queue"
	"github.com/joeycumines/go-flowgraph/workerpool"
)

// shutdownBudget is the combined phase-1 + phase-2 wait Pool.Shutdown may
// need (60s drain, then another 60s after forced cancellation), plus
// headroom for the ctx itself to be observed. A var, not a const, so
// tests can shrink it rather than waiting out two real 60s phases against
// a genuinely stuck node.
var shutdownBudget = 130 * time.Second

func ensureRuntime(n *Node) {
	if n.Runtime == nil {
		n.Runtime = &Runtime{}
	}
}

// localPoller adapts a *queue.Local[any] to Poller.
type localPoller struct{ q *queue.Local[any] }

func (p localPoller) PollTask() (any, bool) { return p.q.Poll() }
func (p localPoller) Empty() bool           { return p.q.Empty() }

// QueueRewrite allocates one unbounded FIFO per child edge, bottom-up:
// each child's Runtime.In becomes the poll side of its edge queue, and
// each parent's Runtime.Out offers (per multimap expansion, gated by each
// child's When) into every child's edge queue.
func QueueRewrite(root *Node) {
	queueRewriteNode(root)
}

func queueRewriteNode(v *Node) {
	for _, c := range v.Children {
		queueRewriteNode(c)
	}

	ensureRuntime(v)
	if len(v.Children) == 0 {
		return
	}

	edges := make([]*queue.Local[any], len(v.Children))
	for i, c := range v.Children {
		edges[i] = queue.NewLocal[any]()
		ensureRuntime(c)
		c.Runtime.In = localPoller{edges[i]}
	}

	v.Runtime.Out = SinkFunc(func(value any) error {
		for _, z := range multimapElems(v, value) {
			for i, c := range v.Children {
				if c.When != nil && !c.When.Test(z) {
					continue
				}
				edges[i].Offer(z)
			}
		}
		return nil
	})
}

// FifoIn gives root its own unbounded ingress queue, and populates
// Runtime.Queue, Runtime.In, and Runtime.Offer. Offer dedups via
// OfferUnique, so offering twice with equal values between polls
// increases queue size by at most one. A value failing root.When (if
// set) is dropped without being enqueued, the pool-mode equivalent of
// CompRewrite's own root.When gate.
func FifoIn(root *Node) OfferFunc {
	ensureRuntime(root)
	q := queue.NewLocal[any]()
	root.Runtime.Queue = localPoller{q}
	root.Runtime.In = localPoller{q}
	offer := OfferFunc(func(value any) error {
		if root.When != nil && !root.When.Test(value) {
			return nil
		}
		q.OfferUnique(value)
		return nil
	})
	root.Runtime.Offer = offer
	return offer
}

// AddPool walks every vertex and starts a pool of Threads workers driving
// it (Threads <= 0 resolves to runtime.GOMAXPROCS(0), cgroup-aware via
// workerpool's automaxprocs wiring). Each pool's Shutdown thunk runs the
// pool's two-phase shutdown. A worker with nothing to poll (no Runtime.In,
// or an empty one: the steady state until the root receives work, or a
// refill fires) yields for 10ms rather than workerpool.DefaultYield, and
// stops waiting early once the pool's shutdown closes its Done channel.
func AddPool(root *Node) {
	addPoolNode(root)
}

func addPoolNode(v *Node) {
	ensureRuntime(v)

	threads := v.Threads
	if threads <= 0 {
		threads = runtime.GOMAXPROCS(0)
	}

	pool := workerpool.NewPool()
	const idleWait = 10 * time.Millisecond
	yield := func() {
		t := time.NewTimer(idleWait)
		defer t.Stop()
		select {
		case <-pool.Done():
		case <-t.C:
		}
	}
	scheduler := func() workerpool.WorkItem {
		return workerpool.WorkItem{
			F:    v.F,
			In:   v.Runtime.In,
			Out:  v.Runtime.Out,
			Exec: workerpool.SyncExec{},
		}
	}

	if err := pool.QueueWork(workerpool.Work(scheduler, yield), threads); err != nil {
		flog.Error("flowgraph", "failed to start node pool", err, flog.Fields{"node": v.ID})
	} else {
		v.Shutdown = append(v.Shutdown, ShutdownFunc(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownBudget)
			defer cancel()
			return pool.Shutdown(ctx)
		}))
	}

	for _, c := range v.Children {
		addPoolNode(c)
	}
}

// RunPool lowers root into pool mode: folds rewrites, allocates edge
// queues (QueueRewrite), gives root a FIFO ingress (FifoIn), then starts
// every node's pool (AddPool). It returns root's public Offer and a kill
// function that runs KillGraph on root.
//
// Callers wanting priority ingress instead should call PriorityIn(prio,
// root) after RunPool: it replaces root's FIFO ingress in place, and the
// already-running pool picks up the change on its next scheduling
// iteration, since AddPool's scheduler re-reads Runtime.In on every call.
func RunPool(root *Node, rewrites ...Rewrite) (offer OfferFunc, kill func()) {
	GraphRewrite(rewrites, root)
	QueueRewrite(root)
	offer = FifoIn(root)
	AddPool(root)
	return offer, func() { KillGraph(root) }
}
