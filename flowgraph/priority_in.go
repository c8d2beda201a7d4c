package flowgraph

import (
	"fmt"

	"github.com/joeycumines/go-flowgraph/queue"
)

// defaultPriorityCapacity is priority ingress's default bound.
const defaultPriorityCapacity = 200

// priorityPoller adapts a *queue.Priority[any] to Poller; PollTask yields
// queue.PriorityItem[any] values.
type priorityPoller struct{ q *queue.Priority[any] }

func (p priorityPoller) PollTask() (any, bool) {
	item, ok := p.q.Poll()
	if !ok {
		return nil, false
	}
	return item, true
}

func (p priorityPoller) Empty() bool { return p.q.Empty() }

// priorityTransform is the priority-fn wrapper: it unwraps a
// queue.PriorityItem[any], runs the wrapped Transform on its Item, then
// invokes Callback (if present) on the item, before returning the
// wrapped result.
type priorityTransform struct {
	f Transform
}

func (t priorityTransform) Apply(value any) (any, error) {
	item, ok := value.(queue.PriorityItem[any])
	if !ok {
		return nil, fmt.Errorf("flowgraph: priority-in received a non-priority-item value: %T", value)
	}
	result, err := t.f.Apply(item.Item)
	if item.Callback != nil {
		item.Callback(item.Item)
	}
	return result, err
}

// PriorityIn replaces root's FIFO ingress with a bounded priority queue
// (capacity defaultPriorityCapacity), ordered ascending by prio(item) —
// per the canonical worked example (prio=neg processes larger items
// first), prio is a key function computing each item's priority, not a
// pairwise comparator. root.F must be non-nil, a construction-time
// precondition enforced by panicking. A value failing root.When (if set)
// is dropped without being enqueued, the pool-mode equivalent of
// CompRewrite's own root.When gate.
func PriorityIn(prio func(item any) int, root *Node) OfferFunc {
	if root.F == nil {
		panic("flowgraph: priority-in requires a non-nil transform on root")
	}
	ensureRuntime(root)

	pq := queue.NewPriority[any](defaultPriorityCapacity)
	root.Runtime.Queue = priorityPoller{pq}
	root.Runtime.In = priorityPoller{pq}
	root.F = priorityTransform{f: root.F}

	offer := OfferFunc(func(value any) error {
		if root.When != nil && !root.When.Test(value) {
			return nil
		}
		return pq.Offer(queue.PriorityItem[any]{Priority: prio(value), Item: value})
	})
	root.Runtime.Offer = offer
	return offer
}
