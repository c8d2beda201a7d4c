package flowgraph

import (
	"time"

	"github.com/joeycumines/go-flowgraph/flog"
	"github.com/joeycumines/go-flowgraph/workerpool"
)

// emptyChecker is satisfied by localPoller and priorityPoller; used by
// ScheduleRefill to implement its "if the root's queue is empty, invoke
// refill" gate without widening the Poller interface itself.
type emptyChecker interface {
	Empty() bool
}

// ScheduleRefill starts a background scheduler firing every freq. On
// each tick, if root's ingress queue is empty, it invokes refill
// (expected to return a finite batch of items) and offers each
// non-nil result into root, logging and swallowing per-item offer
// errors; other items are still offered. A non-empty queue at tick time
// means the tick is skipped entirely. root must already have an ingress
// queue (FifoIn or PriorityIn must have run first). Appends a Shutdown
// thunk stopping the scheduler.
func ScheduleRefill(refill func() ([]any, error), freq time.Duration, root *Node) {
	ensureRuntime(root)
	src := SourceFunc(refill)

	task := workerpool.Schedule(func() error {
		if checker, ok := root.Runtime.Queue.(emptyChecker); ok && !checker.Empty() {
			return nil
		}

		items, err := src.Next()
		if err != nil {
			return err
		}

		for _, item := range items {
			if item == nil {
				continue
			}
			if err := root.Runtime.Offer(item); err != nil {
				flog.Error("flowgraph", "refill item offer failed", err, flog.Fields{"node": root.ID})
			}
		}
		return nil
	}, freq)

	root.Shutdown = append(root.Shutdown, ShutdownFunc(func() error {
		task.Stop()
		return nil
	}))
}
