package flowgraph

import (
	"time"

	"github.com/google/uuid"
	"github.com/joeycumines/go-flowgraph/flog"
)

// ObserverRewrite maps obs over every vertex of root, replacing each
// node's Transform with obs(node) — a meta-function receiving the
// vertex and returning a new Transform, intended for uniform
// instrumentation (timing, tracing) wrapped around whatever Transform
// the node already had.
func ObserverRewrite(obs func(*Node) Transform, root *Node) {
	observerRewriteNode(obs, root)
}

func observerRewriteNode(obs func(*Node) Transform, v *Node) {
	v.F = obs(v)
	for _, c := range v.Children {
		observerRewriteNode(obs, c)
	}
}

// TimingObserver is a reference ObserverRewrite meta-function that logs
// each invocation's wall-clock duration via flog, alongside the node id.
func TimingObserver(v *Node) Transform {
	inner := v.F
	return TransformFunc(func(x any) (any, error) {
		start := time.Now()
		y, err := inner.Apply(x)
		flog.Info("flowgraph", "node timing", flog.Fields{
			"node":        v.ID,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return y, err
	})
}

// TraceObserver is a reference ObserverRewrite meta-function that stamps
// a per-invocation correlation id into the flog fields it emits, so a
// single value's path through the graph can be followed in logs.
func TraceObserver(v *Node) Transform {
	inner := v.F
	return TransformFunc(func(x any) (any, error) {
		traceID := uuid.NewString()
		y, err := inner.Apply(x)
		fields := flog.Fields{"node": v.ID, "trace_id": traceID}
		if err != nil {
			flog.Error("flowgraph", "node trace", err, fields)
		} else {
			flog.Debug("flowgraph", "node trace", fields)
		}
		return y, err
	})
}
