// Package flowgraph builds and executes in-process dataflow graphs of
// concurrent workers. A graph is a tree of Nodes assembled with a Cursor;
// lowering passes (CompRewrite, QueueRewrite+AddPool, PriorityIn,
// ScheduleRefill, ObserverRewrite) turn that declaration into either a
// single composed function (sync mode) or a set of pool-backed nodes
// joined by queues (pool mode).
package flowgraph

// Transform is a node's unit of work: a function of one value producing
// one value (or, for a Multimap node, a []any boxed as any).
type Transform interface {
	Apply(value any) (any, error)
}

// TransformFunc adapts a plain function to Transform.
type TransformFunc func(value any) (any, error)

func (f TransformFunc) Apply(value any) (any, error) { return f(value) }

// Predicate gates whether a node runs for a given incoming value.
type Predicate interface {
	Test(value any) bool
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(value any) bool

func (f PredicateFunc) Test(value any) bool { return f(value) }

// Sink accepts a value produced by a node's Transform, fanning it out
// however the node's lowering pass configured.
type Sink interface {
	Offer(value any) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(value any) error

func (f SinkFunc) Offer(value any) error { return f(value) }

// Source produces a finite batch of values on demand, used by
// ScheduleRefill to feed an idle ingress.
type Source interface {
	Next() ([]any, error)
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func() ([]any, error)

func (f SourceFunc) Next() ([]any, error) { return f() }

// Shutdowner is a zero-arg termination action appended to a Node's
// Shutdown slice by a lowering pass. Implementations must be idempotent.
type Shutdowner interface {
	Shutdown() error
}

// ShutdownFunc adapts a plain function to Shutdowner.
type ShutdownFunc func() error

func (f ShutdownFunc) Shutdown() error { return f() }

// OfferFunc is the public ingress entry point installed by FifoIn or
// PriorityIn.
type OfferFunc func(value any) error

// Poller is polled non-blockingly for the next task. ok is false when no
// task is currently available; the worker loop should yield in that case.
type Poller interface {
	PollTask() (task any, ok bool)
}
