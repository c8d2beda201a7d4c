// Package queue implements the two queue primitives that back a
// go-flowgraph graph: an unbounded FIFO (Local) used for edge queues and
// refill-fed ingress, and a bounded, priority-ordered queue (Priority) used
// for priority ingress.
//
// Both types are safe for concurrent use by multiple producers and
// multiple consumers. Neither blocks on an empty poll: Poll returns
// immediately, signalling emptiness via its second return value, so
// callers (typically a worker loop) can decide how to yield.
package queue
