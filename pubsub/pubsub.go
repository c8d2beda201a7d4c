// Package pubsub wires a go-flowgraph graph to an external message bus
// and a publish-side store. Both are treated as opaque collaborators
// (a real deployment supplies its own); this package defines the two
// interfaces and ships a minimal in-memory reference implementation of
// each in memory.go, so the package is exercisable standalone.
package pubsub

import (
	"fmt"

	"github.com/joeycumines/go-flowgraph/flowgraph"
)

// Subscriber registers interest in a named local topic on a Bus. ID is
// the subscriber's identity within the bus; F is invoked by the bus when
// a value is published to the subscribed local name.
type Subscriber struct {
	ID string
	F  func(value any)
}

// Bus is the opaque external message bus collaborator.
type Bus interface {
	AddSubscriber(local string, subscriber Subscriber) error
}

// Store is the opaque external collaborator backing publish topics.
type Store interface {
	Write(topic string, value any) error
}

// PublishConfig configures a publisher node appended by Publish.
type PublishConfig struct {
	Topic string
}

// Subscribe registers subscriber against bus such that published values
// on subscriber's local name are delivered to root's public Offer. root
// must already have an ingress (FifoIn or PriorityIn must have run), and
// root.F must be non-nil: the subscribed bus drives root directly
// through Offer rather than through a second Transform, so the
// meaningful precondition is that root itself is capable of accepting
// values. subscriber.F must be nil: Subscribe itself wires F to deliver
// into root's Offer, so a caller-supplied F would either be silently
// discarded or fight with the one Subscribe installs.
func Subscribe(bus Bus, local string, subscriber Subscriber, root *flowgraph.Node) error {
	if subscriber.F != nil {
		return fmt.Errorf("pubsub: subscribe requires subscriber.F to be nil; Subscribe wires it")
	}
	if root.F == nil {
		return fmt.Errorf("pubsub: subscribe requires root to have a non-nil transform")
	}
	if root.Runtime == nil || root.Runtime.Offer == nil {
		return fmt.Errorf("pubsub: subscribe requires root to already have an ingress (FifoIn/PriorityIn)")
	}
	offer := root.Runtime.Offer
	subscriber.F = func(value any) { _ = offer(value) }
	return bus.AddSubscriber(local, subscriber)
}

// Publish constructs a publisher node -- whose Transform writes each
// value it sees to cfg.Topic in store -- and appends it as a child of
// the node matching parentID in root's subtree. cfg.Topic must be
// non-empty, a construction-time precondition returned as an error.
func Publish(store Store, parentID string, cfg PublishConfig, root *flowgraph.Cursor) (*flowgraph.Cursor, error) {
	if cfg.Topic == "" {
		return nil, fmt.Errorf("pubsub: publish requires a non-empty topic")
	}
	publisher := flowgraph.TransformFunc(func(value any) (any, error) {
		return value, store.Write(cfg.Topic, value)
	})
	child := &flowgraph.Node{F: publisher, ID: "publish:" + cfg.Topic}
	return flowgraph.AppendChild(root, parentID, child)
}
