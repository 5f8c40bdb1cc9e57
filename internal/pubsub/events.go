// Package pubsub provides generic publish/subscribe primitives.
//
// Broker fans events out to buffered channels for asynchronous consumers such as
// the Bubble Tea update loop. Listeners delivers events synchronously, in
// subscription order, to callbacks registered by in-process collaborators.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	CreatedEvent      EventType = "created"
	UpdatedEvent      EventType = "updated"
	DeletedEvent      EventType = "deleted"
	RegisteredEvent   EventType = "registered"
	UnregisteredEvent EventType = "unregistered"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
