// Package queue defines message payloads exchanged over the message broker
// and the publisher and consumer that move them.
package queue

import "time"

// SubscriptionQueue is the durable queue carrying mailing-list lifecycle events.
const SubscriptionQueue = "mailing_list.events"

// SubscriptionEventType names a mailing-list transition.
type SubscriptionEventType string

const (
	EventSubscribed   SubscriptionEventType = "subscribed"
	EventResubscribed SubscriptionEventType = "resubscribed"
	EventUnsubscribed SubscriptionEventType = "unsubscribed"
)

// SubscriptionEvent is published after a subscribe, resubscribe or
// unsubscribe has been committed.  It carries enough for downstream
// consumers to log or sync an external mailing tool without querying the
// primary database.
type SubscriptionEvent struct {
	Type       SubscriptionEventType `json:"type"`
	EntryID    uint64                `json:"entry_id"`
	Name       string                `json:"name"`
	Email      string                `json:"email"`
	OccurredAt time.Time             `json:"occurred_at"`
}
