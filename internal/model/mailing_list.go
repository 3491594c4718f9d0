package model

import "time"

// MailingListEntry is a subscriber.  Email is unique across all rows whatever
// the subscription state; unsubscribing keeps the row so a later signup
// reactivates it instead of inserting a new one.
type MailingListEntry struct {
	ID         uint64    `json:"id"`         // mailing_list.id
	Name       string    `json:"name"`       // mailing_list.name
	Email      string    `json:"email"`      // mailing_list.email (unique)
	Subscribed bool      `json:"subscribed"` // mailing_list.subscribed
	CreatedAt  time.Time `json:"created_at"` // mailing_list.created_at
}

// SubscribeOutcome tells the caller which transition a signup took.
type SubscribeOutcome int

const (
	SubscribeCreated SubscribeOutcome = iota + 1
	SubscribeAlreadyActive
	SubscribeReactivated
)
