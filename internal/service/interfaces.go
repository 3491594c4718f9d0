package service

import (
	"context"

	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/model"
)

// EventService defines the interface for event business logic
type EventService interface {
	// CreateEvent stores a new event and returns it with its id
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*model.Event, error)
	// GetEvent retrieves an event by id
	GetEvent(ctx context.Context, id uint64) (*model.Event, error)
	// ListEvents lists upcoming or past events ordered by start date
	ListEvents(ctx context.Context, filter model.EventFilter) ([]*model.Event, error)
	// UpdateEvent applies a partial update
	UpdateEvent(ctx context.Context, id uint64, req *dto.UpdateEventRequest) (*model.Event, error)
	// DeleteEvent removes an event
	DeleteEvent(ctx context.Context, id uint64) error
}

// ContentService defines the interface for keyed content fragments
type ContentService interface {
	CreateContent(ctx context.Context, req *dto.CreateContentRequest) (*model.Content, error)
	GetContent(ctx context.Context, key string) (*model.Content, error)
	ListContent(ctx context.Context, offset, limit int) ([]*model.Content, error)
	UpdateContent(ctx context.Context, key string, req *dto.UpdateContentRequest) (*model.Content, error)
	DeleteContent(ctx context.Context, key string) error
}

// DjService defines the interface for DJ profiles and their socials
type DjService interface {
	CreateDj(ctx context.Context, req *dto.CreateDjRequest) (*model.DjProfile, error)
	GetDj(ctx context.Context, id uint64) (*model.DjProfile, error)
	ListDjs(ctx context.Context, offset, limit int) ([]*model.DjProfile, error)
	UpdateDj(ctx context.Context, id uint64, req *dto.UpdateDjRequest) (*model.DjProfile, error)
	DeleteDj(ctx context.Context, id uint64) error
}

// MailingListService defines the interface for subscriptions
type MailingListService interface {
	// Subscribe creates, keeps or reactivates the entry for req.Email and
	// reports which of the three happened
	Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*model.MailingListEntry, model.SubscribeOutcome, error)
	// Unsubscribe clears the subscribed flag; repeating it is harmless
	Unsubscribe(ctx context.Context, email string) error
	ListEntries(ctx context.Context, subscribedOnly bool, offset, limit int) ([]*model.MailingListEntry, error)
	GetEntry(ctx context.Context, id uint64) (*model.MailingListEntry, error)
	DeleteEntry(ctx context.Context, id uint64) error
}
