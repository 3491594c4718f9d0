package dto

import "github.com/iliyamo/azulu-crm/internal/model"

// CreateEventRequest represents the request to create a new event
type CreateEventRequest struct {
	Name         string      `json:"name" validate:"required,notblank,max=255"`
	VenueName    string      `json:"venue_name" validate:"required,notblank,max=255"`
	Address      string      `json:"address" validate:"required,notblank,max=255"`
	StartDate    *model.Date `json:"start_date" validate:"required"`
	StartTime    string      `json:"start_time" validate:"required,max=5,clock"`
	EndTime      string      `json:"end_time" validate:"required,max=5,clock"`
	TimeZone     string      `json:"time_zone" validate:"required,max=64,timezone"`
	TicketStatus string      `json:"ticket_status" validate:"required,ticket_status"`
	TicketLink   *string     `json:"ticket_link" validate:"omitempty,max=255"`
	Lineup       []string    `json:"lineup"`
	Genres       []string    `json:"genres"`
	Description  *string     `json:"description" validate:"required"`
	PosterURL    *string     `json:"poster_url" validate:"omitempty,max=255"`
	Price        *float64    `json:"price"`
	Currency     string      `json:"currency" validate:"omitempty,max=10"`
}

// Event builds the row to insert.  Currency falls back to USD.
func (r *CreateEventRequest) Event() *model.Event {
	e := &model.Event{
		Name:         r.Name,
		VenueName:    r.VenueName,
		Address:      r.Address,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		TimeZone:     r.TimeZone,
		TicketStatus: model.TicketStatus(r.TicketStatus),
		TicketLink:   r.TicketLink,
		Lineup:       nonNil(r.Lineup),
		Genres:       nonNil(r.Genres),
		PosterURL:    r.PosterURL,
		Price:        r.Price,
		Currency:     r.Currency,
	}
	if r.StartDate != nil {
		e.StartDate = *r.StartDate
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	if e.Currency == "" {
		e.Currency = model.DefaultCurrency
	}
	return e
}

// UpdateEventRequest represents a partial update of an event.  An absent
// field leaves the stored value untouched.  The nullable columns
// (ticket_link, poster_url, price) are cleared by an explicit null; null on
// any other field counts as absent.
type UpdateEventRequest struct {
	Name         *string           `json:"name" validate:"omitempty,min=1,notblank,max=255"`
	VenueName    *string           `json:"venue_name" validate:"omitempty,min=1,notblank,max=255"`
	Address      *string           `json:"address" validate:"omitempty,min=1,notblank,max=255"`
	StartDate    *model.Date       `json:"start_date"`
	StartTime    *string           `json:"start_time" validate:"omitempty,max=5,clock"`
	EndTime      *string           `json:"end_time" validate:"omitempty,max=5,clock"`
	TimeZone     *string           `json:"time_zone" validate:"omitempty,max=64,timezone"`
	TicketStatus *string           `json:"ticket_status" validate:"omitempty,ticket_status"`
	TicketLink   Optional[string]  `json:"ticket_link" validate:"omitempty,max=255"`
	Lineup       []string          `json:"lineup"`
	Genres       []string          `json:"genres"`
	Description  *string           `json:"description"`
	PosterURL    Optional[string]  `json:"poster_url" validate:"omitempty,max=255"`
	Price        Optional[float64] `json:"price"`
	Currency     *string           `json:"currency" validate:"omitempty,min=1,max=10"`
}

// Apply copies every supplied field onto e.
func (r *UpdateEventRequest) Apply(e *model.Event) {
	if r.Name != nil {
		e.Name = *r.Name
	}
	if r.VenueName != nil {
		e.VenueName = *r.VenueName
	}
	if r.Address != nil {
		e.Address = *r.Address
	}
	if r.StartDate != nil {
		e.StartDate = *r.StartDate
	}
	if r.StartTime != nil {
		e.StartTime = *r.StartTime
	}
	if r.EndTime != nil {
		e.EndTime = *r.EndTime
	}
	if r.TimeZone != nil {
		e.TimeZone = *r.TimeZone
	}
	if r.TicketStatus != nil {
		e.TicketStatus = model.TicketStatus(*r.TicketStatus)
	}
	r.TicketLink.applyTo(&e.TicketLink)
	if r.Lineup != nil {
		e.Lineup = model.StringList(r.Lineup)
	}
	if r.Genres != nil {
		e.Genres = model.StringList(r.Genres)
	}
	if r.Description != nil {
		e.Description = *r.Description
	}
	r.PosterURL.applyTo(&e.PosterURL)
	r.Price.applyTo(&e.Price)
	if r.Currency != nil {
		e.Currency = *r.Currency
	}
}
