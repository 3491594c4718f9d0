package model

// Event is a promotable happening as stored in the `events` table.
// StartDate carries only the calendar date; StartTime and EndTime are
// local wall-clock "HH:MM" strings interpreted in TimeZone, so the three
// are never combined into a single instant.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – event title.
//  VenueName    – name of the venue.
//  Address      – street address of the venue.
//  StartDate    – calendar date of the event (UTC normalized).
//  StartTime    – local start time, "HH:MM".
//  EndTime      – local end time, "HH:MM".
//  TimeZone     – IANA zone the wall-clock times refer to.
//  TicketStatus – Available, Sold Out or Sold At The Door.
//  TicketLink   – optional ticket shop URL.
//  Lineup       – ordered performer names.
//  Genres       – ordered genre tags.
//  Description  – free text.
//  PosterURL    – optional poster image URL.
//  Price        – optional ticket price.
//  Currency     – ISO currency code, USD when not supplied.
type Event struct {
	ID           uint64       `json:"id"`            // events.id
	Name         string       `json:"name"`          // events.name
	VenueName    string       `json:"venue_name"`    // events.venue_name
	Address      string       `json:"address"`       // events.address
	StartDate    Date         `json:"start_date"`    // events.start_date
	StartTime    string       `json:"start_time"`    // events.start_time
	EndTime      string       `json:"end_time"`      // events.end_time
	TimeZone     string       `json:"time_zone"`     // events.time_zone
	TicketStatus TicketStatus `json:"ticket_status"` // events.ticket_status
	TicketLink   *string      `json:"ticket_link"`   // events.ticket_link (nullable)
	Lineup       StringList   `json:"lineup"`        // events.lineup (JSON text)
	Genres       StringList   `json:"genres"`        // events.genres (JSON text)
	Description  string       `json:"description"`   // events.description
	PosterURL    *string      `json:"poster_url"`    // events.poster_url (nullable)
	Price        *float64     `json:"price"`         // events.price (nullable)
	Currency     string       `json:"currency"`      // events.currency
}

// DefaultCurrency is applied when a create request leaves currency empty.
const DefaultCurrency = "USD"

// EventFilter selects which side of today's UTC date a listing returns.
type EventFilter struct {
	Upcoming bool
	Offset   int
	Limit    int
}
