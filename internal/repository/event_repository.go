package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/azulu-crm/internal/model"
)

const eventColumns = `id, name, venue_name, address, start_date, start_time, end_time,
	time_zone, ticket_status, ticket_link, lineup, genres, description,
	poster_url, price, currency`

// EventRepo encapsulates all database queries related to events.
type EventRepo struct {
	scope
}

// NewEventRepo constructs an EventRepo with the provided DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{scope: newScope(db)}
}

// InTx runs fn against a copy of the repo bound to one transaction.
func (r *EventRepo) InTx(ctx context.Context, fn func(EventRepository) error) error {
	return r.begin(ctx, func(s scope) error { return fn(&EventRepo{scope: s}) })
}

// Create inserts a new event.  On success the event's ID field will be
// populated with the auto-generated value.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events (name, venue_name, address, start_date, start_time, end_time,
	           time_zone, ticket_status, ticket_link, lineup, genres, description,
	           poster_url, price, currency)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.VenueName, e.Address, e.StartDate, e.StartTime, e.EndTime,
		e.TimeZone, string(e.TicketStatus), e.TicketLink, e.Lineup, e.Genres, e.Description,
		e.PosterURL, e.Price, e.Currency)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByID fetches an event by its ID.  It returns ErrEventNotFound if no
// row is found.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	q := "SELECT " + eventColumns + " FROM events WHERE id = ?" + r.lock()
	e, err := scanEvent(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns one page of events on one side of today's date.
func (r *EventRepo) List(ctx context.Context, f model.EventFilter, today model.Date) ([]*model.Event, error) {
	cmp := "<"
	if f.Upcoming {
		cmp = ">="
	}
	q := "SELECT " + eventColumns + " FROM events WHERE start_date " + cmp +
		" ? ORDER BY start_date, id LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, today, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Event{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every column of the row identified by e.ID.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events SET name = ?, venue_name = ?, address = ?, start_date = ?,
	           start_time = ?, end_time = ?, time_zone = ?, ticket_status = ?, ticket_link = ?,
	           lineup = ?, genres = ?, description = ?, poster_url = ?, price = ?, currency = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Name, e.VenueName, e.Address, e.StartDate, e.StartTime, e.EndTime,
		e.TimeZone, string(e.TicketStatus), e.TicketLink, e.Lineup, e.Genres, e.Description,
		e.PosterURL, e.Price, e.Currency, e.ID)
	if err != nil {
		return classify(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Delete removes an event.  Events have no dependents.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

func scanEvent(s rowScanner) (*model.Event, error) {
	var (
		e      model.Event
		status string
	)
	if err := s.Scan(&e.ID, &e.Name, &e.VenueName, &e.Address, &e.StartDate, &e.StartTime,
		&e.EndTime, &e.TimeZone, &status, &e.TicketLink, &e.Lineup, &e.Genres,
		&e.Description, &e.PosterURL, &e.Price, &e.Currency); err != nil {
		return nil, err
	}
	e.TicketStatus = model.TicketStatus(status)
	return &e, nil
}
