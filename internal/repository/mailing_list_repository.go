package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/azulu-crm/internal/model"
)

const entryColumns = "id, name, email, subscribed, created_at"

// MailingListRepo encapsulates all database queries related to
// subscribers.  Emails are stored as given; callers normalise them.
type MailingListRepo struct {
	scope
}

// NewMailingListRepo constructs a MailingListRepo with the provided DB handle.
func NewMailingListRepo(db *sql.DB) *MailingListRepo {
	return &MailingListRepo{scope: newScope(db)}
}

// InTx runs fn against a copy of the repo bound to one transaction.
func (r *MailingListRepo) InTx(ctx context.Context, fn func(MailingListRepository) error) error {
	return r.begin(ctx, func(s scope) error { return fn(&MailingListRepo{scope: s}) })
}

// Create inserts a subscriber and reloads it so created_at carries the
// database default.  A taken email yields ErrDuplicate.
func (r *MailingListRepo) Create(ctx context.Context, e *model.MailingListEntry) error {
	const qInsert = "INSERT INTO mailing_list (name, email, subscribed) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, e.Name, e.Email, e.Subscribed)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	// Perform a follow-up SELECT to populate created_at.
	const qSelect = "SELECT created_at FROM mailing_list WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, e.ID).Scan(&e.CreatedAt)
}

// GetByID fetches a subscriber by id.
func (r *MailingListRepo) GetByID(ctx context.Context, id uint64) (*model.MailingListEntry, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByEmail fetches a subscriber by email.  Inside a transaction the row is
// locked, which serialises concurrent signups for the same address.
func (r *MailingListRepo) GetByEmail(ctx context.Context, email string) (*model.MailingListEntry, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *MailingListRepo) getOne(ctx context.Context, where string, arg any) (*model.MailingListEntry, error) {
	q := "SELECT " + entryColumns + " FROM mailing_list WHERE " + where + r.lock()
	var e model.MailingListEntry
	if err := r.db.QueryRowContext(ctx, q, arg).Scan(&e.ID, &e.Name, &e.Email, &e.Subscribed, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns one page of subscribers ordered by id, optionally only the
// active ones.
func (r *MailingListRepo) List(ctx context.Context, subscribedOnly bool, offset, limit int) ([]*model.MailingListEntry, error) {
	q := "SELECT " + entryColumns + " FROM mailing_list"
	args := []any{}
	if subscribedOnly {
		q += " WHERE subscribed = ?"
		args = append(args, true)
	}
	q += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.MailingListEntry{}
	for rows.Next() {
		e := new(model.MailingListEntry)
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Subscribed, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites name and subscribed of the row identified by e.ID.
// The email is immutable once stored.
func (r *MailingListRepo) Update(ctx context.Context, e *model.MailingListEntry) error {
	const q = "UPDATE mailing_list SET name = ?, subscribed = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, e.Name, e.Subscribed, e.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// Delete removes a subscriber for good.
func (r *MailingListRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM mailing_list WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEntryNotFound
	}
	return nil
}
