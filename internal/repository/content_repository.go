package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/azulu-crm/internal/model"
)

// ContentRepo encapsulates all database queries related to content
// fragments.  `key` is a reserved word in MySQL and is always quoted.
type ContentRepo struct {
	scope
}

// NewContentRepo constructs a ContentRepo with the provided DB handle.
func NewContentRepo(db *sql.DB) *ContentRepo {
	return &ContentRepo{scope: newScope(db)}
}

// InTx runs fn against a copy of the repo bound to one transaction.
func (r *ContentRepo) InTx(ctx context.Context, fn func(ContentRepository) error) error {
	return r.begin(ctx, func(s scope) error { return fn(&ContentRepo{scope: s}) })
}

// Create inserts a new fragment.  A taken key yields ErrDuplicate.
func (r *ContentRepo) Create(ctx context.Context, c *model.Content) error {
	const q = "INSERT INTO contents (`key`, string_collection, big_string) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, c.Key, c.StringCollection, c.BigString)
	if err != nil {
		return classify(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByKey fetches a fragment by its unique key.
func (r *ContentRepo) GetByKey(ctx context.Context, key string) (*model.Content, error) {
	q := "SELECT id, `key`, string_collection, big_string FROM contents WHERE `key` = ?" + r.lock()
	var c model.Content
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&c.ID, &c.Key, &c.StringCollection, &c.BigString); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns one page of fragments ordered by id.
func (r *ContentRepo) List(ctx context.Context, offset, limit int) ([]*model.Content, error) {
	const q = "SELECT id, `key`, string_collection, big_string FROM contents ORDER BY id LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Content{}
	for rows.Next() {
		c := new(model.Content)
		if err := rows.Scan(&c.ID, &c.Key, &c.StringCollection, &c.BigString); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the body of the row identified by c.ID.  The key is
// fixed at creation.
func (r *ContentRepo) Update(ctx context.Context, c *model.Content) error {
	const q = "UPDATE contents SET string_collection = ?, big_string = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, c.StringCollection, c.BigString, c.ID)
	if err != nil {
		return classify(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrContentNotFound
	}
	return nil
}

// DeleteByKey removes the fragment stored under key.
func (r *ContentRepo) DeleteByKey(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contents WHERE `key` = ?", key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrContentNotFound
	}
	return nil
}
