package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/azulu-crm/internal/database"
	"github.com/iliyamo/azulu-crm/internal/model"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx, so one repo
// implementation serves both pooled and transactional use.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// EventRepository persists events.
type EventRepository interface {
	Create(ctx context.Context, e *model.Event) error
	GetByID(ctx context.Context, id uint64) (*model.Event, error)
	// List returns events on or after today when f.Upcoming is set and
	// strictly before it otherwise, ordered by start_date then id.
	List(ctx context.Context, f model.EventFilter, today model.Date) ([]*model.Event, error)
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id uint64) error
	InTx(ctx context.Context, fn func(EventRepository) error) error
}

// ContentRepository persists keyed content fragments.
type ContentRepository interface {
	Create(ctx context.Context, c *model.Content) error
	GetByKey(ctx context.Context, key string) (*model.Content, error)
	List(ctx context.Context, offset, limit int) ([]*model.Content, error)
	Update(ctx context.Context, c *model.Content) error
	DeleteByKey(ctx context.Context, key string) error
	InTx(ctx context.Context, fn func(ContentRepository) error) error
}

// DjRepository persists DJ profiles together with their owned socials rows.
// Profile reads return the linked socials loaded into DjProfile.Socials.
type DjRepository interface {
	CreateSocials(ctx context.Context, s *model.DjSocials) error
	UpdateSocials(ctx context.Context, s *model.DjSocials) error
	DeleteSocials(ctx context.Context, id uint64) error

	Create(ctx context.Context, d *model.DjProfile) error
	GetByID(ctx context.Context, id uint64) (*model.DjProfile, error)
	List(ctx context.Context, offset, limit int) ([]*model.DjProfile, error)
	Update(ctx context.Context, d *model.DjProfile) error
	Delete(ctx context.Context, id uint64) error
	InTx(ctx context.Context, fn func(DjRepository) error) error
}

// MailingListRepository persists subscribers.
type MailingListRepository interface {
	Create(ctx context.Context, e *model.MailingListEntry) error
	GetByID(ctx context.Context, id uint64) (*model.MailingListEntry, error)
	GetByEmail(ctx context.Context, email string) (*model.MailingListEntry, error)
	List(ctx context.Context, subscribedOnly bool, offset, limit int) ([]*model.MailingListEntry, error)
	Update(ctx context.Context, e *model.MailingListEntry) error
	Delete(ctx context.Context, id uint64) error
	InTx(ctx context.Context, fn func(MailingListRepository) error) error
}

// scope is embedded by every MySQL repo.  pool is set on the top-level repo
// and nil on the copy bound to a transaction; rows read through a bound copy
// are locked until commit.
type scope struct {
	db   DBTX
	pool *sql.DB
}

func newScope(db *sql.DB) scope { return scope{db: db, pool: db} }

func (s scope) inTx() bool { return s.pool == nil }

// lock returns the locking clause for reads that precede a write.
func (s scope) lock() string {
	if s.inTx() {
		return " FOR UPDATE"
	}
	return ""
}

// begin runs fn with a scope bound to a new transaction, or with the current
// scope when it is already transactional.
func (s scope) begin(ctx context.Context, fn func(scope) error) error {
	if s.inTx() {
		return fn(s)
	}
	return database.WithTx(ctx, s.pool, func(tx *sql.Tx) error {
		return fn(scope{db: tx})
	})
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
