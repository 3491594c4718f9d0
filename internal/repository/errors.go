// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow the service layer to tell a
// missing row apart from a duplicate key or a storage outage without
// inspecting driver errors itself.
package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
)

// Not-found sentinels, one per table.
var (
	ErrEventNotFound   = errors.New("event not found")
	ErrContentNotFound = errors.New("content not found")
	ErrDjNotFound      = errors.New("dj not found")
	ErrSocialsNotFound = errors.New("dj socials not found")
	ErrEntryNotFound   = errors.New("mailing list entry not found")
)

// ErrDuplicate is returned when an insert or update violates a unique key
// (contents.key, mailing_list.email).  The driver error is kept in the chain.
var ErrDuplicate = errors.New("duplicate key")

// MySQL server error numbers the repository layer cares about.
const (
	errDupEntry         = 1062
	errConCount         = 1040 // too many connections
	errLockWaitTimeout  = 1205
	errLockDeadlock     = 1213
	errServerShutdown   = 1053
	errQueryInterrupted = 1317
)

// classify wraps a unique-key violation in ErrDuplicate and returns any
// other error unchanged.
func classify(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == errDupEntry {
		return fmt.Errorf("%w: %s", ErrDuplicate, me.Message)
	}
	return err
}

// IsTransient reports whether err is worth retrying: a dropped or invalid
// connection, a network failure, pool exhaustion on the server, a lock wait
// timeout or a deadlock.  Everything else, including not-found and duplicate
// errors, is permanent.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errConCount, errLockWaitTimeout, errLockDeadlock, errServerShutdown, errQueryInterrupted:
			return true
		}
		return false
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// IsRejected reports whether err proves the statement never reached the
// server or was rolled back by it, so even a non-idempotent write may be
// replayed.  driver.ErrBadConn is only returned before anything is sent; an
// invalid connection or a network error may surface after the write landed.
func IsRejected(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errConCount, errLockWaitTimeout, errLockDeadlock:
			return true
		}
	}
	return false
}
