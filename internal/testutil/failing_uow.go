package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/ironplan/internal/db"
)

// FailOnNthExecUoW fails the FailOn-th write (1-based) of a transaction
// with Err. Used to prove session replacement and exchange restore leave
// nothing half-written. Reads are not counted.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.RunTx(ctx, u.DB, func(tx *sql.Tx) db.DBTX {
		return &execCounter{DBTX: tx, failOn: u.FailOn, err: u.Err}
	}, fn)
}

// execCounter is only used from one goroutine per transaction.
type execCounter struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (c *execCounter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.writes++
	if c.writes == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
