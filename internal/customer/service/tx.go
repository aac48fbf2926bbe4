package service

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	dErrors "custodia/pkg/domain-errors"
	"custodia/pkg/platform/tx"
)

// UnitOfWork is the transactional boundary for one command. All reads,
// writes, and the command-log append of a command happen inside a single
// RunInTx call and commit or roll back together. The key identifies the
// aggregate being mutated so implementations can serialize commands that
// touch the same customer.
type UnitOfWork interface {
	RunInTx(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// defaultTxTimeout bounds a command when the caller supplied no deadline.
const defaultTxTimeout = 5 * time.Second

// numShards spreads the in-memory locks; commands on different customers
// rarely contend, commands on the same customer always serialize.
const numShards = 128

// ShardedUnitOfWork serializes commands per aggregate with sharded mutexes.
// It backs the in-memory stores: within the lock no concurrent command can
// observe partial writes, which is the visibility guarantee the postgres
// transaction gives the production path. It cannot roll back; tests that
// simulate mid-command faults assert the documented worst cases instead.
type ShardedUnitOfWork struct {
	shards  [numShards]sync.Mutex
	timeout time.Duration
}

func NewShardedUnitOfWork() *ShardedUnitOfWork {
	return &ShardedUnitOfWork{timeout: defaultTxTimeout}
}

func (u *ShardedUnitOfWork) RunInTx(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "command aborted: context cancelled")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.timeout)
		defer cancel()
	}

	shard := hashKey(key) % numShards
	u.shards[shard].Lock()
	defer u.shards[shard].Unlock()

	// Re-check after acquiring the lock; a queued command may have waited
	// past its deadline.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "command aborted: context cancelled")
	}

	return fn(ctx)
}

func hashKey(key string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return h.Sum32()
}

// SQLUnitOfWork runs each command inside one database transaction. The
// transaction travels through context (pkg/platform/tx) so every store
// call made by fn joins it; row locks taken by the customer lookup
// serialize concurrent commands on the same customer.
type SQLUnitOfWork struct {
	db *sql.DB
}

func NewSQLUnitOfWork(db *sql.DB) *SQLUnitOfWork {
	return &SQLUnitOfWork{db: db}
}

func (u *SQLUnitOfWork) RunInTx(ctx context.Context, _ string, fn func(ctx context.Context) error) error {
	txn, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}

	if err := fn(tx.WithTx(ctx, txn)); err != nil {
		if rbErr := txn.Rollback(); rbErr != nil {
			return dErrors.Wrap(fmt.Errorf("%w (rollback: %v)", err, rbErr),
				dErrors.CodeOf(err), "command failed and rollback errored")
		}
		return err
	}

	if err := txn.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	return nil
}
