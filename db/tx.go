package db

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

// TxRunner runs a unit of work inside one database transaction. The conflict
// check, id generation, row writes, resource status update and audit append of
// a booking operation all share one transaction, so the transaction boundary
// is both the unit of atomicity and the unit of conflict serialization.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// GormTxRunner runs transactions at repeatable-read isolation with two
// distinct, finite timeouts: the wait to acquire a transaction and the total
// duration the transaction may run.
type GormTxRunner struct {
	db             *gorm.DB
	acquireWait    time.Duration
	maxDuration    time.Duration
	isolationLevel sql.IsolationLevel
}

func NewGormTxRunner(db *gorm.DB, acquireWait, maxDuration time.Duration) *GormTxRunner {
	return &GormTxRunner{
		db:             db,
		acquireWait:    acquireWait,
		maxDuration:    maxDuration,
		isolationLevel: sql.LevelRepeatableRead,
	}
}

func (r *GormTxRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	// Bound the wait for a free connection separately from the transaction
	// itself; read-committed is insufficient for the conflict check, so the
	// transaction opens at repeatable read.
	acquireCtx, cancelAcquire := context.WithTimeout(ctx, r.acquireWait)
	defer cancelAcquire()

	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	conn, err := sqlDB.Conn(acquireCtx)
	if err != nil {
		return err
	}
	defer conn.Close()

	txCtx, cancelTx := context.WithTimeout(context.WithoutCancel(ctx), r.maxDuration)
	defer cancelTx()

	return r.db.WithContext(txCtx).Transaction(fn, &sql.TxOptions{
		Isolation: r.isolationLevel,
	})
}
