package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeTx struct {
	DBExecutor
	committed bool
}

func (f *fakeTx) Commit() error   { f.committed = true; return nil }
func (f *fakeTx) Rollback() error { return nil }

func TestGetExecutor(t *testing.T) {
	db := &sql.DB{}
	ctx := context.Background()

	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "SELECT", operation("select id from slots"))
	assert.Equal(t, "UPDATE", operation("\n  UPDATE counselling_slots SET x = 1"))
	assert.Equal(t, "COMMIT", operation("commit"))
}
