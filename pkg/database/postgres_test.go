package database

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubTx struct {
	committed   bool
	rolledBack  bool
	commitErr   error
	rollbackErr error
}

func (t *stubTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (t *stubTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (t *stubTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (t *stubTx) Commit(ctx context.Context) error {
	t.committed = true
	return t.commitErr
}

func (t *stubTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return t.rollbackErr
}

type stubDB struct {
	tx       *stubTx
	beginErr error
}

func (d *stubDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *stubDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}

func (d *stubDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *stubDB) Begin(ctx context.Context) (Tx, error) {
	if d.beginErr != nil {
		return nil, d.beginErr
	}
	return d.tx, nil
}

func (d *stubDB) Ping(ctx context.Context) error { return nil }
func (d *stubDB) Close()                         {}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db := &stubDB{tx: &stubTx{}}

	err := WithTx(context.Background(), db, func(tx Querier) error {
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.tx.committed {
		t.Error("transaction should be committed")
	}
	if db.tx.rolledBack {
		t.Error("transaction should not be rolled back")
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := &stubDB{tx: &stubTx{}}
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, func(tx Querier) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected original error, got %v", err)
	}
	if db.tx.committed {
		t.Error("transaction must not be committed")
	}
	if !db.tx.rolledBack {
		t.Error("transaction should be rolled back")
	}
}

func TestWithTxToleratesClosedTxOnRollback(t *testing.T) {
	db := &stubDB{tx: &stubTx{rollbackErr: pgx.ErrTxClosed}}
	boom := errors.New("boom")

	err := WithTx(context.Background(), db, func(tx Querier) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("closed-tx rollback must not mask the original error, got %v", err)
	}
}

func TestWithTxRollsBackOnPanic(t *testing.T) {
	db := &stubDB{tx: &stubTx{}}

	defer func() {
		if recover() == nil {
			t.Fatal("panic should propagate")
		}
		if !db.tx.rolledBack {
			t.Error("transaction should be rolled back on panic")
		}
		if db.tx.committed {
			t.Error("transaction must not be committed on panic")
		}
	}()

	_ = WithTx(context.Background(), db, func(tx Querier) error {
		panic("kaboom")
	})
}

func TestWithTxBeginError(t *testing.T) {
	db := &stubDB{beginErr: errors.New("pool exhausted")}

	err := WithTx(context.Background(), db, func(tx Querier) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})
	if err == nil {
		t.Fatal("expected begin error")
	}
}
