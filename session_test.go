package sqltour_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rowanlith/sqltour"
)

func TestTransactionCommit(t *testing.T) {
	db, session := setupAccountDB(t)
	defer db.Close()

	ctx := context.Background()
	err := session.Transaction(ctx, func(tx *sqltour.Session) error {
		repo := sqltour.NewRepository[Account](tx)
		return repo.Create(ctx, &Account{Username: "alice", CreatedAt: time.Now()})
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	count, err := sqltour.Query[Account](session).Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 row after commit, got %d", count)
	}
}

func TestTransactionRollback(t *testing.T) {
	db, session := setupAccountDB(t)
	defer db.Close()

	ctx := context.Background()
	boom := errors.New("boom")

	err := session.Transaction(ctx, func(tx *sqltour.Session) error {
		repo := sqltour.NewRepository[Account](tx)
		if err := repo.Create(ctx, &Account{Username: "alice", CreatedAt: time.Now()}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected boom error, got %v", err)
	}

	count, err := sqltour.Query[Account](session).Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 rows after rollback, got %d", count)
	}
}

func TestTransactionPanicRollsBack(t *testing.T) {
	db, session := setupAccountDB(t)
	defer db.Close()

	ctx := context.Background()
	func() {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic to propagate")
			}
		}()
		_ = session.Transaction(ctx, func(tx *sqltour.Session) error {
			repo := sqltour.NewRepository[Account](tx)
			if err := repo.Create(ctx, &Account{Username: "alice", CreatedAt: time.Now()}); err != nil {
				return err
			}
			panic("boom")
		})
	}()

	count, err := sqltour.Query[Account](session).Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 rows after panic rollback, got %d", count)
	}
}

func TestNestedTransactionReusesSession(t *testing.T) {
	db, session := setupAccountDB(t)
	defer db.Close()

	ctx := context.Background()
	err := session.Transaction(ctx, func(tx *sqltour.Session) error {
		// Already in a transaction: the inner call must not begin a new one.
		return tx.Transaction(ctx, func(inner *sqltour.Session) error {
			if inner != tx {
				t.Error("Expected inner transaction to reuse the outer session")
			}
			repo := sqltour.NewRepository[Account](inner)
			return repo.Create(ctx, &Account{Username: "alice", CreatedAt: time.Now()})
		})
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	count, err := sqltour.Query[Account](session).Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 row, got %d", count)
	}
}

func TestCommitOutsideTransaction(t *testing.T) {
	db, session := setupTestDB(t)
	defer db.Close()

	if err := session.Commit(); !errors.Is(err, sql.ErrTxDone) {
		t.Errorf("Commit outside transaction = %v, want sql.ErrTxDone", err)
	}
	if err := session.Rollback(); !errors.Is(err, sql.ErrTxDone) {
		t.Errorf("Rollback outside transaction = %v, want sql.ErrTxDone", err)
	}
}

func TestStatementLogging(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	session := sqltour.NewSession(db, sqltour.SQLite,
		sqltour.WithLogger(zap.New(core)),
		sqltour.WithStatementLogging(true),
		sqltour.WithSlowQueryThreshold(time.Hour),
	)

	ctx := context.Background()
	if _, err := session.Exec(ctx, "CREATE TABLE echo_check (id INTEGER)"); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	entries := logs.FilterMessage("statement executed").All()
	if len(entries) != 1 {
		t.Fatalf("Expected 1 'statement executed' entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["statement"] != "CREATE TABLE echo_check (id INTEGER)" {
		t.Errorf("Unexpected statement field: %v", fields["statement"])
	}
	if fields["operation"] != "exec" {
		t.Errorf("Unexpected operation field: %v", fields["operation"])
	}
}

func TestStatementErrorLogging(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	session := sqltour.NewSession(db, sqltour.SQLite,
		sqltour.WithLogger(zap.New(core)),
	)

	ctx := context.Background()
	if _, err := session.Exec(ctx, "NOT VALID SQL"); err == nil {
		t.Fatal("Expected error from invalid SQL")
	}

	if len(logs.FilterMessage("statement failed").All()) != 1 {
		t.Error("Expected a 'statement failed' entry")
	}
}

func TestSlowStatementLogging(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	session := sqltour.NewSession(db, sqltour.SQLite,
		sqltour.WithLogger(zap.New(core)),
		sqltour.WithSlowQueryThreshold(time.Nanosecond),
	)

	ctx := context.Background()
	if _, err := session.Exec(ctx, "CREATE TABLE slow_check (id INTEGER)"); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	if len(logs.FilterMessage("slow statement").All()) != 1 {
		t.Error("Expected a 'slow statement' entry")
	}
}
