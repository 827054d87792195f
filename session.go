package sqltour

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

// Executor defines the common database operations for both DB and Tx.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	GetContext(ctx context.Context, dest any, query string, args ...any) error
}

// Session manages the database connection and current transaction. Every
// statement that passes through it is instrumented according to the
// observability options it was created with.
type Session struct {
	db       *sqlx.DB // Underlying DB for starting transactions
	executor Executor // Current executor (DB or Tx)
	dialect  Dialect
	obs      *obsConfig
}

func NewSession(db *sql.DB, dialect Dialect, opts ...SessionOption) *Session {
	xdb := sqlx.NewDb(db, dialect.Name())
	s := &Session{
		db:       xdb,
		executor: xdb,
		dialect:  dialect,
		obs:      defaultObsConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dialect returns the dialect the session was created with.
func (s *Session) Dialect() Dialect { return s.dialect }

func (s *Session) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	ctx, span := s.startSpan(ctx, "sqltour.query")
	defer span.End()

	start := time.Now()
	rows, err := s.executor.QueryContext(ctx, query, args...)
	s.observe(ctx, span, "query", query, time.Since(start), err)
	return rows, err
}

func (s *Session) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.executor.QueryRowContext(ctx, query, args...)
}

func (s *Session) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, span := s.startSpan(ctx, "sqltour.exec")
	defer span.End()

	start := time.Now()
	res, err := s.executor.ExecContext(ctx, query, args...)
	s.observe(ctx, span, "exec", query, time.Since(start), err)
	return res, err
}

func (s *Session) Select(ctx context.Context, dest any, query string, args ...any) error {
	ctx, span := s.startSpan(ctx, "sqltour.select")
	defer span.End()

	start := time.Now()
	err := s.executor.SelectContext(ctx, dest, query, args...)
	s.observe(ctx, span, "select", query, time.Since(start), err)
	return err
}

func (s *Session) Get(ctx context.Context, dest any, query string, args ...any) error {
	ctx, span := s.startSpan(ctx, "sqltour.get")
	defer span.End()

	start := time.Now()
	err := s.executor.GetContext(ctx, dest, query, args...)
	s.observe(ctx, span, "get", query, time.Since(start), err)
	return err
}

func (s *Session) Begin(ctx context.Context) (*Session, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	// New Session where executor is the transaction; observability
	// settings carry over.
	return &Session{
		db:       s.db,
		executor: tx,
		dialect:  s.dialect,
		obs:      s.obs,
	}, nil
}

func (s *Session) Commit() error {
	if tx, ok := s.executor.(*sqlx.Tx); ok {
		return tx.Commit()
	}
	return sql.ErrTxDone
}

func (s *Session) Rollback() error {
	if tx, ok := s.executor.(*sqlx.Tx); ok {
		return tx.Rollback()
	}
	return sql.ErrTxDone
}

// Transaction executes a function within a transaction.
func (s *Session) Transaction(ctx context.Context, fn func(txSession *Session) error) (err error) {
	// Check if already in transaction
	if _, ok := s.executor.(*sqlx.Tx); ok {
		return fn(s)
	}

	txSession, err := s.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = txSession.Rollback()
			panic(p)
		} else if err != nil {
			_ = txSession.Rollback()
		}
	}()

	err = fn(txSession)
	if err != nil {
		return err
	}

	return txSession.Commit()
}
