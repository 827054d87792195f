// Package tour walks one demonstration schema, a user table with an
// auto-assigned id, a name and a date of birth, through the access layers
// the repository provides, from raw textual SQL up to two object-mapping
// layers. Every stage creates the table, inserts rows, queries them back and
// drops the table again, so each stage starts from a clean database.
package tour

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rowanlith/sqltour"
)

// Stage is one step of the tour. Stages are self-contained: they open their
// own handles against Env.DBPath and leave no table behind.
type Stage interface {
	Name() string
	Description() string
	Run(ctx context.Context, env *Env) error
}

// Env carries the shared settings every stage runs with.
type Env struct {
	DBPath        string
	Echo          bool // log every SQL statement
	SlowThreshold time.Duration
	Logger        *zap.Logger
}

func (e *Env) dsn() string {
	return "file:" + e.DBPath + "?cache=shared&mode=rwc"
}

func (e *Env) slowThreshold() time.Duration {
	if e.SlowThreshold <= 0 {
		return 200 * time.Millisecond
	}
	return e.SlowThreshold
}

// openSession opens the tour database and wraps it in an instrumented
// session. The caller owns the returned *sql.DB.
func openSession(env *Env) (*sql.DB, *sqltour.Session, error) {
	db, err := sql.Open("sqlite3", env.dsn())
	if err != nil {
		return nil, nil, fmt.Errorf("tour: open database: %w", err)
	}

	sess := sqltour.NewSession(db, sqltour.SQLite,
		sqltour.WithLogger(env.Logger),
		sqltour.WithStatementLogging(env.Echo),
		sqltour.WithSlowQueryThreshold(env.slowThreshold()),
		sqltour.WithDefaultTracer(),
		sqltour.WithDefaultMeter(),
	)
	return db, sess, nil
}

// Stages returns all stages in tour order.
func Stages() []Stage {
	return []Stage{RawSQL{}, Builder{}, Mapper{}, Record{}}
}

// Lookup returns the stage with the given name.
func Lookup(name string) (Stage, bool) {
	for _, s := range Stages() {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Run executes the given stages in order, logging per-stage timing. The
// first failing stage aborts the run.
func Run(ctx context.Context, env *Env, stages ...Stage) error {
	for _, st := range stages {
		log := env.Logger.With(zap.String("stage", st.Name()))
		log.Info("stage starting", zap.String("description", st.Description()))

		start := time.Now()
		if err := st.Run(ctx, env); err != nil {
			log.Error("stage failed", zap.Error(err))
			return fmt.Errorf("tour: stage %s: %w", st.Name(), err)
		}
		log.Info("stage complete", zap.Duration("elapsed", time.Since(start)))
	}
	return nil
}

// mustTime parses an RFC 3339 timestamp, panicking on malformed input. The
// tour's fixture timestamps are compile-time constants.
func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}
