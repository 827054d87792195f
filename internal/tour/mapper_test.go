package tour_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rowanlith/sqltour/internal/tour"
)

func observedEnv(t *testing.T) (*tour.Env, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	env := &tour.Env{
		DBPath: filepath.Join(t.TempDir(), "tour.db"),
		Logger: zap.New(core),
	}
	return env, logs
}

func TestMapperStageBackfillsIDBeforeCommit(t *testing.T) {
	env, logs := observedEnv(t)
	require.NoError(t, tour.Mapper{}.Run(context.Background(), env))

	flushed := logs.FilterMessage("user flushed").All()
	require.Len(t, flushed, 1)

	fields := flushed[0].ContextMap()
	assert.EqualValues(t, 1, fields["id"])
	assert.Equal(t, "Alice Almeron", fields["name"])
}

func TestMapperStageQueriesBothUsers(t *testing.T) {
	env, logs := observedEnv(t)
	require.NoError(t, tour.Mapper{}.Run(context.Background(), env))

	rows := logs.FilterMessage("user row").All()
	require.Len(t, rows, 2)
	assert.Equal(t, "Alice Almeron", rows[0].ContextMap()["name"])
	assert.Equal(t, "Bob Baker", rows[1].ContextMap()["name"])
}

func TestBuilderStageSelectsInsertedRows(t *testing.T) {
	env, logs := observedEnv(t)
	require.NoError(t, tour.Builder{}.Run(context.Background(), env))

	rows := logs.FilterMessage("user row").All()
	require.Len(t, rows, 2)
	assert.EqualValues(t, 1, rows[0].ContextMap()["id"])
	assert.EqualValues(t, 2, rows[1].ContextMap()["id"])
}

func TestRawStageReadsRowBack(t *testing.T) {
	env, logs := observedEnv(t)
	require.NoError(t, tour.RawSQL{}.Run(context.Background(), env))

	rows := logs.FilterMessage("user row").All()
	require.Len(t, rows, 1)
	// The untyped scan hands text columns back as raw bytes.
	assert.EqualValues(t, "Alice Almeron", rows[0].ContextMap()["name"])
}

func TestRecordStageFetchesByPrimaryKey(t *testing.T) {
	env, logs := observedEnv(t)
	require.NoError(t, tour.Record{}.Run(context.Background(), env))

	fetched := logs.FilterMessage("user fetched by primary key").All()
	require.Len(t, fetched, 1)
	assert.EqualValues(t, 2, fetched[0].ContextMap()["id"])
	assert.Equal(t, "Bob", fetched[0].ContextMap()["name"])
}
