package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

func TestSearchAndWait_AllTables(t *testing.T) {
	executor := newMockExecutor()
	executor.records["Account"] = []domain.Record{{"Id": "1", "Name": "Smith Holdings"}}
	executor.errs["Contact"] = errQueryFailed

	engine := newTestEngine(t, executor, nil)
	require.NoError(t, engine.Configure(twoTableConfig()))

	ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
	defer cancel()

	outcome, err := SearchAndWait(ctx, engine, "smith")
	require.NoError(t, err)
	assert.True(t, outcome.Complete())
	require.Len(t, outcome.Tables, 2)

	assert.Equal(t, "Account", outcome.Tables[0].Preview.Table)
	assert.Len(t, outcome.Tables[0].Results, 1)
	assert.NoError(t, outcome.Tables[0].Err)

	assert.Equal(t, "Contact", outcome.Tables[1].Preview.Table)
	assert.True(t, errors.Is(outcome.Tables[1].Err, errQueryFailed))
}

func TestSearchAndWait_Deadline(t *testing.T) {
	executor := newMockExecutor()
	gate := make(chan struct{})
	defer close(gate)
	executor.gates["Account"] = gate
	executor.records["Contact"] = []domain.Record{{"Id": "2", "Name": "Judy"}}

	engine := newTestEngine(t, executor, nil)
	require.NoError(t, engine.Configure(twoTableConfig()))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	outcome, err := SearchAndWait(ctx, engine, "ju")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, outcome.Complete())
	assert.False(t, outcome.Tables[0].Done)
	assert.True(t, outcome.Tables[1].Done)
	assert.Len(t, outcome.Tables[1].Results, 1)
}

func TestSearchAndWait_EmptyTerm(t *testing.T) {
	executor := newMockExecutor()
	engine := newTestEngine(t, executor, nil)
	require.NoError(t, engine.Configure(twoTableConfig()))

	outcome, err := SearchAndWait(context.Background(), engine, "  ")
	require.NoError(t, err)
	assert.True(t, outcome.Invocation.Empty())
	assert.Empty(t, outcome.Tables)
	assert.Zero(t, executor.callCount())
}

func TestSearchAndWait_NoTables(t *testing.T) {
	engine := newTestEngine(t, newMockExecutor(), nil)

	outcome, err := SearchAndWait(context.Background(), engine, "x")
	require.NoError(t, err)
	assert.False(t, outcome.Invocation.Empty())
	assert.True(t, outcome.Complete())
}
