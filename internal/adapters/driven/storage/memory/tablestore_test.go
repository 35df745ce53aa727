package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gsearch/internal/core/domain"
)

func TestTableStore_Execute(t *testing.T) {
	ctx := context.Background()
	store := NewTableStore()
	require.NoError(t, store.Load(ctx, "Contact", []domain.Record{
		{"Id": "1", "Name": "Ann Smith"},
		{"Id": "2", "Name": "Bob"},
		{"Id": "3", "Name": "SMITHERS"},
	}))

	records, err := store.Execute(ctx, domain.FilterExpression{
		Table: "Contact", Fields: []string{"Name"}, Term: "smith",
	})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0]["Id"])
	assert.Equal(t, "3", records[1]["Id"])
}

func TestTableStore_NoMatchesIsNil(t *testing.T) {
	ctx := context.Background()
	store := NewTableStore()
	require.NoError(t, store.Load(ctx, "Contact", []domain.Record{{"Id": "1", "Name": "Ann"}}))

	records, err := store.Execute(ctx, domain.FilterExpression{
		Table: "Contact", Fields: []string{"Name"}, Term: "zzz",
	})
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestTableStore_UnknownTable(t *testing.T) {
	_, err := NewTableStore().Execute(context.Background(), domain.FilterExpression{
		Table: "Nope", Fields: []string{"Name"}, Term: "x",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestTableStore_ResultsAreCopies(t *testing.T) {
	ctx := context.Background()
	store := NewTableStore()
	source := []domain.Record{{"Id": "1", "Name": "Ann"}}
	require.NoError(t, store.Load(ctx, "Contact", source))

	source[0]["Name"] = "Mutated"

	filter := domain.FilterExpression{Table: "Contact", Fields: []string{"Name"}, Term: "ann"}
	records, err := store.Execute(ctx, filter)
	require.NoError(t, err)
	require.Len(t, records, 1)
	records[0]["Name"] = "Changed"

	again, err := store.Execute(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, "Ann", again[0]["Name"])
}

func TestTableStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewTableStore().Execute(ctx, domain.FilterExpression{Table: "Contact"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTableStore_LoadRequiresTable(t *testing.T) {
	err := NewTableStore().Load(context.Background(), "", nil)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
