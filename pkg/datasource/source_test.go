package datasource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, src Source) []string {
	t.Helper()
	var rows []string
	for {
		row, err := src.Next(context.Background())
		if errors.Is(err, ErrEof) {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestDatasource_SplitRows(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected []string
	}{
		{"empty", "", []string{}},
		{"semicolon rows", "a,b;c,d", []string{"a,b", "c,d"}},
		{"newline rows", "a,b\r\nc,d\n", []string{"a,b", "c,d"}},
		{"mixed and blank rows", "a;;b\n\nc;", []string{"a", "b", "c"}},
		{"section separator", "a;b@x;y@z", []string{"a", "b"}},
		{"empty first section", "@a;b", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitRows(tt.payload))
		})
	}
}

func TestDatasource_Lines(t *testing.T) {
	src := NewLines("one", "two")
	assert.Equal(t, []string{"one", "two"}, drain(t, src))

	_, err := src.Next(context.Background())
	assert.ErrorIs(t, err, ErrEof)
	assert.NoError(t, src.Close())
}

func TestDatasource_LinesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLines("one").Next(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
