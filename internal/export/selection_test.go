package export

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSelectionKeepsInsertionOrder(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	s := NewSelection()
	s.Add(b)
	s.Add(a)
	s.Add(c)
	s.Add(a) // duplicate is ignored, position kept

	require.Equal(t, []uuid.UUID{b, a, c}, s.IDs())
	require.Equal(t, 3, s.Len())
}

func TestSelectionClear(t *testing.T) {
	s := NewSelection(uuid.New(), uuid.New())
	require.Equal(t, 2, s.Len())

	s.Clear()
	require.Equal(t, 0, s.Len())
	require.Empty(t, s.IDs())

	id := uuid.New()
	s.Add(id)
	require.Equal(t, []uuid.UUID{id}, s.IDs())
}
