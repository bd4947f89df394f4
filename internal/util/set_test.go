package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := NewSet("b", "a", "c")
	require.Equal(t, 3, s.Length())
	require.Equal(t, []string{"a", "b", "c"}, s.List())

	s.Remove("b")
	require.False(t, s.Contains("b"))
	require.Equal(t, []string{"a", "c"}, s.List())

	ints := NewSet(3, 1, 2)
	require.Equal(t, []int{1, 2, 3}, ints.List())
	ints.Clear()
	require.Equal(t, 0, ints.Length())
}
