package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindDuplicateEmpty(t *testing.T) {
	_, ok := findDuplicate([]int{})
	assert.False(t, ok)
}

func TestFindDuplicateNone(t *testing.T) {
	_, ok := findDuplicate([]int{1, 2, 3})
	assert.False(t, ok)
}

func TestFindDuplicateReturnsFirst(t *testing.T) {
	dup, ok := findDuplicate([]int{1, 2, 3, 1, 4})
	assert.True(t, ok)
	assert.Equal(t, 1, dup)
}

func TestFindDuplicateFirstSecondOccurrenceWins(t *testing.T) {
	dup, ok := findDuplicate([]int{1, 2, 1, 2})
	assert.True(t, ok)
	assert.Equal(t, 1, dup)
}

func TestFindDuplicateStrings(t *testing.T) {
	dup, ok := findDuplicate([]string{"a", "b", "b", "a"})
	assert.True(t, ok)
	assert.Equal(t, "b", dup)
}
