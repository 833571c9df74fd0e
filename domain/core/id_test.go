package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDUnique(t *testing.T) {
	seen := make(map[ID]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		assert.False(t, id.IsEmpty())
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("0190a8b2-5f3c-7000-8000-000000000000")
	require.NoError(t, err)
	assert.Equal(t, "0190a8b2-5f3c-7000-8000-000000000000", id.String())

	_, err = ParseID("")
	assert.Error(t, err)

	_, err = ParseID("   ")
	assert.Error(t, err)
}
