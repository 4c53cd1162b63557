package uniuri

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)

	for range 1000 {
		id := NewID()
		assert.Len(t, id, IDLen)
		assert.False(t, seen[id], "duplicate id %s", id)

		for _, c := range []byte(id) {
			assert.Contains(t, string(Chars), string(c))
		}

		seen[id] = true
	}
}

func TestNewLen(t *testing.T) {
	assert.Empty(t, NewLen(0))
	assert.Empty(t, NewLen(-3))
	assert.Len(t, NewLen(200), 200)
}
