package uuidgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_TimeOrdered(t *testing.T) {
	g := NewGenerator()
	prev := g.NewUUID()
	for i := 0; i < 100; i++ {
		next := g.NewUUID()
		id, err := uuid.Parse(next)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
		assert.Greater(t, next, prev)
		prev = next
	}
}
