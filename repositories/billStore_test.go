package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemovedIDs(t *testing.T) {
	kept := map[uint]bool{2: true, 0: true}

	assert.Equal(t, []uint{1, 3}, removedIDs([]uint{1, 2, 3}, kept))
	assert.Empty(t, removedIDs([]uint{2}, kept))
	assert.Empty(t, removedIDs(nil, kept))
}
