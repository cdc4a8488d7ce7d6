package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEmbedID(t *testing.T) {
	a := NewEmbedID()
	b := NewEmbedID()

	assert.True(t, strings.HasPrefix(a.String(), "emb_"))
	assert.NotEqual(t, a, b)
	assert.Len(t, a.String(), len("emb_")+26)
}

func TestEmbedIDsAreSortableByCreation(t *testing.T) {
	ids := make([]EmbedID, 5)
	for i := range ids {
		ids[i] = NewEmbedID()
	}
	for i := 1; i < len(ids); i++ {
		assert.LessOrEqual(t, ids[i-1].String(), ids[i].String())
	}
}
