package fileid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLength(t *testing.T) {
	id := New()
	assert.Len(t, id, 30)
}

func TestNewAlphabet(t *testing.T) {
	for range 100 {
		id := New()
		for _, r := range id {
			assert.True(t, strings.ContainsRune(alphabet, r), "unexpected character %q in id %q", r, id)
		}
	}
}

func TestNewDiffers(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := New()
		assert.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}
