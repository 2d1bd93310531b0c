package randid

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9]*$`)

	for _, length := range []int{0, 1, 6, 12} {
		id := Generate(length)
		assert.Len(t, id, length)
		assert.True(t, pattern.MatchString(id), "Generate(%d) = %q, want only [a-z0-9]", length, id)
	}
}

func TestGenerate_Unique(t *testing.T) {
	// 36^6 possible values; collisions across 200 draws would point at a
	// broken source, not bad luck.
	seen := make(map[string]bool)
	for range 200 {
		seen[Generate(6)] = true
	}

	assert.GreaterOrEqual(t, len(seen), 195, "only %d unique values in 200 draws", len(seen))
}
