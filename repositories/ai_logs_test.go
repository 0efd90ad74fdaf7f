package repositories

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "법률", truncate("법률 문서", 2))
	assert.Len(t, []rune(truncate(strings.Repeat("x", aiLogResponseLimit+10), aiLogResponseLimit)), aiLogResponseLimit)
}
