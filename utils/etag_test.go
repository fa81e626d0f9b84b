package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateETag(t *testing.T) {
	now := time.Now()

	tag := GenerateETag("don_1", now)
	assert.True(t, strings.HasPrefix(tag, `"`))
	assert.True(t, strings.HasSuffix(tag, `"`))

	// Stable for the same inputs, different otherwise.
	assert.Equal(t, tag, GenerateETag("don_1", now))
	assert.NotEqual(t, tag, GenerateETag("don_2", now))
	assert.NotEqual(t, tag, GenerateETag("don_1", now.Add(time.Second)))
}
