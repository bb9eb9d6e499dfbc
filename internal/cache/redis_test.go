package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildKey(t *testing.T) {
	assert.Equal(t, "rec:user:42:activity:limit:20", buildKey(42, "activity", 20))
	assert.Equal(t, "rec:user:7:flight:limit:10", buildKey(7, "flight", 10))
}

func TestNewCacheTTLFallback(t *testing.T) {
	c := NewCache(nil, 0)
	assert.Equal(t, defaultTTL, c.ttl)

	c = NewCache(nil, -1)
	assert.Equal(t, defaultTTL, c.ttl)
}
