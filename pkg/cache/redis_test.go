package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedisConfigAddr(t *testing.T) {
	assert.Equal(t, "localhost:6379", RedisConfig{Host: "localhost", Port: 6379}.Addr())
	assert.Equal(t, "[::1]:6380", RedisConfig{Host: "::1", Port: 6380}.Addr())
}

func TestRedisKeyPrefix(t *testing.T) {
	c := &RedisCache{prefix: "greeksboard"}
	assert.Equal(t, "greeksboard:snapshot", c.wrapKey("snapshot"))
	assert.Equal(t, []string{"greeksboard:a", "greeksboard:b"}, c.wrapKeys("a", "b"))

	bare := &RedisCache{}
	assert.Equal(t, "snapshot", bare.wrapKey("snapshot"))
}
