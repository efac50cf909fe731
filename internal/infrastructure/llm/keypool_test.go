package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPoolRotation(t *testing.T) {
	pool := NewKeyPool([]string{"key0", "key1", "key2"})

	assert.Equal(t, "key0", pool.Current())
	assert.Equal(t, 0, pool.Index())

	assert.Equal(t, "key1", pool.Rotate())
	assert.Equal(t, "key1", pool.Current())

	assert.Equal(t, "key2", pool.Rotate())
	// wraps around
	assert.Equal(t, "key0", pool.Rotate())
	assert.Equal(t, 0, pool.Index())
}

func TestKeyPoolTwoKeys(t *testing.T) {
	pool := NewKeyPool([]string{"primary", "backup"})

	assert.Equal(t, "primary", pool.Current())
	pool.Rotate()
	assert.Equal(t, "backup", pool.Current())
	assert.Equal(t, 1, pool.Index())
}

func TestKeyPoolEmpty(t *testing.T) {
	pool := NewKeyPool(nil)

	assert.Equal(t, "", pool.Current())
	assert.Equal(t, "", pool.Rotate())
	assert.Equal(t, 0, pool.Size())
}
