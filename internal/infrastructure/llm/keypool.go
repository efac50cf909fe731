package llm

import (
	"sync/atomic"
)

// KeyPool is the ordered set of generation API keys shared by every
// request. Rotation is process-wide: once a key fails, all subsequent
// requests start from the next key.
type KeyPool struct {
	keys  []string
	index atomic.Int64
}

// NewKeyPool creates a pool over the given keys. An empty pool is
// allowed; Current then returns "" and every request will fail closed.
func NewKeyPool(keys []string) *KeyPool {
	return &KeyPool{keys: keys}
}

// Current returns the active key.
func (p *KeyPool) Current() string {
	if len(p.keys) == 0 {
		return ""
	}
	idx := p.index.Load() % int64(len(p.keys))
	return p.keys[idx]
}

// Rotate advances to the next key, wrapping around, and returns it.
func (p *KeyPool) Rotate() string {
	if len(p.keys) == 0 {
		return ""
	}
	idx := p.index.Add(1) % int64(len(p.keys))
	return p.keys[idx]
}

// Index reports the active key's position, for logging.
func (p *KeyPool) Index() int {
	if len(p.keys) == 0 {
		return 0
	}
	return int(p.index.Load() % int64(len(p.keys)))
}

// Size reports the number of keys in the pool.
func (p *KeyPool) Size() int {
	return len(p.keys)
}
