package valuemap

import "sync"

// Pool recycles worker bitmaps so a hot execution loop does not allocate.
type Pool struct {
	pool sync.Pool
}

// NewPool creates a Pool.
func NewPool() *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any {
				return New()
			},
		},
	}
}

// Get returns an empty bitmap.
func (p *Pool) Get() *ValueBitMap {
	b := p.pool.Get().(*ValueBitMap)
	b.Reset()
	return b
}

// Put returns a bitmap to the pool. The bitmap must not be used afterwards.
func (p *Pool) Put(b *ValueBitMap) {
	if b == nil {
		return
	}
	b.Reset()
	p.pool.Put(b)
}
