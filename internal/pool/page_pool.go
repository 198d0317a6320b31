package pool

import "sync"

// PagePool hands out fixed-size page buffers, keyed by a file's declared
// page_length. Unlike ByteBufferPool (sized for growable variable-length
// blobs), every page a given reader requests is exactly the same size, so
// a page pool is simply one sync.Pool per distinct size seen.
type PagePool struct {
	mu    sync.Mutex
	pools map[int]*sync.Pool
}

// NewPagePool returns an empty PagePool.
func NewPagePool() *PagePool {
	return &PagePool{pools: make(map[int]*sync.Pool)}
}

func (p *PagePool) poolFor(size int) *sync.Pool {
	p.mu.Lock()
	defer p.mu.Unlock()

	sp, ok := p.pools[size]
	if !ok {
		sp = &sync.Pool{New: func() any { return make([]byte, size) }}
		p.pools[size] = sp
	}

	return sp
}

// Get returns a buffer of exactly size bytes, reused from the pool when
// available.
func (p *PagePool) Get(size int) []byte {
	buf, _ := p.poolFor(size).Get().([]byte)
	if len(buf) != size {
		return make([]byte, size)
	}

	return buf
}

// Put returns buf to the pool for reuse. Buffers whose length doesn't
// match size are discarded rather than pooled.
func (p *PagePool) Put(size int, buf []byte) {
	if len(buf) != size {
		return
	}

	p.poolFor(size).Put(buf)
}

var defaultPagePool = NewPagePool()

// GetPageBuffer retrieves a page-length buffer from the default pool.
func GetPageBuffer(size int) []byte { return defaultPagePool.Get(size) }

// PutPageBuffer returns a page-length buffer to the default pool.
func PutPageBuffer(size int, buf []byte) { defaultPagePool.Put(size, buf) }
