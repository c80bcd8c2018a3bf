package model

import "sync"

// SnapshotPool recycles snapshot buffers between generations
type SnapshotPool struct {
	pool sync.Pool
}

func NewSnapshotPool() *SnapshotPool {
	return &SnapshotPool{
		pool: sync.Pool{
			New: func() interface{} {
				return new([]bool)
			},
		},
	}
}

// Snapshot fills a pooled buffer with the current state of the world.
// Hand the buffer back with Put once it has been consumed.
func (p *SnapshotPool) Snapshot(w *World) []bool {
	if p == nil {
		return w.Snapshot()
	}
	buf := p.pool.Get().(*[]bool)
	return w.SnapshotInto(*buf)
}

// Put returns a buffer to the pool
func (p *SnapshotPool) Put(buf []bool) {
	if p == nil || buf == nil {
		return
	}
	buf = buf[:0]
	p.pool.Put(&buf)
}
