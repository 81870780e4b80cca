// Package arena provides the linear allocator that backs the indicator series
// of one backtest run.
//
// Memory is handed out from fixed-size chunks and is never freed one object
// at a time. Reset releases everything at once and bumps the generation, so a
// worker can reuse the same chunks for its next run. Slices handed out before
// a Reset must not be used after it.
package arena

import "github.com/rxtech-lab/argo-kernel/internal/types"

// DefaultChunkSize is the number of elements per chunk when none is given.
const DefaultChunkSize = 4096

// pool is a chunked bump allocator for one element type.
type pool[T any] struct {
	chunkSize int
	chunks    [][]T
	current   int
	offset    int
	allocated int
}

func (p *pool[T]) alloc(n int) []T {
	if n <= 0 {
		return []T{}
	}

	p.allocated += n

	for p.current < len(p.chunks) {
		chunk := p.chunks[p.current]
		if len(chunk)-p.offset >= n {
			out := chunk[p.offset : p.offset+n : p.offset+n]
			p.offset += n
			clear(out)

			return out
		}

		p.current++
		p.offset = 0
	}

	// Requests bigger than a chunk get a chunk of their own size.
	chunk := make([]T, max(n, p.chunkSize))
	p.chunks = append(p.chunks, chunk)
	p.offset = n

	return chunk[:n:n]
}

func (p *pool[T]) reset() {
	p.current = 0
	p.offset = 0
	p.allocated = 0
}

// Arena is a generational linear allocator. It is not safe for concurrent use;
// each run owns its own arena.
type Arena struct {
	values     pool[types.IndicatorValue]
	floats     pool[float64]
	generation uint64
}

// New creates an arena whose chunks hold chunkSize elements.
// A chunkSize <= 0 uses DefaultChunkSize.
func New(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	return &Arena{
		values: pool[types.IndicatorValue]{chunkSize: chunkSize},
		floats: pool[float64]{chunkSize: chunkSize},
	}
}

// Values returns a zeroed slice of n indicator values.
func (a *Arena) Values(n int) []types.IndicatorValue {
	return a.values.alloc(n)
}

// Floats returns a zeroed slice of n float64 scratch values.
func (a *Arena) Floats(n int) []float64 {
	return a.floats.alloc(n)
}

// Reset releases every allocation at once and starts a new generation.
// The chunks are kept for reuse.
func (a *Arena) Reset() {
	a.values.reset()
	a.floats.reset()
	a.generation++
}

// Generation returns the number of resets performed so far.
func (a *Arena) Generation() uint64 {
	return a.generation
}

// Allocated returns how many elements were handed out in the current generation.
func (a *Arena) Allocated() int {
	return a.values.allocated + a.floats.allocated
}

// Chunks returns the number of chunks the arena currently holds.
func (a *Arena) Chunks() int {
	return len(a.values.chunks) + len(a.floats.chunks)
}
