package model

import (
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// ErrInvalidConfiguration is the cause of every World construction failure
var ErrInvalidConfiguration = errors.New("invalid world configuration")

// Option tunes how a World advances generations
type Option func(*World)

// WithParallel stages cells on the given number of workers, split by rows.
// A non-positive count uses one worker per CPU.
func WithParallel(workers int) Option {
	return func(w *World) {
		if workers <= 0 {
			workers = runtime.NumCPU()
		}
		w.parallel = true
		w.workers = workers
	}
}

// WithSleepWake only restages cells that changed, or had a neighbor change, in the
// previous generation. The outcome of every cycle is the same as without it.
func WithSleepWake() Option {
	return func(w *World) {
		w.sleepWake = true
	}
}

// World owns a fixed rectangular grid of cells stored in row-major order
type World struct {
	width  int
	height int
	cells  []Cell

	// neighbors of cell i are adj[offsets[i]:offsets[i+1]]
	adj     []int
	offsets []int

	generation int
	changed    int

	parallel bool
	workers  int

	sleepWake bool
	awake     []bool
	nextAwake []bool
}

// NewWorld creates a world from a row-major list of cell states.
// Negative dimensions are clamped to zero, and the number of states must equal width*height.
func NewWorld(states []bool, width, height int, opts ...Option) (*World, error) {
	width, height = max(width, 0), max(height, 0)
	if len(states) != width*height {
		return nil, errors.Wrapf(
			ErrInvalidConfiguration,
			"[NewWorld] got %d cells for a %dx%d grid", len(states), width, height,
		)
	}

	w := &World{
		width:  width,
		height: height,
		cells:  make([]Cell, len(states)),
	}
	for i, alive := range states {
		w.cells[i] = NewCell(alive)
	}
	w.cacheNeighbors()

	for _, opt := range opts {
		opt(w)
	}

	if w.sleepWake {
		w.awake = make([]bool, len(w.cells))
		w.nextAwake = make([]bool, len(w.cells))
		for i := range w.awake {
			w.awake[i] = true
		}
	}

	return w, nil
}

// NewEmptyWorld creates a world of the given size with every cell dead
func NewEmptyWorld(width, height int, opts ...Option) *World {
	width, height = max(width, 0), max(height, 0)
	w, _ := NewWorld(make([]bool, width*height), width, height, opts...)
	return w
}

// cacheNeighbors computes the bounded Moore neighborhood of every cell once
func (w *World) cacheNeighbors() {
	n := len(w.cells)
	w.offsets = make([]int, n+1)
	w.adj = make([]int, 0, n*8)

	for i := range n {
		x, y := w.Position(i)

		minX := max(0, x-1)
		maxX := min(w.width-1, x+1)
		minY := max(0, y-1)
		maxY := min(w.height-1, y+1)

		for ny := minY; ny <= maxY; ny++ {
			for nx := minX; nx <= maxX; nx++ {
				if nx == x && ny == y {
					continue
				}
				w.adj = append(w.adj, ny*w.width+nx)
			}
		}
		w.offsets[i+1] = len(w.adj)
	}
}

func (w *World) neighbors(i int) []int {
	return w.adj[w.offsets[i]:w.offsets[i+1]]
}

func (w *World) aliveNeighbors(i int) (count int) {
	for _, j := range w.neighbors(i) {
		if w.cells[j].IsAlive() {
			count++
		}
	}
	return
}

// stage computes the next state of cells [from, to). Sleeping cells keep
// staged == current from the last commit.
func (w *World) stage(from, to int) {
	for i := from; i < to; i++ {
		if w.awake != nil && !w.awake[i] {
			continue
		}
		w.cells[i].ComputeNext(w.aliveNeighbors(i))
	}
}

// stageAll runs the stage phase, striped across workers when parallel
func (w *World) stageAll() {
	if !w.parallel || w.workers <= 1 || w.height <= 1 {
		w.stage(0, len(w.cells))
		return
	}

	var (
		eg            errgroup.Group
		rowsPerWorker = (w.height + w.workers - 1) / w.workers // Ceiling division
	)

	for i := range w.workers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, w.height)
		)
		if startRow >= w.height {
			break
		}

		eg.Go(func() error {
			w.stage(startRow*w.width, endRow*w.width)
			return nil
		})
	}

	// Stripes never fail; Wait is the barrier before any commit.
	_ = eg.Wait()
}

// Cycle advances the world by one generation and returns the number of cells that changed.
// Every cell is staged from the same committed snapshot before any cell commits.
func (w *World) Cycle() int {
	w.stageAll()

	if w.nextAwake != nil {
		clear(w.nextAwake)
	}

	changed := 0
	for i := range w.cells {
		if !w.cells[i].Commit() {
			continue
		}
		changed++

		if w.nextAwake != nil {
			w.nextAwake[i] = true
			for _, j := range w.neighbors(i) {
				w.nextAwake[j] = true
			}
		}
	}

	if w.nextAwake != nil {
		w.awake, w.nextAwake = w.nextAwake, w.awake
	}

	w.changed = changed
	w.generation++
	return changed
}

// Width returns the width of the world
func (w *World) Width() int {
	return w.width
}

// Height returns the height of the world
func (w *World) Height() int {
	return w.height
}

// Generation returns how many cycles have run, starting at 0
func (w *World) Generation() int {
	return w.generation
}

// ChangedCount returns how many cells changed during the last cycle, 0 before the first one
func (w *World) ChangedCount() int {
	return w.changed
}

// MaxPopulation returns the number of cells in the world
func (w *World) MaxPopulation() int {
	return len(w.cells)
}

// Population returns the number of living cells
func (w *World) Population() (count int) {
	for i := range w.cells {
		if w.cells[i].IsAlive() {
			count++
		}
	}
	return
}

// Position maps a cell index to its grid coordinates
func (w *World) Position(i int) (x, y int) {
	return i % w.width, i / w.width
}

// IsAlive returns the state of the cell at (x, y); out of range cells are dead
func (w *World) IsAlive(x, y int) bool {
	if x < 0 || x >= w.width || y < 0 || y >= w.height {
		return false
	}
	return w.cells[y*w.width+x].IsAlive()
}

// Snapshot returns the row-major alive/dead state of every cell
func (w *World) Snapshot() []bool {
	return w.SnapshotInto(nil)
}

// SnapshotInto writes the row-major state into dst, growing it when too small
func (w *World) SnapshotInto(dst []bool) []bool {
	if cap(dst) < len(w.cells) {
		dst = make([]bool, len(w.cells))
	}
	dst = dst[:len(w.cells)]
	for i := range w.cells {
		dst[i] = w.cells[i].IsAlive()
	}
	return dst
}
