package model

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultAliveSymbol is drawn for living cells
	DefaultAliveSymbol = 'O'
	// DefaultDeadSymbol is drawn for dead cells
	DefaultDeadSymbol = ' '

	// frameGap is the number of blank lines written after each frame
	frameGap = 3
)

// Renderer is a sink that reads the state of a world after each generation
type Renderer interface {
	Display(w *World) error
}

// StatusLine summarizes a world in a single line
func StatusLine(w *World) string {
	return fmt.Sprintf("Gen: %d | Living: %d/%d | Changed: %d",
		w.Generation(), w.Population(), w.MaxPopulation(), w.ChangedCount())
}

// TextRenderer writes the world as lines of symbols to a writer
type TextRenderer struct {
	out   io.Writer
	alive rune
	dead  rune
	pool  *SnapshotPool
}

// NewTextRenderer creates a renderer drawing to out. The pool may be nil.
func NewTextRenderer(out io.Writer, alive, dead rune, pool *SnapshotPool) *TextRenderer {
	return &TextRenderer{out: out, alive: alive, dead: dead, pool: pool}
}

// Display renders the world followed by a small gap
func (r *TextRenderer) Display(w *World) error {
	cells := r.pool.Snapshot(w)
	defer r.pool.Put(cells)

	var b strings.Builder
	b.WriteString(StatusLine(w))
	b.WriteByte('\n')
	for i, alive := range cells {
		if alive {
			b.WriteRune(r.alive)
		} else {
			b.WriteRune(r.dead)
		}
		if (i+1)%w.Width() == 0 {
			b.WriteByte('\n')
		}
	}
	b.WriteString(strings.Repeat("\n", frameGap))

	_, err := io.WriteString(r.out, b.String())
	return errors.Wrap(err, "[TextRenderer.Display] failed to write frame")
}

// NopRenderer discards every frame, used in quiet mode
type NopRenderer struct{}

// Display does nothing
func (NopRenderer) Display(*World) error { return nil }
