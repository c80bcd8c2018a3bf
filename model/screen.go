package model

import "github.com/gdamore/tcell/v2"

// ScreenRenderer draws the world in place on a full terminal screen
type ScreenRenderer struct {
	screen tcell.Screen
	alive  rune
	dead   rune
	pool   *SnapshotPool

	aliveStyle  tcell.Style
	deadStyle   tcell.Style
	statusStyle tcell.Style
}

// NewScreenRenderer creates a renderer for an initialized screen. The pool may be nil.
func NewScreenRenderer(screen tcell.Screen, alive, dead rune, pool *SnapshotPool) *ScreenRenderer {
	return &ScreenRenderer{
		screen:      screen,
		alive:       alive,
		dead:        dead,
		pool:        pool,
		aliveStyle:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
		deadStyle:   tcell.StyleDefault,
		statusStyle: tcell.StyleDefault.Bold(true),
	}
}

// Display redraws the status line on row 0 and the grid below it
func (r *ScreenRenderer) Display(w *World) error {
	cells := r.pool.Snapshot(w)
	defer r.pool.Put(cells)

	r.screen.Clear()
	for x, ch := range []rune(StatusLine(w)) {
		r.screen.SetContent(x, 0, ch, nil, r.statusStyle)
	}

	for i, alive := range cells {
		x, y := w.Position(i)
		if alive {
			r.screen.SetContent(x, y+1, r.alive, nil, r.aliveStyle)
		} else {
			r.screen.SetContent(x, y+1, r.dead, nil, r.deadStyle)
		}
	}

	r.screen.Show()
	return nil
}
