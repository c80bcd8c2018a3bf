package model

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestTextRendererDisplay(t *testing.T) {
	w := mustWorld(t, nil,
		"#..",
		".#.",
	)

	var out bytes.Buffer
	r := NewTextRenderer(&out, DefaultAliveSymbol, '.', NewSnapshotPool())
	if err := r.Display(w); err != nil {
		t.Fatalf("Display: %v", err)
	}

	want := "Gen: 0 | Living: 2/6 | Changed: 0\n" +
		"O..\n" +
		".O.\n" +
		"\n\n\n"
	if out.String() != want {
		t.Fatalf("unexpected frame:\n%q\nwant:\n%q", out.String(), want)
	}
}

func TestTextRendererWithoutPool(t *testing.T) {
	w := mustWorld(t, nil, "##", "##")
	w.Cycle()

	var out bytes.Buffer
	if err := NewTextRenderer(&out, '#', '-', nil).Display(w); err != nil {
		t.Fatalf("Display: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Gen: 1 | Living: 4/4 | Changed: 0\n##\n##\n") {
		t.Fatalf("unexpected frame %q", out.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, bytes.ErrTooLarge }

func TestTextRendererWriteError(t *testing.T) {
	w := NewEmptyWorld(2, 2)
	err := NewTextRenderer(failingWriter{}, 'O', ' ', nil).Display(w)
	if err == nil {
		t.Fatal("expected write error")
	}
	if !strings.Contains(err.Error(), "[TextRenderer.Display]") {
		t.Fatalf("error not wrapped: %v", err)
	}
}

func TestScreenRendererDisplay(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 10)

	w := mustWorld(t, nil,
		".....",
		".###.",
		".....",
	)
	if err := NewScreenRenderer(screen, 'O', ' ', nil).Display(w); err != nil {
		t.Fatalf("Display: %v", err)
	}

	cells, width, _ := screen.GetContents()
	runeAt := func(x, y int) rune {
		c := cells[y*width+x]
		if len(c.Runes) == 0 {
			return ' '
		}
		return c.Runes[0]
	}

	status := []rune(StatusLine(w))
	for x, ch := range status {
		if got := runeAt(x, 0); got != ch {
			t.Fatalf("status column %d = %q, want %q", x, got, ch)
		}
	}
	for i, alive := range w.Snapshot() {
		x, y := w.Position(i)
		got := runeAt(x, y+1)
		if alive && got != 'O' {
			t.Fatalf("cell (%d,%d) drawn as %q, want 'O'", x, y, got)
		}
		if !alive && got == 'O' {
			t.Fatalf("dead cell (%d,%d) drawn alive", x, y)
		}
	}
}

func TestSnapshotPoolRoundTrip(t *testing.T) {
	p := NewSnapshotPool()
	w := mustWorld(t, nil, "#.#", ".#.")

	first := p.Snapshot(w)
	if len(first) != 6 || !first[0] || first[1] {
		t.Fatalf("unexpected pooled snapshot %v", first)
	}
	p.Put(first)

	second := p.Snapshot(w)
	if len(second) != 6 || !second[4] {
		t.Fatalf("unexpected reused snapshot %v", second)
	}
	p.Put(second)

	var nilPool *SnapshotPool
	if got := nilPool.Snapshot(w); len(got) != 6 {
		t.Fatalf("nil pool snapshot has %d cells", len(got))
	}
	nilPool.Put(second)
}
