package model

import (
	"crypto/md5"
	"fmt"
)

// historySize is how many recent states are kept to detect cycles
const historySize = 5

// Hash returns an MD5 digest of the current state of the world
func (w *World) Hash() string {
	h := md5.New()
	buf := make([]byte, len(w.cells))
	for i := range w.cells {
		if w.cells[i].IsAlive() {
			buf[i] = 1
		}
	}
	h.Write(buf)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// History remembers digests of recent generations to spot short oscillations
type History struct {
	hashes []string
}

// Record adds the current state to the history and maintains its size
func (h *History) Record(w *World) {
	h.hashes = append(h.hashes, w.Hash())
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// Repeats reports whether the current state matches one of the last three recorded states,
// i.e. the world is still or oscillating with a period of at most 3
func (h *History) Repeats(w *World) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := w.Hash()
	for back := 1; back <= 3; back++ {
		if h.hashes[len(h.hashes)-back] == current {
			return true
		}
	}
	return false
}

// Reset forgets every recorded state
func (h *History) Reset() {
	h.hashes = nil
}
