package imageio

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/golcore/model"
)

func blinker(t *testing.T) *model.World {
	t.Helper()
	states := make([]bool, 5*4)
	for _, x := range []int{1, 2, 3} {
		states[2*5+x] = true
	}
	w, err := model.NewWorld(states, 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestAlive(t *testing.T) {
	tests := []struct {
		name  string
		c     color.Color
		alive bool
	}{
		{"black", color.Black, false},
		{"white", color.White, true},
		{"dark grey", color.Gray{Y: 49}, false},
		{"threshold grey", color.Gray{Y: 50}, true},
		{"bright red only", color.RGBA{R: 200, A: 0xff}, true},
		{"dim blue", color.RGBA{B: 30, A: 0xff}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Alive(tt.c, DefaultThreshold); got != tt.alive {
				t.Fatalf("Alive(%v) = %v, want %v", tt.c, got, tt.alive)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	w := blinker(t)

	for _, format := range []Format{PNG, BMP, TIFF} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, w, format); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			states, width, height, err := Decode(&buf, DefaultThreshold)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if width != 5 || height != 4 {
				t.Fatalf("decoded %dx%d, want 5x4", width, height)
			}
			if !slices.Equal(states, w.Snapshot()) {
				t.Fatalf("decoded states %v differ from %v", states, w.Snapshot())
			}
		})
	}
}

func TestDecodeIsRowMajorForNonSquareImages(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(2, 0, color.White)
	img.Set(0, 1, color.White)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	states, width, height, err := Decode(&buf, DefaultThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if width != 3 || height != 2 {
		t.Fatalf("decoded %dx%d, want 3x2", width, height)
	}
	want := []bool{false, false, true, true, false, false}
	if !slices.Equal(states, want) {
		t.Fatalf("states = %v, want %v", states, want)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, _, err := Decode(strings.NewReader("not an image"), DefaultThreshold)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if !strings.Contains(err.Error(), "[Decode]") {
		t.Fatalf("error not wrapped: %v", err)
	}
}

func TestEncodeUnsupportedFormat(t *testing.T) {
	err := Encode(&bytes.Buffer{}, blinker(t), Format("jpeg"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFormatFor(t *testing.T) {
	tests := map[string]Format{
		"out.png":       PNG,
		"OUT.PNG":       PNG,
		"dir/world.bmp": BMP,
		"a.tif":         TIFF,
		"a.tiff":        TIFF,
	}
	for path, want := range tests {
		got, err := FormatFor(path)
		if err != nil || got != want {
			t.Fatalf("FormatFor(%q) = %q, %v; want %q", path, got, err, want)
		}
	}

	if _, err := FormatFor("world.txt"); errors.Cause(err) != ErrUnsupportedFormat {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	w := blinker(t)
	w.Cycle()

	for _, name := range []string{"world.png", "world.bmp", "world.tiff"} {
		path := filepath.Join(dir, name)
		if err := Export(path, w); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}

		got, err := Import(path, DefaultThreshold)
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if got.Width() != w.Width() || got.Height() != w.Height() {
			t.Fatalf("%s: imported %dx%d", name, got.Width(), got.Height())
		}
		if !slices.Equal(got.Snapshot(), w.Snapshot()) {
			t.Fatalf("%s: imported state differs", name)
		}
		if got.Generation() != 0 {
			t.Fatalf("%s: imported world starts at generation %d", name, got.Generation())
		}
	}
}

func TestImportMissingFile(t *testing.T) {
	_, err := Import(filepath.Join(t.TempDir(), "missing.png"), DefaultThreshold)
	if err == nil {
		t.Fatal("expected error")
	}
	if !os.IsNotExist(errors.Cause(err)) {
		t.Fatalf("expected a not-exist cause, got %v", err)
	}
}

func TestExportUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.txt")
	if err := Export(path, blinker(t)); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("no file should be created for an unsupported format")
	}
}
