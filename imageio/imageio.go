// Package imageio converts between images and the boolean grids a World is built from.
package imageio

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/sheikhrachel/golcore/model"
)

// DefaultThreshold is the channel value at which a pixel stops counting as dark
const DefaultThreshold uint8 = 50

// Format identifies an output image encoding
type Format string

const (
	PNG  Format = "png"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// ErrUnsupportedFormat is returned when no encoder matches the requested format
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Alive reports whether a pixel is bright enough to be a living cell:
// any 8-bit color channel at or above the threshold
func Alive(c color.Color, threshold uint8) bool {
	r, g, b, _ := c.RGBA()
	t := uint32(threshold)
	return r>>8 >= t || g>>8 >= t || b>>8 >= t
}

// Decode reads an image and thresholds it into row-major cell states
func Decode(r io.Reader, threshold uint8) (states []bool, width, height int, err error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, 0, errors.Wrap(err, "[Decode] failed to decode image")
	}

	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	states = make([]bool, 0, width*height)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			states = append(states, Alive(img.At(x, y), threshold))
		}
	}
	return states, width, height, nil
}

// Import loads a World from an image file
func Import(path string, threshold uint8, opts ...model.Option) (*model.World, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[Import] failed to open file: %+v", path)
	}
	defer f.Close()

	states, width, height, err := Decode(f, threshold)
	if err != nil {
		return nil, errors.Wrapf(err, "[Import] failed to read image: %+v", path)
	}

	return model.NewWorld(states, width, height, opts...)
}

// Image draws the world as a black and white picture, living cells in white
func Image(w *model.World) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w.Width(), w.Height()))
	for i, alive := range w.Snapshot() {
		if alive {
			img.Pix[i] = 0xff
		}
	}
	return img
}

// Encode writes the world to out using the given format
func Encode(out io.Writer, w *model.World, format Format) error {
	img := Image(w)

	var err error
	switch format {
	case PNG:
		err = png.Encode(out, img)
	case BMP:
		err = bmp.Encode(out, img)
	case TIFF:
		err = tiff.Encode(out, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "[Encode] %q", format)
	}
	return errors.Wrapf(err, "[Encode] failed to encode %s", format)
}

// FormatFor picks the output format from a file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return PNG, nil
	case ".bmp":
		return BMP, nil
	case ".tif", ".tiff":
		return TIFF, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "[FormatFor] %q", path)
}

// Export saves the world to an image file, choosing the format from its extension
func Export(path string, w *model.World) (err error) {
	format, err := FormatFor(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[Export] failed to create file: %+v", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "[Export] failed to close file: %+v", path)
		}
	}()

	return Encode(f, w, format)
}
