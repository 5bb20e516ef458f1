package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/Robogera/hillclimb/pkg/grid"
	"github.com/Robogera/hillclimb/pkg/hill"

	"github.com/muesli/gamut"
)

var (
	ERR_SCALE = errors.New("Bad scale")
)

type Options struct {
	// Side of a single cell in pixels
	Scale     int
	// Hex colors of the lowest and the highest elevation
	Low, High string
	Path      string
}

func DefaultOptions() Options {
	return Options{
		Scale: 8,
		Low:   "#1d3557",
		High:  "#f1faee",
		Path:  "#e63946",
	}
}

// One color per elevation, blended from low to high
func Palette(low, high color.Color) []color.Color {
	return gamut.Blends(low, high, hill.MaxElevation+1)
}

// Draws the height map with the path on top of it
func Image(m *hill.Map, path []grid.Point, opts Options) (*image.RGBA, error) {
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("%d: %w", opts.Scale, ERR_SCALE)
	}
	palette := Palette(gamut.Hex(opts.Low), gamut.Hex(opts.High))
	path_color := gamut.Hex(opts.Path)
	endpoint_color := gamut.Darker(path_color, 0.4)

	img := image.NewRGBA(image.Rect(0, 0, m.Cols()*opts.Scale, m.Rows()*opts.Scale))
	cell := func(p grid.Point, c color.Color) {
		r := image.Rect(p.Col*opts.Scale, p.Row*opts.Scale, (p.Col+1)*opts.Scale, (p.Row+1)*opts.Scale)
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}
	for p, c := range m.All() {
		cell(p, palette[c.Elevation])
	}
	for ind, p := range path {
		if ind == 0 || ind == len(path)-1 {
			cell(p, endpoint_color)
			continue
		}
		cell(p, path_color)
	}
	return img, nil
}

// Same as Image, encoded as PNG into w
func PNG(w io.Writer, m *hill.Map, path []grid.Point, opts Options) error {
	img, err := Image(m, path, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("Can't encode image: %w", err)
	}
	return nil
}
