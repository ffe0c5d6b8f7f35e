package raster

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
)

// SavePNGSequence writes frame k to prefix_<k>.png, zero-padded to the width of
// the last index, and returns the written paths.
func SavePNGSequence(frames []*image.NRGBA, prefix string) ([]string, error) {
	n := len(frames)
	// Zero-padding width based on number of frames.
	width := 1
	if n > 1 {
		width = int(math.Log10(float64(n-1))) + 1
	}

	paths := make([]string, 0, n)
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	for k, img := range frames {
		full := fmt.Sprintf("%s_%0*d.png", prefix, width, k)
		f, err := os.Create(full)
		if err != nil {
			return paths, err
		}
		if err := enc.Encode(f, img); err != nil {
			f.Close()
			return paths, err
		}
		if err := f.Close(); err != nil {
			return paths, err
		}
		paths = append(paths, full)
	}
	return paths, nil
}
