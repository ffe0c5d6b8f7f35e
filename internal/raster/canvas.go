package raster

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/lukaszgryglicki/clifford4d/internal/clifford4d"
)

// Channel indices for readability.
const (
	ChR = clifford4d.ChR
	ChG = clifford4d.ChG
	ChB = clifford4d.ChB
)

// Canvas is an additive RGB accumulation buffer, row 0 at the top.
type Canvas struct {
	Width, Height int
	Buf           []float64 // flat: (j*Width + i)*3 + c
	StrideY       int

	locks *pixelLocks // created by the first parallel Splat, then reused
}

// NewCanvas allocates a zero (black) canvas.
func NewCanvas(width, height int) *Canvas {
	if width <= 0 || height <= 0 {
		panic("canvas size must be positive")
	}
	return &Canvas{
		Width:   width,
		Height:  height,
		Buf:     make([]float64, width*height*3),
		StrideY: width * 3,
	}
}

// Flat buffer index helper (c ∈ {ChR,ChG,ChB}).
func (cv *Canvas) idx(i, j, c int) int {
	return j*cv.StrideY + i*3 + c
}

// Clear fills the canvas with bg.
func (cv *Canvas) Clear(bg clifford4d.RGB) {
	for p := 0; p < len(cv.Buf); p += 3 {
		cv.Buf[p+ChR] = bg.R
		cv.Buf[p+ChG] = bg.G
		cv.Buf[p+ChB] = bg.B
	}
}

// Splat draws every point as a square sprite with additive blending. positions
// and colors are interleaved triples of equal length. Work is split across
// workers goroutines; overlapping writes are serialized by per-pixel shard locks.
func (cv *Canvas) Splat(positions, colors []float64, opacity, pointSize float64, cam Camera, workers int) error {
	if len(positions) != len(colors) || len(positions)%3 != 0 {
		return fmt.Errorf("buffer length mismatch: %d positions, %d colors", len(positions), len(colors))
	}
	if cam.Width != cv.Width || cam.Height != cv.Height {
		return fmt.Errorf("camera is %dx%d, canvas is %dx%d", cam.Width, cam.Height, cv.Width, cv.Height)
	}
	n := len(positions) / 3
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		cv.splatRange(positions, colors, opacity, pointSize, cam, nil)
		return nil
	}

	if cv.locks == nil {
		cv.locks = &pixelLocks{}
	}
	locks := cv.locks
	per, rem := n/workers, n%workers
	var wg sync.WaitGroup
	start := 0
	for w := 0; w < workers; w++ {
		cnt := per
		if w < rem {
			cnt++
		}
		lo, hi := start, start+cnt
		start = hi
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			cv.splatRange(positions[3*lo:3*hi], colors[3*lo:3*hi], opacity, pointSize, cam, locks)
		}(lo, hi)
	}
	wg.Wait()
	return nil
}

func (cv *Canvas) splatRange(positions, colors []float64, opacity, pointSize float64, cam Camera, locks *pixelLocks) {
	for p := 0; p+2 < len(positions); p += 3 {
		sx, sy, depth, ok := cam.Project(positions[p], positions[p+1], positions[p+2])
		if !ok {
			continue
		}
		side := cam.PointPixels(pointSize, depth)
		i0 := int(math.Floor(sx - float64(side)*0.5 + 0.5))
		j0 := int(math.Floor(sy - float64(side)*0.5 + 0.5))
		r := colors[p+ChR] * opacity
		g := colors[p+ChG] * opacity
		b := colors[p+ChB] * opacity
		for j := j0; j < j0+side; j++ {
			if j < 0 || j >= cv.Height {
				continue
			}
			for i := i0; i < i0+side; i++ {
				if i < 0 || i >= cv.Width {
					continue
				}
				base := cv.idx(i, j, ChR)
				if locks == nil {
					cv.Buf[base+ChR] += r
					cv.Buf[base+ChG] += g
					cv.Buf[base+ChB] += b
					continue
				}
				mu := locks.shard(base)
				mu.Lock()
				cv.Buf[base+ChR] += r
				cv.Buf[base+ChG] += g
				cv.Buf[base+ChB] += b
				mu.Unlock()
			}
		}
	}
}

func toByte(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// FillRGBA writes the canvas as opaque RGBA bytes (saturating at 1).
func (cv *Canvas) FillRGBA(dst []byte) error {
	if len(dst) != cv.Width*cv.Height*4 {
		return fmt.Errorf("pixel buffer has %d bytes, want %d", len(dst), cv.Width*cv.Height*4)
	}
	for p, q := 0, 0; p < len(cv.Buf); p, q = p+3, q+4 {
		dst[q+0] = toByte(cv.Buf[p+ChR])
		dst[q+1] = toByte(cv.Buf[p+ChG])
		dst[q+2] = toByte(cv.Buf[p+ChB])
		dst[q+3] = 255
	}
	return nil
}

// Image converts the canvas to an NRGBA image.
func (cv *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, cv.Width, cv.Height))
	_ = cv.FillRGBA(img.Pix)
	return img
}
