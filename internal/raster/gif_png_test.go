package raster

import (
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/lukaszgryglicki/clifford4d/internal/clifford4d"
)

func tinyFrames(n int) []*image.NRGBA {
	frames := make([]*image.NRGBA, n)
	for k := range frames {
		cv := NewCanvas(4, 4)
		cv.Clear(clifford4d.RGB{R: float64(k) / float64(n), G: 0.5, B: 0.25})
		frames[k] = cv.Image()
	}
	return frames
}

func TestSaveAnimatedGIF(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "out.gif")
	if err := SaveAnimatedGIF(tinyFrames(3), tmp, 5); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(tmp)
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) != 3 || g.Delay[0] != 5 {
		t.Fatalf("unexpected gif: %d frames, delay %v", len(g.Image), g.Delay)
	}
	if err := SaveAnimatedGIF(nil, tmp, 5); err == nil {
		t.Fatal("expected error for empty frame list")
	}
}

func TestSavePNGSequence(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "frame")
	paths, err := SavePNGSequence(tinyFrames(11), prefix)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 11 || paths[0] != prefix+"_00.png" || paths[10] != prefix+"_10.png" {
		t.Fatalf("unexpected paths: %v", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("png not written: %v", err)
		}
	}
}
