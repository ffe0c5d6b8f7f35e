package raster

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// SaveRawFrame dumps one frame's buffers in little-endian binary:
// int32 point count N, then 3N float64 positions, then 3N float64 colors.
func SaveRawFrame(path string, positions, colors []float64) error {
	if len(positions)%3 != 0 || len(colors) != len(positions) {
		return fmt.Errorf("buffer length mismatch: %d positions, %d colors", len(positions), len(colors))
	}
	n := len(positions) / 3

	// Make sure parent directory exists.
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := binary.Write(w, binary.LittleEndian, int32(n)); err != nil {
		return err
	}
	if n > 0 {
		if err := binary.Write(w, binary.LittleEndian, positions); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, colors); err != nil {
			return err
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}
