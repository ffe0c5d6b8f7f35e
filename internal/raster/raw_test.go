package raster

import (
	"bufio"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveRawFrame(t *testing.T) {
	pos := []float64{1, 0, 1, 0, 0, 1.6666}
	col := []float64{0, 1, 1, 1, 0, 1}
	path := filepath.Join(t.TempDir(), "sub", "frame.raw")
	if err := SaveRawFrame(path, pos, col); err != nil {
		t.Fatalf("SaveRawFrame error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open result file: %v", err)
	}
	defer f.Close()
	r := bufio.NewReader(f)

	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		t.Fatalf("read N: %v", err)
	}
	if n != 2 {
		t.Fatalf("header mismatch got %d want 2", n)
	}
	got := make([]float64, 12)
	if err := binary.Read(r, binary.LittleEndian, got); err != nil {
		t.Fatalf("read body: %v", err)
	}
	want := append(append([]float64{}, pos...), col...)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("value %d mismatch got %v want %v", i, got[i], want[i])
		}
	}

	st, _ := f.Stat()
	if st.Size() != 4+8*12 {
		t.Fatalf("file size mismatch got %d", st.Size())
	}
}

func TestSaveRawFrame_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := SaveRawFrame(filepath.Join(dir, "a.raw"), make([]float64, 4), make([]float64, 4)); err == nil {
		t.Fatal("expected error for non-triple buffer")
	}
	if err := SaveRawFrame(filepath.Join(dir, "b.raw"), make([]float64, 3), make([]float64, 6)); err == nil {
		t.Fatal("expected error for color mismatch")
	}
	if err := SaveRawFrame(filepath.Join(dir, "empty.raw"), nil, nil); err != nil {
		t.Fatalf("empty frame: %v", err)
	}
	st, _ := os.Stat(filepath.Join(dir, "empty.raw"))
	if st.Size() != 4 {
		t.Fatalf("want 4 bytes, got %d", st.Size())
	}
}
